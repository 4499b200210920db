package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// JSONRequest sends a JSON request. If token is non-empty, it is passed as Bearer header.
func JSONRequest(ctx context.Context, method, url string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

// PostJSON sends a JSON POST request.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	return JSONRequest(ctx, http.MethodPost, url, payload, token)
}

// PutJSON sends a JSON PUT request.
func PutJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	return JSONRequest(ctx, http.MethodPut, url, payload, token)
}

// GetJSON sends a GET request.
func GetJSON(ctx context.Context, url string, token string) (*http.Response, []byte, error) {
	return JSONRequest(ctx, http.MethodGet, url, nil, token)
}

// Delete sends a DELETE request.
func Delete(ctx context.Context, url string, token string) (*http.Response, []byte, error) {
	return JSONRequest(ctx, http.MethodDelete, url, nil, token)
}

// PostFile отправляет файл полем multipart-формы.
func PostFile(ctx context.Context, url, field, filename string, data []byte, token string) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		return nil, nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

// Message вытаскивает человекочитаемое сообщение из ответа {"message": ...}.
func Message(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err == nil && m.Message != "" {
		return m.Message
	}
	return string(body)
}

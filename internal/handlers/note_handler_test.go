package handlers_test

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestNotes_List(t *testing.T) {
	env := newTestRouter(t)

	owner := int64(7)
	notes := []model.Note{
		{
			ID: "n1", Title: "A", Content: "x", Author: "Amy",
			Category: &model.Category{ID: "c1", Name: "Work"},
			User:     &model.User{ID: owner, Name: "Amy", Email: "amy@x.com", Password: "hash"},
			UserID:   &owner,
		},
		{ID: "n2", Title: "B", Content: "y", Author: "Bob"},
	}
	env.notes.On("List", mock.Anything, repo.NoteFilter{Search: "a", CategoryID: "c1", Page: 2, Limit: 5}).
		Return(notes, int64(12), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/notes?page=2&limit=5&search=a&category=c1", nil)
	rr := do(t, env.router, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Notes []map[string]any `json:"notes"`
		Total int64            `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.Total)
	if assert.Len(t, resp.Notes, 2) {
		// категория отдаётся целиком
		cat := resp.Notes[0]["category"].(map[string]any)
		assert.Equal(t, "Work", cat["name"])
		// владелец — только имя, без email и хеша
		user := resp.Notes[0]["user"].(map[string]any)
		assert.Equal(t, "Amy", user["name"])
		_, hasEmail := user["email"]
		assert.False(t, hasEmail)
		// заметка без владельца — без поля user
		_, hasUser := resp.Notes[1]["user"]
		assert.False(t, hasUser)
	}
	env.notes.AssertExpectations(t)
}

func TestNotes_List_DefaultsAndEmpty(t *testing.T) {
	env := newTestRouter(t)

	// некорректные page/limit откатываются на 1/10
	env.notes.On("List", mock.Anything, repo.NoteFilter{Page: 1, Limit: 10}).
		Return([]model.Note{}, int64(0), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/notes?page=0&limit=-3", nil)
	rr := do(t, env.router, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	// пустой результат — не ошибка, notes сериализуется как [], не null
	assert.Contains(t, rr.Body.String(), `"notes":[]`)
	assert.Contains(t, rr.Body.String(), `"total":0`)
}

func TestNotes_Get(t *testing.T) {
	t.Run("requires auth", func(t *testing.T) {
		env := newTestRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/api/notes/n1", nil)
		rr := do(t, env.router, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestRouter(t)
		env.notes.On("GetByID", mock.Anything, "ghost").Return((*model.Note)(nil), gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notes/ghost", nil)
		addAuth(t, req, 1, env.cfg.AuthSecret)
		rr := do(t, env.router, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("ok", func(t *testing.T) {
		env := newTestRouter(t)
		env.notes.On("GetByID", mock.Anything, "n1").Return(&model.Note{ID: "n1", Title: "T"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/notes/n1", nil)
		addAuth(t, req, 1, env.cfg.AuthSecret)
		rr := do(t, env.router, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"title":"T"`)
	})
}

func TestNotes_Create(t *testing.T) {
	t.Run("requires auth", func(t *testing.T) {
		env := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{}`))
		rr := do(t, env.router, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("category as plain string", func(t *testing.T) {
		env := newTestRouter(t)
		env.cats.On("GetByName", mock.Anything, "Work").Return(&model.Category{ID: "c1", Name: "Work"}, nil).Once()
		env.notes.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Note) bool {
			return n.CategoryID == "c1" && *n.UserID == 7
		})).Return(nil).Once()

		body := `{"title":"T","content":"C","category":"Work","author":"Amy","tags":["a","b"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		addAuth(t, req, 7, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"name":"Work"`)
		env.notes.AssertExpectations(t)
	})

	// имя категории может прийти объектом — нормализуется до строки
	t.Run("category as object", func(t *testing.T) {
		env := newTestRouter(t)
		env.cats.On("GetByName", mock.Anything, "Work").Return(&model.Category{ID: "c1", Name: "Work"}, nil).Once()
		env.notes.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		body := `{"title":"T","content":"C","category":{"name":"Work"},"author":"Amy"}`
		req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		addAuth(t, req, 7, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		env.cats.AssertExpectations(t)
	})

	t.Run("invalid category", func(t *testing.T) {
		env := newTestRouter(t)
		env.cats.On("GetByName", mock.Anything, "Nope").Return((*model.Category)(nil), gorm.ErrRecordNotFound).Once()

		body := `{"title":"T","content":"C","category":"Nope","author":"Amy"}`
		req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		addAuth(t, req, 7, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid category.")
	})

	t.Run("missing fields", func(t *testing.T) {
		env := newTestRouter(t)

		body := `{"title":"T","category":"Work","author":"Amy"}`
		req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		addAuth(t, req, 7, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestNotes_UpdateDelete_Ownership(t *testing.T) {
	owner := int64(7)

	t.Run("foreign update forbidden", func(t *testing.T) {
		env := newTestRouter(t)
		env.notes.On("GetByID", mock.Anything, "n1").Return(&model.Note{ID: "n1", UserID: &owner}, nil).Once()

		body := `{"title":"T","content":"C","category":"Work","author":"Eve"}`
		req := httptest.NewRequest(http.MethodPut, "/api/notes/n1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		addAuth(t, req, owner+1, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("foreign delete forbidden", func(t *testing.T) {
		env := newTestRouter(t)
		env.notes.On("GetByID", mock.Anything, "n1").Return(&model.Note{ID: "n1", UserID: &owner}, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/n1", nil)
		addAuth(t, req, owner+1, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("owner delete ok", func(t *testing.T) {
		env := newTestRouter(t)
		env.notes.On("GetByID", mock.Anything, "n1").Return(&model.Note{ID: "n1", UserID: &owner}, nil).Once()
		env.notes.On("Delete", mock.Anything, "n1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/n1", nil)
		addAuth(t, req, owner, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Note deleted.")
		env.notes.AssertExpectations(t)
	})

	t.Run("missing note not found", func(t *testing.T) {
		env := newTestRouter(t)
		env.notes.On("GetByID", mock.Anything, "ghost").Return((*model.Note)(nil), gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/ghost", nil)
		addAuth(t, req, owner, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// multipart-хелпер для фото
func photoRequest(t *testing.T, url string, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write(data)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestNotes_UploadPhoto(t *testing.T) {
	owner := int64(5)

	t.Run("ok", func(t *testing.T) {
		env := newTestRouter(t)
		note := &model.Note{ID: "n1", UserID: &owner}
		env.notes.On("GetOwnedByID", mock.Anything, owner, "n1").Return(note, nil).Once()
		env.upload.On("Upload", mock.Anything, []byte("img-bytes"), mock.Anything).Return("http://s3/notekeeper/k", nil).Once()
		env.notes.On("Save", mock.Anything, mock.MatchedBy(func(n *model.Note) bool {
			return n.Photo == "http://s3/notekeeper/k"
		})).Return(nil).Once()

		req := photoRequest(t, "/api/notes/n1/photo", "photo", "pic.png", []byte("img-bytes"))
		addAuth(t, req, owner, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "http://s3/notekeeper/k")
		env.upload.AssertExpectations(t)
	})

	// чужая заметка — 404, не 403: владелец входит в предикат поиска
	t.Run("foreign note looks missing", func(t *testing.T) {
		env := newTestRouter(t)
		env.notes.On("GetOwnedByID", mock.Anything, owner, "n1").Return((*model.Note)(nil), gorm.ErrRecordNotFound).Once()

		req := photoRequest(t, "/api/notes/n1/photo", "photo", "pic.png", []byte("img"))
		addAuth(t, req, owner, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("no file", func(t *testing.T) {
		env := newTestRouter(t)
		note := &model.Note{ID: "n1", UserID: &owner}
		env.notes.On("GetOwnedByID", mock.Anything, owner, "n1").Return(note, nil).Once()

		req := photoRequest(t, "/api/notes/n1/photo", "", "", nil)
		addAuth(t, req, owner, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "No file uploaded.")
	})

	t.Run("upload failed", func(t *testing.T) {
		env := newTestRouter(t)
		note := &model.Note{ID: "n1", UserID: &owner}
		env.notes.On("GetOwnedByID", mock.Anything, owner, "n1").Return(note, nil).Once()
		env.upload.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError).Once()

		req := photoRequest(t, "/api/notes/n1/photo", "photo", "pic.png", []byte("img"))
		addAuth(t, req, owner, env.cfg.AuthSecret)
		rr := do(t, env.router, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Photo upload failed.")
	})
}

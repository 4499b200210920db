package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"NoteKeeper/internal/config"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NoteHandler обрабатывает выборку и мутации заметок.
type NoteHandler struct {
	NoteService *service.NoteService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewNoteHandler создаёт хендлер notes
func NewNoteHandler(noteService *service.NoteService, logger *zap.SugaredLogger, cfg *config.Config) *NoteHandler {
	return &NoteHandler{NoteService: noteService, Logger: logger, Config: cfg}
}

type listResponse struct {
	Notes []NoteDTO `json:"notes"`
	Total int64     `json:"total"`
}

// List отдаёт страницу заметок. Маршрут открытый.
// query: page (с 1), limit, search (подстрока без регистра), category (id).
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	notes, total, err := h.NoteService.List(r.Context(), repo.NoteFilter{
		Search:     q.Get("search"),
		CategoryID: q.Get("category"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		h.Logger.Errorw("List: service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	dtos := make([]NoteDTO, 0, len(notes))
	for i := range notes {
		dtos = append(dtos, toNoteDTO(&notes[i]))
	}
	writeJSON(w, http.StatusOK, listResponse{Notes: dtos, Total: total})
}

// Get отдаёт одну заметку с категорией и владельцем.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	note, err := h.NoteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeNoteError(w, err, "Get")
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

// Create сохраняет новую заметку, владельцем становится вызывающий.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req notePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	note, err := h.NoteService.Create(r.Context(), userID, service.NoteInput{
		Title:        req.Title,
		Content:      req.Content,
		CategoryName: req.categoryName(),
		Author:       req.Author,
		Tags:         req.Tags,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		h.writeNoteError(w, err, "Create")
		return
	}
	writeJSON(w, http.StatusCreated, toNoteDTO(note))
}

// Update перезаписывает заметку целиком. Только для владельца.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req notePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	note, err := h.NoteService.Update(r.Context(), userID, chi.URLParam(r, "id"), service.NoteInput{
		Title:        req.Title,
		Content:      req.Content,
		CategoryName: req.categoryName(),
		Author:       req.Author,
		Tags:         req.Tags,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		h.writeNoteError(w, err, "Update")
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

// Delete удаляет заметку навсегда. Только для владельца.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.NoteService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeNoteError(w, err, "Delete")
		return
	}
	writeMessage(w, http.StatusOK, "Note deleted.")
}

// UploadPhoto принимает multipart-файл "photo" и сохраняет URL на заметке.
// Чужая заметка даёт 404: владелец входит в предикат поиска.
func (h *NoteHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Лимит общего тела запроса
	maxBody := int64(h.Config.PhotoMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("UploadPhoto: invalid multipart form", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var data []byte
	contentType := "application/octet-stream"
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			h.Logger.Warnw("UploadPhoto: failed to read file", "error", err)
			writeMessage(w, http.StatusBadRequest, "failed to read file")
			return
		}
		if ct := header.Header.Get("Content-Type"); ct != "" {
			contentType = ct
		}
	}

	note, err := h.NoteService.AttachPhoto(r.Context(), userID, chi.URLParam(r, "id"), data, contentType)
	if err != nil {
		h.writeNoteError(w, err, "UploadPhoto")
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

// writeNoteError маппит ошибки сервиса заметок в HTTP-ответы.
func (h *NoteHandler) writeNoteError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "All fields required.")
	case errors.Is(err, service.ErrInvalidCategory):
		writeMessage(w, http.StatusBadRequest, "Invalid category.")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Note not found.")
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, service.ErrNoFile):
		writeMessage(w, http.StatusBadRequest, "No file uploaded.")
	case errors.Is(err, service.ErrUploadFailed):
		writeMessage(w, http.StatusInternalServerError, "Photo upload failed.")
	default:
		h.Logger.Errorw(op+": service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler обрабатывает администрирование категорий.
type CategoryHandler struct {
	CategoryService *service.CategoryService
	Logger          *zap.SugaredLogger
}

// NewCategoryHandler создаёт хендлер categories
func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{CategoryService: categoryService, Logger: logger}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// List отдаёт все категории с живым счётчиком заметок. Маршрут открытый.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.CategoryService.List(r.Context())
	if err != nil {
		h.Logger.Errorw("List categories: service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch categories.")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Create добавляет категорию с уникальным именем.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create category: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	cat, err := h.CategoryService.Create(r.Context(), req.Name)
	switch {
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Name required")
	case errors.Is(err, service.ErrCategoryTaken):
		writeMessage(w, http.StatusConflict, "Category already exists")
	case err != nil:
		h.Logger.Errorw("Create category: service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusCreated, cat)
	}
}

// Update переименовывает категорию.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update category: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	cat, err := h.CategoryService.Rename(r.Context(), chi.URLParam(r, "id"), req.Name)
	switch {
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Name required")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Category not found")
	case err != nil:
		h.Logger.Errorw("Update category: service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, cat)
	}
}

// Delete удаляет категорию. Заметки, ссылающиеся на неё, не трогаются.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	err := h.CategoryService.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Category not found")
	case err != nil:
		h.Logger.Errorw("Delete category: service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	default:
		writeMessage(w, http.StatusOK, "Category deleted")
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"NoteKeeper/internal/config"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/service"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewUserHandler создаёт хендлер auth-маршрутов
func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// Register создаёт учётную запись. Автологина нет: токен выдаёт только Login.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	_, err := h.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Name, email and password required")
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, "User already exists")
	case err != nil:
		h.Logger.Errorw("Register: service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	default:
		writeMessage(w, http.StatusCreated, "User registered")
	}
}

// Login проверяет учётные данные и выдаёт токен на 7 дней.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Email and password required")
	case errors.Is(err, service.ErrInvalidCredentials):
		// одно сообщение для неизвестного email и неверного пароля
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		h.Logger.Errorw("Login: service error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	default:
		token, terr := middleware.BuildJWTString(user.ID, h.Config.AuthSecret)
		if terr != nil {
			h.Logger.Errorw("Login: token build failed", "user_id", user.ID, "error", terr)
			writeMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{
			Token: token,
			User:  UserDTO{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}

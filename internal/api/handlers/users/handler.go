package users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	userService "github.com/m04kA/SMC-SalonService/internal/service/users"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные пользователя"
	msgUserExists         = "пользователь с таким email уже существует"
	msgInvalidCredentials = "неверный email или пароль"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/register", err)
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%s", result.User.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Login POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /auth/login", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetProfile GET /api/v1/me
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetProfile(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /me", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateProfile PATCH /api/v1/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "PATCH /me", err)
		return
	}

	h.logger.Info("PATCH /me - Profile updated: user_id=%s", actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, userService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, userService.ErrUserExists):
		h.logger.Warn("%s - User already exists", route)
		handlers.RespondConflict(w, msgUserExists)

	case errors.Is(err, userService.ErrInvalidCredentials):
		h.logger.Warn("%s - Invalid credentials", route)
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidCredentials)

	case errors.Is(err, userService.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

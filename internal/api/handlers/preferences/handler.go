package preferences

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/preferences/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service PreferencesService
	logger  Logger
}

func NewHandler(service PreferencesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/me/preferences
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /me/preferences - Failed to load preferences: user_id=%s, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/me/preferences
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var req models.PreferencesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /me/preferences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, &req)
	if err != nil {
		h.logger.Error("PUT /me/preferences - Failed to save preferences: user_id=%s, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	settingsService "github.com/m04kA/SMC-SalonService/internal/service/settings"
	"github.com/m04kA/SMC-SalonService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные настройки"
	msgTenantNotFound     = "бизнес не найден"
	msgSettingsNotFound   = "настройки не найдены"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/tenants/{tenantId}/settings, GET /api/v1/s/{slug}/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantID(r)
	if tenantID == "" {
		handlers.RespondNotFound(w, msgTenantNotFound)
		return
	}

	result, err := h.service.Get(r.Context(), middleware.OptionalActor(r.Context()), tenantID)
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/settings", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/tenants/{tenantId}/settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, tenantID, &req)
	if err != nil {
		h.respondError(w, "PUT /tenants/{id}/settings", err)
		return
	}

	h.logger.Info("PUT /tenants/{id}/settings - Settings updated: tenant_id=%s, user_id=%s", tenantID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, settingsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, settingsService.ErrSettingsNotFound):
		h.logger.Warn("%s - Settings not found", route)
		handlers.RespondNotFound(w, msgSettingsNotFound)

	case errors.Is(err, settingsService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

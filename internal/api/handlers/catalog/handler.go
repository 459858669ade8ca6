package catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQuery       = "некорректные параметры фильтра"
	msgInvalidInput       = "некорректные данные услуги"
	msgTenantNotFound     = "бизнес не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgNameTaken          = "активная услуга с таким названием уже есть"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/tenants/{tenantId}/services, GET /api/v1/s/{slug}/services
// Query params: includeInactive (optional, только для сотрудников), category (optional)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantID(r)
	if tenantID == "" {
		handlers.RespondNotFound(w, msgTenantNotFound)
		return
	}

	req, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/services - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), middleware.OptionalActor(r.Context()), tenantID, req)
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/tenants/{tenantId}/services/{serviceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := h.service.Get(r.Context(), vars["tenantId"], vars["serviceId"])
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/services/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Add POST /api/v1/tenants/{tenantId}/services
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Add(r.Context(), actor, tenantID, &req)
	if err != nil {
		h.respondError(w, "POST /tenants/{id}/services", err)
		return
	}

	h.logger.Info("POST /tenants/{id}/services - Service added: tenant_id=%s, service_id=%s", tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PATCH /api/v1/tenants/{tenantId}/services/{serviceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /tenants/{id}/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, vars["tenantId"], vars["serviceId"], &req)
	if err != nil {
		h.respondError(w, "PATCH /tenants/{id}/services/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/tenants/{tenantId}/services/{serviceId}
// Услуга деактивируется, запись остается
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.service.Delete(r.Context(), actor, vars["tenantId"], vars["serviceId"]); err != nil {
		h.respondError(w, "DELETE /tenants/{id}/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /tenants/{id}/services/{id} - Service deactivated: tenant_id=%s, service_id=%s",
		vars["tenantId"], vars["serviceId"])
	handlers.RespondNoContent(w)
}

// Restore POST /api/v1/tenants/{tenantId}/services/{serviceId}/restore
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.service.Restore(r.Context(), actor, vars["tenantId"], vars["serviceId"]); err != nil {
		h.respondError(w, "POST /tenants/{id}/services/{id}/restore", err)
		return
	}

	handlers.RespondNoContent(w)
}

// ResetToDefaults POST /api/v1/tenants/{tenantId}/services/reset
func (h *Handler) ResetToDefaults(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	result, err := h.service.ResetToDefaults(r.Context(), actor, tenantID)
	if err != nil {
		h.respondError(w, "POST /tenants/{id}/services/reset", err)
		return
	}

	h.logger.Info("POST /tenants/{id}/services/reset - Catalog reset: tenant_id=%s, services=%d", tenantID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, catalogService.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalogService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w)

	case errors.Is(err, catalogService.ErrNameTaken):
		h.logger.Warn("%s - Name taken: %v", route, err)
		handlers.RespondConflict(w, msgNameTaken)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

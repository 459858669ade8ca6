package tenants

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	tenantService "github.com/m04kA/SMC-SalonService/internal/service/tenants"
	"github.com/m04kA/SMC-SalonService/internal/service/tenants/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бизнеса"
	msgInvalidFlag        = "некорректное значение includeInactive"
	msgTenantNotFound     = "бизнес не найден"
	msgUserNotFound       = "пользователь не найден"
	msgSlugTaken          = "бизнес с таким названием уже существует"
	msgAlreadyAffiliated  = "пользователь уже привязан к бизнесу"
)

type Handler struct {
	service TenantService
	logger  Logger
}

func NewHandler(service TenantService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Session GET /api/v1/session, GET /api/v1/s/{slug}/session
// Query params: slug (optional)
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		slug = r.URL.Query().Get("slug")
	}

	result, err := h.service.Session(r.Context(), middleware.OptionalActor(r.Context()), slug)
	if err != nil {
		h.respondError(w, "GET /session", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetBySlug GET /api/v1/tenants/by-slug/{slug}
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	result, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		h.respondError(w, "GET /tenants/by-slug/{slug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Register POST /api/v1/tenants
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var req models.RegisterTenantRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /tenants", err)
		return
	}

	h.logger.Info("POST /tenants - Business registered: tenant_id=%s, owner_id=%s", result.Tenant.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/admin/tenants
// Query params: includeInactive (optional, bool)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /admin/tenants - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
		includeInactive = parsed
	}

	result, err := h.service.List(r.Context(), actor, includeInactive)
	if err != nil {
		h.respondError(w, "GET /admin/tenants", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SetActive PATCH /api/v1/admin/tenants/{tenantId}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	var req models.SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/tenants/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetActive(r.Context(), actor, tenantID, req.IsActive)
	if err != nil {
		h.respondError(w, "PATCH /admin/tenants/{id}/active", err)
		return
	}

	h.logger.Info("PATCH /admin/tenants/{id}/active - Tenant updated: tenant_id=%s, active=%t", tenantID, req.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// AddStaff POST /api/v1/tenants/{tenantId}/staff
func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	var req models.AddStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.AddStaff(r.Context(), actor, tenantID, &req); err != nil {
		h.respondError(w, "POST /tenants/{id}/staff", err)
		return
	}

	h.logger.Info("POST /tenants/{id}/staff - Staff added: tenant_id=%s", tenantID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, tenantService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, tenantService.ErrTenantNotFound):
		h.logger.Warn("%s - Tenant not found", route)
		handlers.RespondNotFound(w, msgTenantNotFound)

	case errors.Is(err, tenantService.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, tenantService.ErrSlugTaken):
		h.logger.Warn("%s - Slug taken", route)
		handlers.RespondConflict(w, msgSlugTaken)

	case errors.Is(err, tenantService.ErrAlreadyAffiliated):
		h.logger.Warn("%s - User already affiliated", route)
		handlers.RespondConflict(w, msgAlreadyAffiliated)

	case errors.Is(err, tenantService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

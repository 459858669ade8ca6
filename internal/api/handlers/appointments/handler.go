package appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	appointmentService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidQuery        = "некорректные параметры фильтра, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidInput        = "некорректные данные"
	msgAppointmentNotFound = "запись не найдена"
	msgInvalidTransition   = "переход статуса недопустим"
	msgStatusConflict      = "статус записи изменился, обновите данные"
	msgPaymentNotAllowed   = "оплата для отмененной записи невозможна"
)

type Handler struct {
	service AppointmentService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Get GET /api/v1/appointments/{appointmentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), actor, mux.Vars(r)["appointmentId"])
	if err != nil {
		h.respondError(w, "GET /appointments/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListMine GET /api/v1/me/appointments
// Query params: status (optional)
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.ListMine(r.Context(), actor, status)
	if err != nil {
		h.respondError(w, "GET /me/appointments", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListForTenant GET /api/v1/tenants/{tenantId}/appointments
// Query params: status, customerId, from, to (all optional)
func (h *Handler) ListForTenant(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	req, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListForTenant(r.Context(), actor, tenantID, req)
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/appointments", err)
		return
	}

	h.logger.Info("GET /tenants/{id}/appointments - Appointments retrieved: tenant_id=%s, count=%d", tenantID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Stats GET /api/v1/tenants/{tenantId}/appointments/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	req, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments/stats - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.Stats(r.Context(), actor, tenantID, req)
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/appointments/stats", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Export GET /api/v1/tenants/{tenantId}/appointments/export
// Отдает XLSX с теми же фильтрами, что и список
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	req, err := ToListRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/appointments/export - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	data, err := h.service.Export(r.Context(), actor, tenantID, req)
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/appointments/export", err)
		return
	}

	h.logger.Info("GET /tenants/{id}/appointments/export - Export generated: tenant_id=%s, bytes=%d", tenantID, len(data))
	handlers.RespondFile(w, xlsxContentType, exportFilename(tenantID, h.now()), data)
}

// ChangeStatus PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["appointmentId"]

	var req models.ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ChangeStatus(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PATCH /appointments/{id}/status", err)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status changed: appointment_id=%s, status=%s, user_id=%s",
		id, result.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// RecordPayment POST /api/v1/appointments/{appointmentId}/payment
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["appointmentId"]

	var req models.RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "POST /appointments/{id}/payment", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, appointmentService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, appointmentService.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found", route)
		handlers.RespondNotFound(w, msgAppointmentNotFound)

	case errors.Is(err, appointmentService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w)

	case errors.Is(err, appointmentService.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, appointmentService.ErrStatusConflict):
		h.logger.Warn("%s - Status conflict: %v", route, err)
		handlers.RespondConflict(w, msgStatusConflict)

	case errors.Is(err, appointmentService.ErrPaymentNotAllowed):
		h.logger.Warn("%s - Payment not allowed", route)
		handlers.RespondConflict(w, msgPaymentNotAllowed)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

package bookingflow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	appointmentService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	flowService "github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow/models"
	reviewService "github.com/m04kA/SMC-SalonService/internal/service/reviews"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные шага записи"
	msgTenantNotFound     = "бизнес не найден"
	msgFlowNotFound       = "сессия записи не найдена или истекла"
	msgInvalidTransition  = "действие недоступно на текущем шаге"
	msgSelectionLocked    = "услуги можно менять только на шаге выбора"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgServiceNotFound    = "услуга не найдена"
	msgBookingRejected    = "запись на выбранное время невозможна"
	msgPaymentRejected    = "оплата не может быть сохранена"
	msgReviewRejected     = "отзыв не может быть сохранен"
	msgReviewExists       = "отзыв к этой записи уже оставлен"
	msgAppointmentMissing = "запись не найдена"
)

type Handler struct {
	service FlowService
	logger  Logger
}

func NewHandler(service FlowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start POST /api/v1/tenants/{tenantId}/flows, POST /api/v1/s/{slug}/flows
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := middleware.TenantID(r)
	if tenantID == "" {
		handlers.RespondNotFound(w, msgTenantNotFound)
		return
	}

	result, err := h.service.Start(r.Context(), actor, tenantID)
	if err != nil {
		h.respondError(w, "POST /tenants/{id}/flows", err)
		return
	}

	h.logger.Info("POST /tenants/{id}/flows - Flow started: flow_id=%s, user_id=%s, tenant_id=%s", result.ID, actor.UserID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/flows/{flowId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), actor, mux.Vars(r)["flowId"])
	if err != nil {
		h.respondError(w, "GET /flows/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SelectServices PUT /api/v1/flows/{flowId}/services
func (h *Handler) SelectServices(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var req models.SelectServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /flows/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SelectServices(r.Context(), actor, mux.Vars(r)["flowId"], &req)
	if err != nil {
		h.respondError(w, "PUT /flows/{id}/services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Dispatch POST /api/v1/flows/{flowId}/events
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	flowID := mux.Vars(r)["flowId"]

	var req models.EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flows/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Dispatch(r.Context(), actor, flowID, &req)
	if err != nil {
		h.respondError(w, "POST /flows/{id}/events", err)
		return
	}

	h.logger.Info("POST /flows/{id}/events - Event applied: flow_id=%s, event=%s, state=%s", flowID, req.Event, result.State)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Abandon DELETE /api/v1/flows/{flowId}
func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.Abandon(r.Context(), actor, mux.Vars(r)["flowId"]); err != nil {
		h.respondError(w, "DELETE /flows/{id}", err)
		return
	}

	handlers.RespondNoContent(w)
}

// respondError ошибки сценария и ошибки вызванных им операций
func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, flowService.ErrFlowNotFound):
		h.logger.Warn("%s - Flow not found", route)
		handlers.RespondNotFound(w, msgFlowNotFound)

	case errors.Is(err, flowService.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, flowService.ErrSelectionLocked):
		h.logger.Warn("%s - Selection locked", route)
		handlers.RespondConflict(w, msgSelectionLocked)

	case errors.Is(err, flowService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createAppointment.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available", route)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, createAppointment.ErrTenantNotFound):
		handlers.RespondNotFound(w, msgTenantNotFound)

	case errors.Is(err, createAppointment.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createAppointment.ErrServiceInactive),
		errors.Is(err, createAppointment.ErrHomeServiceUnavailable),
		errors.Is(err, createAppointment.ErrInvalidDate),
		errors.Is(err, createAppointment.ErrDateTooFarInFuture),
		errors.Is(err, createAppointment.ErrBusinessClosed),
		errors.Is(err, createAppointment.ErrOutsideWorkingHours),
		errors.Is(err, createAppointment.ErrTooLateToBook),
		errors.Is(err, createAppointment.ErrInvalidInput):
		h.logger.Warn("%s - Booking rejected: %v", route, err)
		handlers.RespondBadRequest(w, msgBookingRejected)

	case errors.Is(err, appointmentService.ErrPaymentNotAllowed),
		errors.Is(err, appointmentService.ErrInvalidInput):
		h.logger.Warn("%s - Payment rejected: %v", route, err)
		handlers.RespondBadRequest(w, msgPaymentRejected)

	case errors.Is(err, appointmentService.ErrAppointmentNotFound),
		errors.Is(err, reviewService.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found", route)
		handlers.RespondNotFound(w, msgAppointmentMissing)

	case errors.Is(err, reviewService.ErrReviewExists):
		h.logger.Warn("%s - Review exists", route)
		handlers.RespondConflict(w, msgReviewExists)

	case errors.Is(err, reviewService.ErrAppointmentNotCompleted),
		errors.Is(err, reviewService.ErrAppointmentCancelled),
		errors.Is(err, reviewService.ErrInvalidInput):
		h.logger.Warn("%s - Review rejected: %v", route, err)
		handlers.RespondBadRequest(w, msgReviewRejected)

	case errors.Is(err, appointmentService.ErrAccessDenied),
		errors.Is(err, reviewService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

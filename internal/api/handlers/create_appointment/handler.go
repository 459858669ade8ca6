package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput          = "некорректные данные записи"
	msgSlotNotAvailable      = "выбранное время уже занято"
	msgTenantNotFound        = "бизнес не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceInactive       = "услуга недоступна"
	msgHomeServiceDisabled   = "выезд на дом недоступен"
	msgBusinessClosed        = "бизнес не работает в выбранную дату"
	msgInvalidAppointmentDay = "некорректная дата записи"
	msgDateTooFar            = "дата записи слишком далеко в будущем"
	msgOutsideWorkingHours   = "время вне рабочих часов"
	msgTooLateToBook         = "выбранное время уже прошло"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, actor)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /tenants/{id}/appointments - Slot not available: user_id=%s, tenant_id=%s", actor.UserID, tenantID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrTenantNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Service not found: tenant_id=%s, services=%v", tenantID, req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /tenants/{id}/appointments - Service inactive: tenant_id=%s", tenantID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrHomeServiceUnavailable):
			h.logger.Warn("POST /tenants/{id}/appointments - Home service disabled: tenant_id=%s", tenantID)
			handlers.RespondBadRequest(w, msgHomeServiceDisabled)

		case errors.Is(err, createAppointment.ErrBusinessClosed):
			h.logger.Warn("POST /tenants/{id}/appointments - Business closed: tenant_id=%s, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid date: tenant_id=%s, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidAppointmentDay)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /tenants/{id}/appointments - Date too far: tenant_id=%s, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /tenants/{id}/appointments - Outside working hours: tenant_id=%s, time=%s", tenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /tenants/{id}/appointments - Too late to book: tenant_id=%s, time=%s", tenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tenants/{id}/appointments - Failed to create appointment: user_id=%s, tenant_id=%s, error=%v",
				actor.UserID, tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/appointments - Appointment created: appointment_id=%s, user_id=%s, tenant_id=%s",
		result.Appointment.ID, actor.UserID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

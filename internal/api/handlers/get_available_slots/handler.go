package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTenantNotFound  = "бизнес не найден"
	msgServiceNotFound = "услуга не найдена"
	msgPastDate        = "дата в прошлом"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/available-slots, GET /api/v1/s/{slug}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceIds (optional, через запятую)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantID(r)
	if tenantID == "" {
		h.logger.Warn("GET /tenants/{id}/available-slots - Tenant not resolved")
		handlers.RespondNotFound(w, msgTenantNotFound)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, dateStr, r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/available-slots - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /tenants/{id}/available-slots - Service not found: tenant_id=%s, services=%v",
				tenantID, useCaseReq.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /tenants/{id}/available-slots - Past date: tenant_id=%s, date=%s", tenantID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /tenants/{id}/available-slots - Date too far: tenant_id=%s, date=%s", tenantID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /tenants/{id}/available-slots - Failed to get slots: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/available-slots - Slots retrieved: tenant_id=%s, date=%s, slots_count=%d",
		tenantID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

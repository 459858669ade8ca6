package reviews

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	reviewService "github.com/m04kA/SMC-SalonService/internal/service/reviews"
	"github.com/m04kA/SMC-SalonService/internal/service/reviews/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректный отзыв, оценка от 1 до 5"
	msgTenantNotFound      = "бизнес не найден"
	msgReviewNotFound      = "отзыв не найден"
	msgAppointmentNotFound = "запись не найдена"
	msgNotCompleted        = "отзыв можно оставить только после завершенной записи"
	msgReviewExists        = "отзыв к этой записи уже оставлен"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/reviews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /reviews", err)
		return
	}

	h.logger.Info("POST /reviews - Review created: review_id=%s, appointment_id=%s", result.ID, result.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PATCH /api/v1/reviews/{reviewId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var req models.UpdateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reviews/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, mux.Vars(r)["reviewId"], &req)
	if err != nil {
		h.respondError(w, "PATCH /reviews/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Approve PATCH /api/v1/reviews/{reviewId}/approval
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	var req models.ApproveReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reviews/{id}/approval - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Approve(r.Context(), actor, mux.Vars(r)["reviewId"], &req)
	if err != nil {
		h.respondError(w, "PATCH /reviews/{id}/approval", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListApproved GET /api/v1/tenants/{tenantId}/reviews, GET /api/v1/s/{slug}/reviews
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.TenantID(r)
	if tenantID == "" {
		handlers.RespondNotFound(w, msgTenantNotFound)
		return
	}

	result, err := h.service.ListApproved(r.Context(), tenantID)
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/reviews", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListAll GET /api/v1/tenants/{tenantId}/reviews/all
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListAll(r.Context(), actor, mux.Vars(r)["tenantId"])
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/reviews/all", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, reviewService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, reviewService.ErrReviewNotFound):
		h.logger.Warn("%s - Review not found", route)
		handlers.RespondNotFound(w, msgReviewNotFound)

	case errors.Is(err, reviewService.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found", route)
		handlers.RespondNotFound(w, msgAppointmentNotFound)

	case errors.Is(err, reviewService.ErrAppointmentNotCompleted):
		h.logger.Warn("%s - Appointment not completed", route)
		handlers.RespondBadRequest(w, msgNotCompleted)

	case errors.Is(err, reviewService.ErrReviewExists):
		h.logger.Warn("%s - Review exists", route)
		handlers.RespondConflict(w, msgReviewExists)

	case errors.Is(err, reviewService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

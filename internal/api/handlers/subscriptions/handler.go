package subscriptions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	subscriptionService "github.com/m04kA/SMC-SalonService/internal/service/subscriptions"
	"github.com/m04kA/SMC-SalonService/internal/service/subscriptions/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные оплаты"
	msgTenantNotFound       = "бизнес не найден"
	msgSubscriptionNotFound = "активная подписка не найдена"
	msgUnknownPlan          = "неизвестный тариф"
	msgCheckoutNotRequired  = "бесплатный тариф не требует оплаты"
	msgInvalidSignature     = "подпись платежа не прошла проверку"
	msgGatewayUnavailable   = "платежный сервис недоступен, попробуйте позже"
)

type Handler struct {
	service SubscriptionService
	logger  Logger
}

func NewHandler(service SubscriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Plans GET /api/v1/plans
func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Plans())
}

// StartCheckout POST /api/v1/tenants/{tenantId}/checkout
// Бесплатный тариф активируется сразу, для платного возвращаются параметры виджета
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	var req models.StartCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.StartCheckout(r.Context(), actor, tenantID, &req)
	if err != nil {
		h.respondError(w, "POST /tenants/{id}/checkout", err)
		return
	}

	h.logger.Info("POST /tenants/{id}/checkout - Checkout started: tenant_id=%s, plan=%s, activated=%t",
		tenantID, req.PlanID, result.Activated)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CompleteCheckout POST /api/v1/tenants/{tenantId}/checkout/complete
// dismissed и load_failed возвращаются как результат, а не как ошибка
func (h *Handler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}
	tenantID := mux.Vars(r)["tenantId"]

	var req models.CompleteCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/checkout/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CompleteCheckout(r.Context(), actor, tenantID, &req)
	if err != nil {
		h.respondError(w, "POST /tenants/{id}/checkout/complete", err)
		return
	}

	h.logger.Info("POST /tenants/{id}/checkout/complete - Checkout finished: tenant_id=%s, plan=%s, outcome=%s",
		tenantID, req.PlanID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Current GET /api/v1/tenants/{tenantId}/subscription
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.Current(r.Context(), actor, mux.Vars(r)["tenantId"])
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/subscription", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// History GET /api/v1/tenants/{tenantId}/subscriptions
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.History(r.Context(), actor, mux.Vars(r)["tenantId"])
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/subscriptions", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Payments GET /api/v1/tenants/{tenantId}/payments
func (h *Handler) Payments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.RequireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.Payments(r.Context(), actor, mux.Vars(r)["tenantId"])
	if err != nil {
		h.respondError(w, "GET /tenants/{id}/payments", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, subscriptionService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, subscriptionService.ErrUnknownPlan):
		h.logger.Warn("%s - Unknown plan: %v", route, err)
		handlers.RespondBadRequest(w, msgUnknownPlan)

	case errors.Is(err, subscriptionService.ErrCheckoutNotRequired):
		h.logger.Warn("%s - Checkout not required", route)
		handlers.RespondBadRequest(w, msgCheckoutNotRequired)

	case errors.Is(err, subscriptionService.ErrInvalidSignature):
		h.logger.Warn("%s - Invalid signature", route)
		handlers.RespondBadRequest(w, msgInvalidSignature)

	case errors.Is(err, subscriptionService.ErrTenantNotFound):
		h.logger.Warn("%s - Tenant not found", route)
		handlers.RespondNotFound(w, msgTenantNotFound)

	case errors.Is(err, subscriptionService.ErrSubscriptionNotFound):
		handlers.RespondNotFound(w, msgSubscriptionNotFound)

	case errors.Is(err, subscriptionService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w)

	case errors.Is(err, subscriptionService.ErrGatewayUnavailable):
		h.logger.Error("%s - Gateway unavailable: %v", route, err)
		handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// StartCheckoutRequest выбор тарифа
type StartCheckoutRequest struct {
	PlanID string `json:"planId" validate:"required,oneof=free basic pro enterprise"`
}

// CompleteCheckoutRequest результат виджета оплаты
type CompleteCheckoutRequest struct {
	PlanID    string `json:"planId" validate:"required,oneof=free basic pro enterprise"`
	Outcome   string `json:"outcome" validate:"required,oneof=success dismissed load_failed"`
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Signature string `json:"signature"`
}

// Prefill данные покупателя для виджета
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact,omitempty"`
}

// Theme оформление виджета
type Theme struct {
	Color string `json:"color"`
}

// WidgetOptions параметры открытия виджета оплаты
type WidgetOptions struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"` // минимальные единицы
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"orderId"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

// StartCheckoutResponse бесплатный тариф активируется сразу, платный возвращает параметры виджета
type StartCheckoutResponse struct {
	Activated    bool                  `json:"activated"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	Widget       *WidgetOptions        `json:"widget,omitempty"`
}

// CompleteCheckoutResponse итог оплаты
type CompleteCheckoutResponse struct {
	Outcome      string                `json:"outcome"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	Payment      *PaymentResponse      `json:"payment,omitempty"`
}

// PlanResponse тариф
type PlanResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// SubscriptionResponse подписка
type SubscriptionResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	PlanID      string    `json:"planId"`
	Status      string    `json:"status"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	PaymentID   *string   `json:"paymentId,omitempty"`
	AmountMinor int64     `json:"amountMinor"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PaymentResponse запись журнала платежей
type PaymentResponse struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenantId"`
	SubscriptionID   *string   `json:"subscriptionId,omitempty"`
	AmountMinor      int64     `json:"amountMinor"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	GatewayPaymentID *string   `json:"gatewayPaymentId,omitempty"`
	GatewayOrderID   *string   `json:"gatewayOrderId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// FromDomainPlans конвертирует встроенную таблицу тарифов
func FromDomainPlans(plans []domain.Plan) []*PlanResponse {
	result := make([]*PlanResponse, 0, len(plans))
	for _, p := range plans {
		result = append(result, &PlanResponse{
			ID:          string(p.ID),
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
		})
	}
	return result
}

// FromDomainSubscription конвертирует domain.Subscription в SubscriptionResponse
func FromDomainSubscription(s *domain.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		PlanID:      string(s.PlanID),
		Status:      string(s.Status),
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		PaymentID:   s.PaymentID,
		AmountMinor: s.AmountMinor,
		CreatedAt:   s.CreatedAt,
	}
}

func FromDomainSubscriptions(subscriptions []*domain.Subscription) []*SubscriptionResponse {
	result := make([]*SubscriptionResponse, 0, len(subscriptions))
	for _, s := range subscriptions {
		result = append(result, FromDomainSubscription(s))
	}
	return result
}

// FromDomainPayment конвертирует domain.PaymentRecord в PaymentResponse
func FromDomainPayment(p *domain.PaymentRecord) *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		TenantID:         p.TenantID,
		SubscriptionID:   p.SubscriptionID,
		AmountMinor:      p.AmountMinor,
		Currency:         p.Currency,
		Status:           string(p.Status),
		GatewayPaymentID: p.GatewayPaymentID,
		GatewayOrderID:   p.GatewayOrderID,
		CreatedAt:        p.CreatedAt,
	}
}

func FromDomainPayments(payments []*domain.PaymentRecord) []*PaymentResponse {
	result := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, FromDomainPayment(p))
	}
	return result
}

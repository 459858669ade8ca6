package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SelectServicesRequest выбор услуг на первом шаге
type SelectServicesRequest struct {
	ServiceIDs []string `json:"serviceIds" validate:"max=20,dive,required"`
}

// ReviewInput отзыв, оставляемый на шаге review
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"max=2000"`
}

// EventRequest событие сценария и данные, нужные этому событию
type EventRequest struct {
	Event string `json:"event" validate:"required,oneof=choose_datetime submit start_payment payment_done review_done go_back restart"`

	// choose_datetime
	ServiceIDs []string `json:"serviceIds,omitempty"`
	Date       string   `json:"date,omitempty"`
	Time       string   `json:"time,omitempty"`
	Location   string   `json:"location,omitempty" validate:"omitempty,oneof=parlor home"`
	Address    string   `json:"address,omitempty" validate:"max=500"`
	Phone      string   `json:"phone,omitempty" validate:"max=32"`
	Notes      string   `json:"notes,omitempty" validate:"max=500"`

	// start_payment / payment_done
	PaymentMethod string `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash online"`
	PaymentStatus string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending paid failed refunded"`
	TransactionID string `json:"transactionId,omitempty" validate:"max=128"`

	// review_done, необязателен
	Review *ReviewInput `json:"review,omitempty"`
}

// FlowResponse состояние сессии
type FlowResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenantId"`
	State         string    `json:"state"`
	AllowedEvents []string  `json:"allowedEvents"`
	ServiceIDs    []string  `json:"serviceIds"`
	Date          string    `json:"date,omitempty"`
	Time          string    `json:"time,omitempty"`
	Location      string    `json:"location"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	AppointmentID string    `json:"appointmentId,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	TransactionID string    `json:"transactionId,omitempty"`
	ReviewID      string    `json:"reviewId,omitempty"`
	Warning       string    `json:"warning,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDomainFlow конвертирует domain.BookingFlow в FlowResponse
func FromDomainFlow(f *domain.BookingFlow) *FlowResponse {
	events := f.AllowedEvents()
	allowed := make([]string, 0, len(events))
	for _, e := range events {
		allowed = append(allowed, string(e))
	}

	return &FlowResponse{
		ID:            f.ID,
		TenantID:      f.TenantID,
		State:         string(f.State),
		AllowedEvents: allowed,
		ServiceIDs:    f.ServiceIDs,
		Date:          f.Date,
		Time:          f.Time.String(),
		Location:      string(f.Location),
		Address:       f.Address,
		Phone:         f.Phone,
		Notes:         f.Notes,
		AppointmentID: f.AppointmentID,
		PaymentMethod: string(f.PaymentMethod),
		TransactionID: f.TransactionID,
		ReviewID:      f.ReviewID,
		Warning:       f.Warning,
		UpdatedAt:     f.UpdatedAt,
	}
}

package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// FlowState шаг клиентского сценария записи
type FlowState string

const (
	FlowSelectingServices FlowState = "selecting_services"
	FlowDatetimeChosen    FlowState = "datetime_chosen"
	FlowSubmitted         FlowState = "submitted"
	FlowPayment           FlowState = "payment"
	FlowReview            FlowState = "review"
	FlowThankYou          FlowState = "thank_you"
)

// FlowEvent событие сценария
type FlowEvent string

const (
	EventChooseDatetime FlowEvent = "choose_datetime"
	EventSubmit         FlowEvent = "submit"
	EventStartPayment   FlowEvent = "start_payment"
	EventPaymentDone    FlowEvent = "payment_done"
	EventReviewDone     FlowEvent = "review_done"
	EventGoBack         FlowEvent = "go_back"
	EventRestart        FlowEvent = "restart"
)

type flowKey struct {
	from  FlowState
	event FlowEvent
}

var flowTransitions = map[flowKey]FlowState{
	{FlowSelectingServices, EventChooseDatetime}: FlowDatetimeChosen,
	{FlowDatetimeChosen, EventSubmit}:            FlowSubmitted,
	{FlowDatetimeChosen, EventGoBack}:            FlowSelectingServices,
	{FlowSubmitted, EventStartPayment}:           FlowPayment,
	{FlowPayment, EventPaymentDone}:              FlowReview,
	{FlowPayment, EventGoBack}:                   FlowSelectingServices,
	{FlowReview, EventReviewDone}:                FlowThankYou,
	{FlowReview, EventGoBack}:                    FlowSelectingServices,
	{FlowThankYou, EventRestart}:                 FlowSelectingServices,
}

// NextFlowState возвращает следующее состояние или ErrInvalidTransition
func NextFlowState(from FlowState, event FlowEvent) (FlowState, error) {
	to, ok := flowTransitions[flowKey{from, event}]
	if !ok {
		return from, fmt.Errorf("%w: %s --%s-->", ErrInvalidTransition, from, event)
	}
	return to, nil
}

// BookingFlow сессия клиента в сценарии записи
type BookingFlow struct {
	ID            string           `json:"id"`
	TenantID      string           `json:"tenantId"`
	CustomerID    string           `json:"customerId"`
	State         FlowState        `json:"state"`
	ServiceIDs    []string         `json:"serviceIds"`
	Date          string           `json:"date,omitempty"` // YYYY-MM-DD
	Time          types.TimeString `json:"time,omitempty"`
	Location      Location         `json:"location"`
	Address       string           `json:"address,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	AppointmentID string           `json:"appointmentId,omitempty"`
	PaymentMethod PaymentMethod    `json:"paymentMethod,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	ReviewID      string           `json:"reviewId,omitempty"`
	Warning       string           `json:"warning,omitempty"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// NewBookingFlow новая сессия в начальном состоянии
func NewBookingFlow(id, tenantID, customerID string, now time.Time) *BookingFlow {
	return &BookingFlow{
		ID:         id,
		TenantID:   tenantID,
		CustomerID: customerID,
		State:      FlowSelectingServices,
		ServiceIDs: []string{},
		Location:   LocationParlor,
		UpdatedAt:  now,
	}
}

// Apply выполняет переход и очищает контекст при возврате к выбору услуг
func (f *BookingFlow) Apply(event FlowEvent, now time.Time) error {
	next, err := NextFlowState(f.State, event)
	if err != nil {
		return err
	}

	if next == FlowSelectingServices {
		f.resetProgress(event == EventRestart)
	}

	f.State = next
	f.UpdatedAt = now
	return nil
}

// resetProgress отбрасывает контекст оплаты и отзыва
// При restart дополнительно очищается выбор услуг и даты
func (f *BookingFlow) resetProgress(full bool) {
	f.AppointmentID = ""
	f.PaymentMethod = ""
	f.TransactionID = ""
	f.ReviewID = ""
	f.Warning = ""
	if full {
		f.ServiceIDs = []string{}
		f.Date = ""
		f.Time = ""
		f.Location = LocationParlor
		f.Address = ""
		f.Phone = ""
		f.Notes = ""
	}
}

// flowEventOrder порядок событий в AllowedEvents
var flowEventOrder = []FlowEvent{
	EventChooseDatetime,
	EventSubmit,
	EventStartPayment,
	EventPaymentDone,
	EventReviewDone,
	EventGoBack,
	EventRestart,
}

// AllowedEvents события, допустимые в текущем состоянии
func (f *BookingFlow) AllowedEvents() []FlowEvent {
	events := make([]FlowEvent, 0, 2)
	for _, e := range flowEventOrder {
		if _, ok := flowTransitions[flowKey{f.State, e}]; ok {
			events = append(events, e)
		}
	}
	return events
}

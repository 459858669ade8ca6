package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFlowState_HappyPath(t *testing.T) {
	state := FlowSelectingServices
	path := []struct {
		event FlowEvent
		want  FlowState
	}{
		{EventChooseDatetime, FlowDatetimeChosen},
		{EventSubmit, FlowSubmitted},
		{EventStartPayment, FlowPayment},
		{EventPaymentDone, FlowReview},
		{EventReviewDone, FlowThankYou},
		{EventRestart, FlowSelectingServices},
	}

	for _, step := range path {
		next, err := NextFlowState(state, step.event)
		require.NoError(t, err, "%s --%s-->", state, step.event)
		assert.Equal(t, step.want, next)
		state = next
	}
}

func TestNextFlowState_RejectsUndefined(t *testing.T) {
	tests := []struct {
		from  FlowState
		event FlowEvent
	}{
		{FlowSelectingServices, EventSubmit},
		{FlowSelectingServices, EventGoBack},
		{FlowSubmitted, EventGoBack},
		{FlowSubmitted, EventPaymentDone},
		{FlowThankYou, EventGoBack},
		{FlowReview, EventRestart},
	}

	for _, tt := range tests {
		next, err := NextFlowState(tt.from, tt.event)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, tt.from, next)
	}
}

func TestBookingFlow_GoBackDiscardsPaymentContext(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	flow := NewBookingFlow("f1", "t1", "c1", now)
	flow.State = FlowPayment
	flow.ServiceIDs = []string{"s1"}
	flow.Date = "2026-03-12"
	flow.AppointmentID = "a1"
	flow.PaymentMethod = PaymentMethodOnline
	flow.TransactionID = "tx"

	require.NoError(t, flow.Apply(EventGoBack, now))

	assert.Equal(t, FlowSelectingServices, flow.State)
	assert.Empty(t, flow.AppointmentID)
	assert.Empty(t, flow.PaymentMethod)
	assert.Empty(t, flow.TransactionID)
	assert.Equal(t, []string{"s1"}, flow.ServiceIDs)
	assert.Equal(t, "2026-03-12", flow.Date)
}

func TestBookingFlow_RestartClearsSelection(t *testing.T) {
	now := time.Now()
	flow := NewBookingFlow("f1", "t1", "c1", now)
	flow.State = FlowThankYou
	flow.ServiceIDs = []string{"s1"}
	flow.Location = LocationHome
	flow.Address = "12 MG Road"

	require.NoError(t, flow.Apply(EventRestart, now))

	assert.Equal(t, FlowSelectingServices, flow.State)
	assert.Empty(t, flow.ServiceIDs)
	assert.Equal(t, LocationParlor, flow.Location)
	assert.Empty(t, flow.Address)
}

func TestBookingFlow_AllowedEvents(t *testing.T) {
	flow := NewBookingFlow("f1", "t1", "c1", time.Now())
	assert.Equal(t, []FlowEvent{EventChooseDatetime}, flow.AllowedEvents())

	flow.State = FlowPayment
	assert.Equal(t, []FlowEvent{EventPaymentDone, EventGoBack}, flow.AllowedEvents())

	flow.State = FlowThankYou
	assert.Equal(t, []FlowEvent{EventRestart}, flow.AllowedEvents())
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBusinessCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "salon-test")

	m.AppointmentCreated("home")
	m.AppointmentCreated("home")
	m.CheckoutOutcome("pro", "cancelled")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AppointmentsCreated.WithLabelValues("home")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CheckoutOutcomes.WithLabelValues("pro", "cancelled")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.AppointmentCreated("parlor")
		m.StatusChanged("pending", "confirmed")
		m.CheckoutOutcome("free", "activated")
		m.NotificationFailed("webhook")
	})
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллекция prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
	DBQueryDuration   *prometheus.HistogramVec

	AppointmentsCreated *prometheus.CounterVec
	StatusTransitions   *prometheus.CounterVec
	CheckoutOutcomes    *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_appointments_created_total",
			Help:        "Appointments created by location",
			ConstLabels: constLabels,
		}, []string{"location"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_appointment_status_transitions_total",
			Help:        "Appointment status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		CheckoutOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_checkout_outcomes_total",
			Help:        "Subscription checkout outcomes by plan",
			ConstLabels: constLabels,
		}, []string{"plan", "outcome"}),
		NotificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_owner_notifications_failed_total",
			Help:        "Owner notifications that could not be delivered",
			ConstLabels: constLabels,
		}, []string{"channel"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.DBQueryDuration,
		m.AppointmentsCreated,
		m.StatusTransitions,
		m.CheckoutOutcomes,
		m.NotificationsFailed,
	)

	return m
}

// Методы бизнес-метрик можно вызывать на nil *Metrics, когда метрики выключены

func (m *Metrics) AppointmentCreated(location string) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(location).Inc()
}

func (m *Metrics) StatusChanged(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) CheckoutOutcome(plan, outcome string) {
	if m == nil {
		return
	}
	m.CheckoutOutcomes.WithLabelValues(plan, outcome).Inc()
}

func (m *Metrics) NotificationFailed(channel string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(channel).Inc()
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsCreated     *prometheus.CounterVec
	BookingsRejected    *prometheus.CounterVec
	BookingTransitions  *prometheus.CounterVec
	SlotLockWaitSeconds *prometheus.HistogramVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном registry (удобно в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
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
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created, by source and over-capacity flag",
			ConstLabels: constLabels,
		}, []string{"source", "over_capacity"}),

		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_rejected_total",
			Help:        "Booking attempts rejected, by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking status transitions",
			ConstLabels: constLabels,
		}, []string{"to"}),

		SlotLockWaitSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "slot_lock_wait_seconds",
			Help:        "Time spent waiting for the per-slot lock",
			Buckets:     []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2},
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingsRejected,
		m.BookingTransitions,
		m.SlotLockWaitSeconds,
	)

	return m
}

// Все Record-методы допускают nil-получателя: метрики можно выключить в конфиге

// BookingCreated учитывает созданное бронирование
func (m *Metrics) BookingCreated(source string, overCapacity bool) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(source, strconv.FormatBool(overCapacity)).Inc()
}

// BookingRejected учитывает отказ в бронировании (slot_full, invalid_date, ...)
func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(reason).Inc()
}

// BookingTransition учитывает переход статуса
func (m *Metrics) BookingTransition(to string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(to).Inc()
}

// SlotLockWait учитывает время ожидания блокировки слота (acquired / timeout)
func (m *Metrics) SlotLockWait(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.SlotLockWaitSeconds.WithLabelValues(result).Observe(d.Seconds())
}

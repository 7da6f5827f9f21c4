package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBTxRetries        *prometheus.CounterVec

	// Записи
	AppointmentsTotal     *prometheus.CounterVec
	BookingConflicts      *prometheus.CounterVec
	SlotQueryDuration     *prometheus.HistogramVec
	SlotQueriesSuperseded *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
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
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),
		DBTxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_serialization_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}, []string{}),

		AppointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_total",
			Help:        "Appointment state changes by resulting status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}, []string{"source"}),
		SlotQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "slot_query_duration_seconds",
			Help:        "Available slots computation duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"mode"}),
		SlotQueriesSuperseded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_queries_superseded_total",
			Help:        "Slot queries cancelled by a newer query from the same session",
			ConstLabels: constLabels,
		}, []string{}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTxRetries,
		m.AppointmentsTotal,
		m.BookingConflicts,
		m.SlotQueryDuration,
		m.SlotQueriesSuperseded,
	)

	return m
}

// ObserveHTTP фиксирует один HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveQuery(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// IncTxRetry увеличивает счётчик повторов serializable транзакций
func (m *Metrics) IncTxRetry() {
	if m == nil {
		return
	}
	m.DBTxRetries.WithLabelValues().Inc()
}

// IncAppointment фиксирует переход записи в статус
func (m *Metrics) IncAppointment(status string) {
	if m == nil {
		return
	}
	m.AppointmentsTotal.WithLabelValues(status).Inc()
}

// IncConflict фиксирует отказ из-за занятого слота.
// source: "recheck" (повторная проверка в транзакции) или "constraint" (exclusion constraint БД)
func (m *Metrics) IncConflict(source string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(source).Inc()
}

// ObserveSlotQuery фиксирует длительность расчёта слотов
func (m *Metrics) ObserveSlotQuery(mode string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SlotQueryDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// IncSuperseded фиксирует запрос слотов, вытесненный более новым
func (m *Metrics) IncSuperseded() {
	if m == nil {
		return
	}
	m.SlotQueriesSuperseded.WithLabelValues().Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
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

	// Бизнес-метрики
	BookingsCreated   *prometheus.CounterVec
	SlotConflicts     *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
}

// New создает и регистрирует метрики в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"database"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"database"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"database"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"database"}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of created bookings by facility source",
			ConstLabels: constLabels,
		}, []string{"source"}),

		SlotConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Number of rejected bookings due to an occupied slot",
			ConstLabels: constLabels,
		}, []string{"stage"}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Number of booking status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
	}
}

// BookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCreated(source string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(source).Inc()
}

// SlotConflict увеличивает счетчик конфликтов слотов
// stage: "precheck" - найдено проверкой, "constraint" - отбито уникальным индексом
func (m *Metrics) SlotConflict(stage string) {
	if m == nil {
		return
	}
	m.SlotConflicts.WithLabelValues(stage).Inc()
}

// StatusTransition увеличивает счетчик переходов статусов
func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

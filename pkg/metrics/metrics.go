// Package metrics Prometheus метрики сервиса.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ScheduledNotifications *prometheus.GaugeVec
	SchedulerOperations    *prometheus.CounterVec
	Deliveries             *prometheus.CounterVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		ScheduledNotifications: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scheduler_scheduled_notifications",
			Help: "Number of notifications currently held in the scheduler registry",
		}, []string{"service"}),

		SchedulerOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_operations_total",
			Help: "Scheduler operations by result",
		}, []string{"service", "operation", "result"}),

		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_deliveries_total",
			Help: "Fired notifications by delivery result",
		}, []string{"service", "result"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
	}
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// SetScheduledCount обновляет число запланированных уведомлений
func (m *Metrics) SetScheduledCount(count int) {
	m.ScheduledNotifications.WithLabelValues(m.serviceName).Set(float64(count))
}

// ObserveOperation учитывает операцию планировщика
func (m *Metrics) ObserveOperation(operation, result string) {
	m.SchedulerOperations.WithLabelValues(m.serviceName, operation, result).Inc()
}

// ObserveDelivery учитывает доставку сработавшего уведомления
func (m *Metrics) ObserveDelivery(result string) {
	m.Deliveries.WithLabelValues(m.serviceName, result).Inc()
}

// ObserveDBQuery учитывает запрос к БД
func (m *Metrics) ObserveDBQuery(operation, status string, duration time.Duration) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(duration.Seconds())
}

// SetDBStats обновляет состояние пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(stats.OpenConnections))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(stats.InUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(stats.Idle))
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты бизнес-операций для счётчиков
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"

	PoolingJoined   = "joined"
	PoolingNewGroup = "new_group"
	PoolingSolo     = "solo"
)

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil.
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	DBConnections       *prometheus.GaugeVec

	ParkingBookingsTotal *prometheus.CounterVec
	RidePoolingTotal     *prometheus.CounterVec
	NoShowSweptTotal     prometheus.Counter
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: labels,
		}, []string{"state"}),
		ParkingBookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_bookings_total",
			Help:        "Parking booking attempts by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		RidePoolingTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ride_pooling_total",
			Help:        "Ride bookings by pooling result",
			ConstLabels: labels,
		}, []string{"result"}),
		NoShowSweptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "noshow_swept_total",
			Help:        "Parking bookings moved to no_show by the sweep",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBConnections,
		m.ParkingBookingsTotal,
		m.RidePoolingTotal,
		m.NoShowSweptTotal,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues("open").Set(float64(open))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
}

// IncParkingBooking увеличивает счётчик попыток бронирования парковки
func (m *Metrics) IncParkingBooking(outcome string) {
	if m == nil {
		return
	}
	m.ParkingBookingsTotal.WithLabelValues(outcome).Inc()
}

// IncRidePooling увеличивает счётчик результатов пулинга поездок
func (m *Metrics) IncRidePooling(result string) {
	if m == nil {
		return
	}
	m.RidePoolingTotal.WithLabelValues(result).Inc()
}

// AddNoShowSwept увеличивает счётчик бронирований, переведённых в no_show
func (m *Metrics) AddNoShowSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.NoShowSweptTotal.Add(float64(n))
}

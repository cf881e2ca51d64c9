package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const promNamespace = "eduhub"

// Prom bundles every metric the API emits. Handlers and repos receive the
// whole bundle; a nil *Prom disables instrumentation, which is how tests run.
type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// store
	DbQueryDuration *prometheus.HistogramVec
	DbErrorsTotal   *prometheus.CounterVec

	// auth
	LoginsTotal  *prometheus.CounterVec
	SignupsTotal *prometheus.CounterVec
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: newCounter("", "http_requests_total",
			"Total HTTP requests processed.",
			"method", "route", "status"),
		RequestsDuration: newHistogram("", "http_request_duration_seconds",
			"HTTP request latency distributions.",
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			"method", "route", "status"),
		InFlight: newGauge("", "http_in_flight_requests",
			"Current number of in-flight HTTP requests.",
			"method", "route"),

		DbQueryDuration: newHistogram("db", "query_duration_seconds",
			"Store operation latency by logical op.",
			[]float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5, 1, 2, 5},
			"op", "status"),
		DbErrorsTotal: newCounter("db", "errors_total",
			"Store errors by logical op and class.",
			"op", "class"),

		LoginsTotal: newCounter("auth", "logins_total",
			"Login attempts by result.",
			"result"), // result=ok|rejected
		SignupsTotal: newCounter("auth", "signups_total",
			"Signup attempts by result.",
			"result"), // result=ok|conflict|invalid
	}

	reg.MustRegister(
		p.RequestsTotal, p.RequestsDuration, p.InFlight,
		p.DbQueryDuration, p.DbErrorsTotal,
		p.LoginsTotal, p.SignupsTotal,
	)

	return p
}

// GinMiddleware records one observation per request against the route
// template, so /api/subjects/:id stays a single series.
func (p *Prom) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method

		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()

		start := time.Now()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
	}
}

func newCounter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func newGauge(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func newHistogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: promNamespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
}

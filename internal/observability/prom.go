package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// store
	StoreOpsTotal *prometheus.CounterVec
	MatchDuration prometheus.Histogram
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jobsplus",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "jobsplus",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "jobsplus",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		StoreOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "jobsplus",
				Subsystem: "store",
				Name:      "ops_total",
				Help:      "Store operations by entity and outcome.",
			},
			[]string{"entity", "op", "outcome"},
		),
		MatchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "jobsplus",
				Subsystem: "matching",
				Name:      "duration_seconds",
				Help:      "Latency of one full match-scoring pass.",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.StoreOpsTotal, p.MatchDuration)

	return p
}

// RegisterEntityGauges exposes live entity counts straight off the stores.
func RegisterEntityGauges(reg prometheus.Registerer, usersCount, jobsCount func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "jobsplus",
			Subsystem: "store",
			Name:      "users",
			Help:      "Current number of stored users.",
		},
		func() float64 { return float64(usersCount()) },
	))
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "jobsplus",
			Subsystem: "store",
			Name:      "jobs",
			Help:      "Current number of stored jobs.",
		},
		func() float64 { return float64(jobsCount()) },
	))
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}

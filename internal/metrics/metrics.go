package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"employee-service/internal/core"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	Seconds  *prometheus.HistogramVec
	Requests *prometheus.CounterVec
	Events   *prometheus.CounterVec
}

// New registers the service collectors on a dedicated registry.
func New(namespace string) *Metrics {
	seconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_duration_seconds",
		Help:      "Request latencies in seconds.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"method", "route", "code"})

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of requests.",
	}, []string{"method", "route", "code"})

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Employee events handed to the broker, by kind and result.",
	}, []string{"kind", "result"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		seconds,
		requests,
		events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry: registry,
		Seconds:  seconds,
		Requests: requests,
		Events:   events,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by the chi route
// pattern, so ids in paths do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		m.Requests.WithLabelValues(r.Method, route, code).Inc()
		m.Seconds.WithLabelValues(r.Method, route, code).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) observeEvent(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Events.WithLabelValues(kind, result).Inc()
}

type instrumentedPublisher struct {
	next    core.EventPublisher
	metrics *Metrics
}

// InstrumentPublisher counts publish outcomes of p.
func InstrumentPublisher(p core.EventPublisher, m *Metrics) core.EventPublisher {
	return &instrumentedPublisher{next: p, metrics: m}
}

func (p *instrumentedPublisher) PublishEmployee(ctx context.Context, e *core.Employee) error {
	err := p.next.PublishEmployee(ctx, e)
	p.metrics.observeEvent("upsert", err)
	return err
}

func (p *instrumentedPublisher) PublishDeletion(ctx context.Context, id uuid.UUID) error {
	err := p.next.PublishDeletion(ctx, id)
	p.metrics.observeEvent("delete", err)
	return err
}

func (p *instrumentedPublisher) Close() error {
	return p.next.Close()
}

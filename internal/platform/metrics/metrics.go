// Package metrics registers the service's Prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration service.
type Metrics struct {
	HTTPDuration *prometheus.HistogramVec

	InscripcionesCreadas    prometheus.Counter
	InscripcionesRechazadas *prometheus.CounterVec
	PersonasRegistradas     prometheus.Counter
	Logins                  *prometheus.CounterVec
}

// New creates and registers all instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coicit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),
		InscripcionesCreadas: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coicit_inscripciones_creadas_total",
			Help: "Enrollments accepted",
		}),
		InscripcionesRechazadas: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "coicit_inscripciones_rechazadas_total",
			Help: "Enrollments rejected, by rule",
		}, []string{"motivo"}),
		PersonasRegistradas: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coicit_personas_registradas_total",
			Help: "Participants registered",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "coicit_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"resultado"}),
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method, status string, start time.Time) {
	m.HTTPDuration.WithLabelValues(route, method, status).Observe(time.Since(start).Seconds())
}

// IncInscripcionCreada records an accepted enrollment.
func (m *Metrics) IncInscripcionCreada() {
	m.InscripcionesCreadas.Inc()
}

// IncInscripcionRechazada records a rejected enrollment by rule name.
func (m *Metrics) IncInscripcionRechazada(motivo string) {
	m.InscripcionesRechazadas.WithLabelValues(motivo).Inc()
}

// IncLogin records a login attempt outcome ("ok" or "fallido").
func (m *Metrics) IncLogin(resultado string) {
	m.Logins.WithLabelValues(resultado).Inc()
}

// Middleware instruments every request with the HTTP duration histogram.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		// Label by route pattern, not raw path, to keep cardinality bounded.
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.ObserveHTTP(route, r.Method, strconv.Itoa(sw.status), start)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

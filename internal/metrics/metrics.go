// Package metrics exposes Prometheus collectors for the drill service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted   prometheus.Counter
	SessionsCompleted prometheus.Counter
	AnswersSubmitted  *prometheus.CounterVec
	PointsAwarded     prometheus.Counter
	QuestionsSeeded   prometheus.Counter

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genrequiz_sessions_started_total",
			Help: "Practice sessions started",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genrequiz_sessions_completed_total",
			Help: "Practice sessions that reached their requested count",
		}),
		AnswersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "genrequiz_answers_total",
			Help: "Answers accepted, by result",
		}, []string{"result"}),
		PointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genrequiz_points_awarded_total",
			Help: "Points awarded across all sessions",
		}),
		QuestionsSeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "genrequiz_questions_seeded_total",
			Help: "Questions added from noun lists",
		}),
		RequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}, []string{"method", "endpoint"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SessionsStarted,
		m.SessionsCompleted,
		m.AnswersSubmitted,
		m.PointsAwarded,
		m.QuestionsSeeded,
		m.RequestCounter,
		m.RequestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}

// AnswerRecorded counts one accepted answer and its points.
func (m *Metrics) AnswerRecorded(correct bool, points int, completed bool) {
	if m == nil {
		return
	}
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.AnswersSubmitted.WithLabelValues(result).Inc()
	m.PointsAwarded.Add(float64(points))
	if completed {
		m.SessionsCompleted.Inc()
	}
}

func (m *Metrics) Seeded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.QuestionsSeeded.Add(float64(n))
}

// ObserveRequest records one HTTP request. endpoint should be the route
// pattern, not the raw path.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

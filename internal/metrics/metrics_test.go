package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerRecorded(t *testing.T) {
	m := New()

	m.AnswerRecorded(true, 10, false)
	m.AnswerRecorded(false, 0, true)
	m.AnswerRecorded(true, 5, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnswersSubmitted.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnswersSubmitted.WithLabelValues("incorrect")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.PointsAwarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCompleted))
}

func TestSessionStartedAndSeeded(t *testing.T) {
	m := New()

	m.SessionStarted()
	m.SessionStarted()
	m.Seeded(3)
	m.Seeded(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.QuestionsSeeded))
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/sessions/{id}", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/sessions/{id}", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.SessionStarted()
		m.AnswerRecorded(true, 10, true)
		m.Seeded(4)
		m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Second)
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.SessionStarted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "genrequiz_sessions_started_total 1")
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/genrequiz/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady returns 200 when the database answers and the question bank
// is not empty, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	log := logger.FromContext(ctx)

	if err := s.DB.PingContext(ctx); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		return
	}

	count, err := s.QuestionService.CountQuestions(ctx)
	if err != nil || count == 0 {
		log.Warn("readiness check failed - question bank: count=%d, err=%v", count, err)
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "question bank empty"})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"status": "ready", "questions": count})
}

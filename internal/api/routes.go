package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/genrequiz/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", s.Metrics.Handler())

	r.Route("/questions", func(r chi.Router) {
		r.Get("/", s.handleListQuestions)
		r.Get("/{id}", s.handleGetQuestion)
		r.Get("/{id}/hints", s.handleQuestionHints)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Use(learnerMiddleware)
		r.Post("/", s.handleStartSession)
		r.Get("/", s.handleListSessions)
		r.Get("/{id}", s.handleGetSession)
		r.Get("/{id}/next", s.handleNextQuestion)
		r.With(s.SubmitLimiter.Middleware).Post("/{id}/answers", s.handleSubmitAnswer)
		r.Get("/{id}/results", s.handleResults)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.NewNotFoundError("route", r.URL.Path))
	})
	return r
}

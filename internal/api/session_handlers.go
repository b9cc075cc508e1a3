package api

import (
	"net/http"

	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/models"
)

type startSessionRequest struct {
	RequestedCount int `json:"requested_count"`
	Difficulty     int `json:"difficulty"`
}

type submitAnswerRequest struct {
	QuestionID       string  `json:"question_id"`
	Gender           string  `json:"gender"`
	HintsUsed        int     `json:"hints_used"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
}

type sessionResponse struct {
	*models.Session
	Complete bool `json:"complete"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("starting session: requested_count=%d, difficulty=%d", req.RequestedCount, req.Difficulty)

	session, err := s.SessionService.StartSession(r.Context(), learnerFromContext(r.Context()), req.RequestedCount, req.Difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, sessionResponse{Session: session, Complete: session.IsComplete()})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	filter := models.SessionFilter{
		LearnerID: learnerFromContext(r.Context()),
		Status:    models.SessionStatus(r.URL.Query().Get("status")),
	}
	var err error
	if filter.Limit, err = queryInt(r, "limit", 50); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		handleError(w, r, err)
		return
	}

	sessions, err := s.SessionService.ListSessions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.GetSession(r.Context(), learnerFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse{Session: session, Complete: session.IsComplete()})
}

// handleNextQuestion answers 204 when nothing is left to ask.
func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.SessionService.NextQuestion(r.Context(), learnerFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if q == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := sessionIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("answer received: session_id=%d, question_id=%s", id, req.QuestionID)

	result, err := s.AnswerService.SubmitAnswer(r.Context(), learnerFromContext(r.Context()), id,
		req.QuestionID, req.Gender, req.HintsUsed, req.TimeTakenSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.ResultsService.Summarize(r.Context(), learnerFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

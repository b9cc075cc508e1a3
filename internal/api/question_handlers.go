package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/models"
)

type questionListResponse struct {
	Questions []models.Question `json:"questions"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing questions")

	filter := models.QuestionFilter{Gender: models.Gender(r.URL.Query().Get("gender"))}
	var err error
	if filter.Difficulty, err = queryInt(r, "difficulty", 0); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit", 50); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		handleError(w, r, err)
		return
	}

	questions, total, err := s.QuestionService.ListQuestions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}

	writeJSON(w, r, http.StatusOK, questionListResponse{
		Questions: questions,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	})
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.QuestionService.GetQuestion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleQuestionHints(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	hints, err := s.QuestionService.Hints(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"question_id": id,
		"hints":       hints,
	})
}

package api

import (
	"github.com/vytor/genrequiz/internal/db"
	"github.com/vytor/genrequiz/internal/metrics"
	"github.com/vytor/genrequiz/internal/services"
)

type Server struct {
	DB              *db.DB
	QuestionService services.QuestionService
	SessionService  services.SessionService
	AnswerService   services.AnswerService
	ResultsService  services.ResultsService
	Metrics         *metrics.Metrics
	// SubmitLimiter throttles answer submission per learner. nil disables it.
	SubmitLimiter *LearnerLimiter
}

package services

import (
	"context"
	stderrors "errors"
	"math"
	"strings"

	"github.com/vytor/genrequiz/internal/errors"
	"github.com/vytor/genrequiz/internal/gender"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/metrics"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository"
	"github.com/vytor/genrequiz/internal/scoring"
)

// AnswerService scores submitted answers and applies them to sessions
type AnswerService interface {
	SubmitAnswer(ctx context.Context, learnerID string, sessionID int64, questionID string, submittedGender string, hintsUsed int, timeTakenSeconds float64) (*models.AnswerResult, error)
}

type answerService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	metrics      *metrics.Metrics
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(sessionRepo repository.SessionRepository, questionRepo repository.QuestionRepository, m *metrics.Metrics) AnswerService {
	return &answerService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		metrics:      m,
	}
}

// SubmitAnswer validates the submission, scores it and records it. Nothing
// is written when validation fails, the pair was already answered or the
// session is complete.
func (s *answerService) SubmitAnswer(ctx context.Context, learnerID string, sessionID int64, questionID string, submittedGender string, hintsUsed int, timeTakenSeconds float64) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: session_id=%d, question_id=%s, gender=%s, hints=%d", sessionID, questionID, submittedGender, hintsUsed)

	if strings.TrimSpace(learnerID) == "" {
		return nil, errors.NewValidationError("learner_id", "cannot be empty")
	}
	if questionID == "" {
		return nil, errors.NewValidationError("question_id", "cannot be empty")
	}
	submitted, ok := gender.Parse(submittedGender)
	if !ok {
		return nil, errors.NewValidationError("gender", "must be 'masculine' or 'feminine'")
	}
	if hintsUsed < 0 {
		return nil, errors.NewValidationError("hints_used", "cannot be negative")
	}
	if timeTakenSeconds < 0 || math.IsNaN(timeTakenSeconds) || math.IsInf(timeTakenSeconds, 0) {
		return nil, errors.NewValidationError("time_taken", "must be a non-negative number of seconds")
	}

	if _, err := loadSession(ctx, s.sessionRepo, learnerID, sessionID); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.Get(ctx, questionID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("question", questionID)
		}
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}

	correct := scoring.IsCorrect(string(submitted), question.Gender)
	points := scoring.Points(correct, hintsUsed)

	updated, err := s.sessionRepo.RecordAttempt(ctx, models.Attempt{
		SessionID:        sessionID,
		QuestionID:       questionID,
		SubmittedGender:  submitted,
		Correct:          correct,
		HintsUsed:        hintsUsed,
		TimeTakenSeconds: timeTakenSeconds,
		Points:           points,
	})
	if err != nil {
		switch {
		case stderrors.Is(err, repository.ErrDuplicateAttempt):
			return nil, errors.NewDuplicateSubmissionError(sessionID, questionID)
		case stderrors.Is(err, repository.ErrSessionClosed):
			return nil, errors.NewSessionCompletedError(sessionID)
		case stderrors.Is(err, repository.ErrNotFound):
			return nil, errors.NewNotFoundError("session", sessionID)
		}
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	complete := updated.Status == models.SessionCompleted
	s.metrics.AnswerRecorded(correct, points, complete)
	log.Info("answer recorded: session_id=%d, question_id=%s, correct=%t, points=%d, score=%d", sessionID, questionID, correct, points, updated.Score)

	return &models.AnswerResult{
		Correct:       correct,
		CorrectAnswer: question.Gender,
		PointsEarned:  points,
		Explanation:   gender.Explanation(*question),
		Examples:      question.Examples(),
		Score:         updated.Score,
		AnsweredCount: updated.AnsweredCount,
		Complete:      complete,
	}, nil
}

package services

import (
	"context"

	"github.com/vytor/genrequiz/internal/errors"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository"
	"github.com/vytor/genrequiz/internal/scoring"
)

// ResultsService aggregates the attempts of a session
type ResultsService interface {
	Summarize(ctx context.Context, learnerID string, sessionID int64) (*models.SessionSummary, error)
}

type resultsService struct {
	sessionRepo repository.SessionRepository
}

// NewResultsService creates a new ResultsService
func NewResultsService(sessionRepo repository.SessionRepository) ResultsService {
	return &resultsService{sessionRepo: sessionRepo}
}

func (s *resultsService) Summarize(ctx context.Context, learnerID string, sessionID int64) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("summarizing session: session_id=%d", sessionID)

	if _, err := loadSession(ctx, s.sessionRepo, learnerID, sessionID); err != nil {
		return nil, err
	}

	attempts, err := s.sessionRepo.Attempts(ctx, sessionID)
	if err != nil {
		log.Error("failed to get attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summary := scoring.Summarize(sessionID, attempts)
	return &summary, nil
}

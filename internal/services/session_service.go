package services

import (
	"context"
	stderrors "errors"
	"math/rand"
	"strings"

	"github.com/vytor/genrequiz/internal/errors"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/metrics"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository"
)

// SessionService handles practice session lifecycle
type SessionService interface {
	StartSession(ctx context.Context, learnerID string, requestedCount int, difficulty int) (*models.Session, error)
	GetSession(ctx context.Context, learnerID string, sessionID int64) (*models.Session, error)
	ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)
	// NextQuestion returns nil when the session is complete or every
	// eligible question has been answered.
	NextQuestion(ctx context.Context, learnerID string, sessionID int64) (*models.PublicQuestion, error)
	IsComplete(ctx context.Context, learnerID string, sessionID int64) (bool, error)
}

type sessionService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	metrics      *metrics.Metrics
	maxQuestions int
	pick         func(n int) int
}

// NewSessionService creates a new SessionService. maxQuestions bounds the
// requested count of a new session; zero means unbounded.
func NewSessionService(sessionRepo repository.SessionRepository, questionRepo repository.QuestionRepository, maxQuestions int, m *metrics.Metrics) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		metrics:      m,
		maxQuestions: maxQuestions,
		pick:         rand.Intn,
	}
}

func (s *sessionService) StartSession(ctx context.Context, learnerID string, requestedCount int, difficulty int) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: learner_id=%s, requested_count=%d, difficulty=%d", learnerID, requestedCount, difficulty)

	learnerID = strings.TrimSpace(learnerID)
	if learnerID == "" {
		return nil, errors.NewValidationError("learner_id", "cannot be empty")
	}
	if requestedCount <= 0 {
		return nil, errors.NewValidationError("requested_count", "must be positive")
	}
	if s.maxQuestions > 0 && requestedCount > s.maxQuestions {
		return nil, errors.NewValidationError("requested_count", "exceeds the per-session maximum")
	}
	if difficulty < 0 || difficulty > models.MaxDifficulty {
		return nil, errors.NewValidationError("difficulty", "must be between 0 and 3")
	}

	session := models.Session{
		LearnerID:      learnerID,
		RequestedCount: requestedCount,
		Difficulty:     difficulty,
		Status:         models.SessionActive,
	}
	id, err := s.sessionRepo.Insert(ctx, session)
	if err != nil {
		log.Error("failed to create session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.sessionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to reload session %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	s.metrics.SessionStarted()
	log.Info("session started: id=%d, learner_id=%s, requested_count=%d", id, learnerID, requestedCount)
	return created, nil
}

func (s *sessionService) GetSession(ctx context.Context, learnerID string, sessionID int64) (*models.Session, error) {
	return loadSession(ctx, s.sessionRepo, learnerID, sessionID)
}

func (s *sessionService) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(filter.LearnerID) == "" {
		return nil, errors.NewValidationError("learner_id", "cannot be empty")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errors.NewValidationError("status", "must be 'active', 'completed' or 'paused'")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewValidationError("pagination", "limit and offset cannot be negative")
	}

	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

func (s *sessionService) NextQuestion(ctx context.Context, learnerID string, sessionID int64) (*models.PublicQuestion, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting next question: session_id=%d", sessionID)

	session, err := loadSession(ctx, s.sessionRepo, learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsComplete() {
		log.Debug("session %d is complete, no next question", sessionID)
		return nil, nil
	}

	ids, err := s.questionRepo.UnansweredIDs(ctx, sessionID, session.Difficulty)
	if err != nil {
		log.Error("failed to list unanswered questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(ids) == 0 {
		log.Info("question bank exhausted for session %d", sessionID)
		return nil, nil
	}

	id := ids[s.pick(len(ids))]
	q, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load question %s: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	public := q.Public()
	return &public, nil
}

func (s *sessionService) IsComplete(ctx context.Context, learnerID string, sessionID int64) (bool, error) {
	session, err := loadSession(ctx, s.sessionRepo, learnerID, sessionID)
	if err != nil {
		return false, err
	}
	return session.IsComplete(), nil
}

// loadSession returns the session when it exists and belongs to learnerID.
// A session owned by someone else is reported as not found.
func loadSession(ctx context.Context, repo repository.SessionRepository, learnerID string, sessionID int64) (*models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := repo.Get(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("session", sessionID)
		}
		log.Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session.LearnerID != strings.TrimSpace(learnerID) {
		log.Warn("session %d requested by another learner", sessionID)
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return session, nil
}

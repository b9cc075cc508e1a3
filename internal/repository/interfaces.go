package repository

import (
	"context"

	"github.com/vytor/genrequiz/internal/models"
)

// QuestionRepository handles question bank data access
type QuestionRepository interface {
	Get(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Count(ctx context.Context, filter models.QuestionFilter) (int, error)
	// InsertIfAbsent adds q unless a question with the same word exists.
	InsertIfAbsent(ctx context.Context, q models.Question) (bool, error)
	// UnansweredIDs lists questions without an attempt in the session,
	// restricted to difficulty when it is non-zero.
	UnansweredIDs(ctx context.Context, sessionID int64, difficulty int) ([]string, error)
}

// SessionRepository handles practice session and attempt data access
type SessionRepository interface {
	Insert(ctx context.Context, session models.Session) (int64, error)
	Get(ctx context.Context, id int64) (*models.Session, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)
	// RecordAttempt stores the attempt and applies it to the session
	// aggregate atomically, returning the updated session.
	RecordAttempt(ctx context.Context, attempt models.Attempt) (*models.Session, error)
	Attempts(ctx context.Context, sessionID int64) ([]models.Attempt, error)
}

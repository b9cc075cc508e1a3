package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/genrequiz/internal/db"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository"
)

var sessionColumns = []string{
	"id", "learner_id", "requested_count", "answered_count", "score", "difficulty", "status", "started_at", "completed_at",
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func scanSession(row rowScanner) (models.Session, error) {
	var s models.Session
	var completedAt sql.NullTime
	err := row.Scan(&s.ID, &s.LearnerID, &s.RequestedCount, &s.AnsweredCount, &s.Score, &s.Difficulty, &s.Status, &s.StartedAt, &completedAt)
	if completedAt.Valid {
		t := completedAt.Time
		s.CompletedAt = &t
	}
	return s, err
}

func (r *sessionRepository) Insert(ctx context.Context, s models.Session) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: learner_id=%s, requested_count=%d", s.LearnerID, s.RequestedCount)

	status := s.Status
	if status == "" {
		status = models.SessionActive
	}
	startedAt := s.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO practice_sessions (learner_id, requested_count, answered_count, score, difficulty, status, started_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, s.LearnerID, s.RequestedCount, s.AnsweredCount, s.Score, s.Difficulty, string(status), startedAt)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.Session, error) {
	return getSession(ctx, r.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getSession(ctx context.Context, q queryRower, id int64) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	query, args, err := sqlBuilder.Select(sessionColumns...).From("practice_sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	s, err := scanSession(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found: id=%d", id)
			return nil, repository.ErrNotFound
		}
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions: learner_id=%s, status=%s", filter.LearnerID, filter.Status)

	builder := sqlBuilder.Select(sessionColumns...).From("practice_sessions")
	if filter.LearnerID != "" {
		builder = builder.Where(squirrel.Eq{"learner_id": filter.LearnerID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	limit, offset := page(filter.Limit, filter.Offset)
	query, args, err := builder.OrderBy("started_at DESC", "id DESC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}

// RecordAttempt applies the attempt in one transaction. Checks run in a
// fixed order: unknown session, then the UNIQUE(session_id, question_id)
// constraint, then the guarded aggregate update that refuses sessions no
// longer active. Any failure rolls the whole attempt back.
func (r *sessionRepository) RecordAttempt(ctx context.Context, a models.Attempt) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("recording attempt: session_id=%d, question_id=%s, points=%d", a.SessionID, a.QuestionID, a.Points)

	now := time.Now().UTC()
	var updated *models.Session
	err := db.Tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := getSession(ctx, tx, a.SessionID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
INSERT INTO practice_attempts (session_id, question_id, submitted_gender, correct, hints_used, time_taken_seconds, points, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, a.SessionID, a.QuestionID, string(a.SubmittedGender), a.Correct, a.HintsUsed, a.TimeTakenSeconds, a.Points, now)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicateAttempt
			}
			return err
		}

		res, err := tx.ExecContext(ctx, `
UPDATE practice_sessions
SET score = score + ?,
    answered_count = answered_count + 1,
    status = CASE WHEN answered_count + 1 >= requested_count THEN 'completed' ELSE status END,
    completed_at = CASE WHEN answered_count + 1 >= requested_count THEN ? ELSE completed_at END
WHERE id = ? AND status = 'active' AND answered_count < requested_count
`, a.Points, now, a.SessionID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrSessionClosed
		}

		updated, err = getSession(ctx, tx, a.SessionID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAttempt) || errors.Is(err, repository.ErrSessionClosed) || errors.Is(err, repository.ErrNotFound) {
			log.Debug("attempt rejected: %v", err)
		} else {
			log.Error("failed to record attempt: %v", err)
		}
		return nil, err
	}

	if updated.Status == models.SessionCompleted {
		log.Info("session completed: id=%d, score=%d", updated.ID, updated.Score)
	}
	return updated, nil
}

func (r *sessionRepository) Attempts(ctx context.Context, sessionID int64) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("fetching attempts: session_id=%d", sessionID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, session_id, question_id, submitted_gender, correct, hints_used, time_taken_seconds, points, created_at
FROM practice_attempts
WHERE session_id = ?
ORDER BY id
`, sessionID)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.QuestionID, &a.SubmittedGender, &a.Correct, &a.HintsUsed, &a.TimeTakenSeconds, &a.Points, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt: %v", err)
			return nil, err
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

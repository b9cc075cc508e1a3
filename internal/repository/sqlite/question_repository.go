package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository"
)

var questionColumns = []string{
	"id", "word", "gender", "difficulty", "COALESCE(translation, '')",
	"example_everyday", "example_literary", "example_academic", "COALESCE(notes, '')",
}

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (models.Question, error) {
	var q models.Question
	err := row.Scan(&q.ID, &q.Word, &q.Gender, &q.Difficulty, &q.Translation,
		&q.ExampleEveryday, &q.ExampleLiterary, &q.ExampleAcademic, &q.Notes)
	return q, err
}

func applyQuestionFilter(query squirrel.SelectBuilder, filter models.QuestionFilter) squirrel.SelectBuilder {
	if filter.Gender != "" {
		query = query.Where(squirrel.Eq{"gender": string(filter.Gender)})
	}
	if filter.Difficulty != 0 {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	return query
}

func (r *questionRepository) Get(ctx context.Context, id string) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%s", id)

	query, args, err := sqlBuilder.Select(questionColumns...).From("questions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found: id=%s", id)
			return nil, repository.ErrNotFound
		}
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: gender=%s, difficulty=%d", filter.Gender, filter.Difficulty)

	limit, offset := page(filter.Limit, filter.Offset)
	query, args, err := applyQuestionFilter(sqlBuilder.Select(questionColumns...).From("questions"), filter).
		OrderBy("difficulty", "word").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		questions = append(questions, q)
	}
	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) Count(ctx context.Context, filter models.QuestionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	query, args, err := applyQuestionFilter(sqlBuilder.Select("COUNT(*)").From("questions"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count questions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *questionRepository) InsertIfAbsent(ctx context.Context, q models.Question) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	query, args, err := sqlBuilder.Insert("questions").
		Options("OR IGNORE").
		Columns("id", "word", "gender", "difficulty", "translation",
			"example_everyday", "example_literary", "example_academic", "notes").
		Values(q.ID, q.Word, string(q.Gender), q.Difficulty, nullString(q.Translation),
			q.ExampleEveryday, q.ExampleLiterary, q.ExampleAcademic, nullString(q.Notes)).
		ToSql()
	if err != nil {
		log.Error("failed to build insert: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert question %s: %v", q.Word, err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		log.Debug("question already present: word=%s", q.Word)
	}
	return n > 0, nil
}

func (r *questionRepository) UnansweredIDs(ctx context.Context, sessionID int64, difficulty int) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing unanswered questions: session_id=%d, difficulty=%d", sessionID, difficulty)

	builder := sqlBuilder.Select("q.id").From("questions q").
		Where("NOT EXISTS (SELECT 1 FROM practice_attempts a WHERE a.session_id = ? AND a.question_id = q.id)", sessionID).
		OrderBy("q.id")
	if difficulty != 0 {
		builder = builder.Where(squirrel.Eq{"q.difficulty": difficulty})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list unanswered questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

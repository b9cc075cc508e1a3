package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/genrequiz/internal/errors"
	"github.com/vytor/genrequiz/internal/gender"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository"
)

// QuestionService handles read access to the question bank
type QuestionService interface {
	GetQuestion(ctx context.Context, id string) (*models.Question, error)
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, int, error)
	CountQuestions(ctx context.Context) (int, error)
	Hints(ctx context.Context, id string) ([]string, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting question: id=%s", id)

	if id == "" {
		return nil, errors.NewValidationError("question_id", "cannot be empty")
	}

	q, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("question", id)
		}
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return q, nil
}

// ListQuestions returns one page of questions and the total matching the
// filter before pagination.
func (s *questionService) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing questions: gender=%s, difficulty=%d, limit=%d, offset=%d", filter.Gender, filter.Difficulty, filter.Limit, filter.Offset)

	if filter.Gender != "" {
		g, ok := gender.Parse(string(filter.Gender))
		if !ok {
			return nil, 0, errors.NewValidationError("gender", "must be 'masculine' or 'feminine'")
		}
		filter.Gender = g
	}
	if filter.Difficulty != 0 && (filter.Difficulty < models.MinDifficulty || filter.Difficulty > models.MaxDifficulty) {
		return nil, 0, errors.NewValidationError("difficulty", "must be between 1 and 3")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, 0, errors.NewValidationError("pagination", "limit and offset cannot be negative")
	}

	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.questionRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count questions: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return questions, total, nil
}

func (s *questionService) CountQuestions(ctx context.Context) (int, error) {
	count, err := s.questionRepo.Count(ctx, models.QuestionFilter{})
	if err != nil {
		logger.FromContext(ctx).Error("failed to count questions: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return count, nil
}

// Hints returns the hint texts for a question, weakest first.
func (s *questionService) Hints(ctx context.Context, id string) ([]string, error) {
	q, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	return gender.Hints(*q), nil
}

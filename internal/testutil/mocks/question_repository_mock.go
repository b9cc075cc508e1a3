package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/genrequiz/internal/models"
)

// MockQuestionRepository is a mock implementation of repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Get(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Count(ctx context.Context, filter models.QuestionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) InsertIfAbsent(ctx context.Context, q models.Question) (bool, error) {
	args := m.Called(ctx, q)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionRepository) UnansweredIDs(ctx context.Context, sessionID int64, difficulty int) ([]string, error) {
	args := m.Called(ctx, sessionID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

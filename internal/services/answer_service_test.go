package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/genrequiz/internal/errors"
	"github.com/vytor/genrequiz/internal/metrics"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository"
	"github.com/vytor/genrequiz/internal/testutil/mocks"
)

var chat = &models.Question{
	ID:              "chat",
	Word:            "chat",
	Gender:          models.Masculine,
	Difficulty:      1,
	ExampleEveryday: "Le chat dort sur le canapé.",
	ExampleLiterary: "Le chat noir traversa la cour.",
	ExampleAcademic: "Le chat domestique est un mammifère.",
}

func activeSession(id int64, learner string, requested, answered int) *models.Session {
	return &models.Session{
		ID:             id,
		LearnerID:      learner,
		RequestedCount: requested,
		AnsweredCount:  answered,
		Status:         models.SessionActive,
	}
}

func newAnswerFixture() (*mocks.MockSessionRepository, *mocks.MockQuestionRepository, *metrics.Metrics, AnswerService) {
	sessions := new(mocks.MockSessionRepository)
	questions := new(mocks.MockQuestionRepository)
	m := metrics.New()
	return sessions, questions, m, NewAnswerService(sessions, questions, m)
}

func TestSubmitAnswer_SingleQuestionSession(t *testing.T) {
	tests := []struct {
		name       string
		submitted  string
		hints      int
		wantOK     bool
		wantPoints int
	}{
		{name: "correct without hints", submitted: "masculine", hints: 0, wantOK: true, wantPoints: 10},
		{name: "correct with two hints is clamped", submitted: "Masculine", hints: 2, wantOK: true, wantPoints: 0},
		{name: "correct with one hint", submitted: "masculine", hints: 1, wantOK: true, wantPoints: 5},
		{name: "incorrect", submitted: "feminine", hints: 0, wantOK: false, wantPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, questions, m, svc := newAnswerFixture()
			ctx := context.Background()

			sessions.On("Get", mock.Anything, int64(1)).Return(activeSession(1, "ana", 1, 0), nil)
			questions.On("Get", mock.Anything, "chat").Return(chat, nil)
			completed := activeSession(1, "ana", 1, 1)
			completed.Score = tt.wantPoints
			completed.Status = models.SessionCompleted
			sessions.On("RecordAttempt", mock.Anything, mock.MatchedBy(func(a models.Attempt) bool {
				return a.SessionID == 1 && a.QuestionID == "chat" && a.Correct == tt.wantOK &&
					a.Points == tt.wantPoints && a.HintsUsed == tt.hints
			})).Return(completed, nil)

			result, err := svc.SubmitAnswer(ctx, "ana", 1, "chat", tt.submitted, tt.hints, 4.2)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, result.Correct)
			assert.Equal(t, tt.wantPoints, result.PointsEarned)
			assert.Equal(t, models.Masculine, result.CorrectAnswer)
			assert.True(t, result.Complete)
			assert.Equal(t, 1, result.AnsweredCount)
			assert.Len(t, result.Examples, 3)
			assert.Contains(t, result.Explanation, `"chat" is masculine.`)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCompleted))
			sessions.AssertExpectations(t)
			questions.AssertExpectations(t)
		})
	}
}

func TestSubmitAnswer_ValidatesBeforeMutation(t *testing.T) {
	tests := []struct {
		name      string
		learner   string
		question  string
		submitted string
		hints     int
		elapsed   float64
	}{
		{name: "unknown gender", learner: "ana", question: "chat", submitted: "neuter"},
		{name: "abbreviated gender", learner: "ana", question: "chat", submitted: "m"},
		{name: "negative hints", learner: "ana", question: "chat", submitted: "masculine", hints: -1},
		{name: "negative time", learner: "ana", question: "chat", submitted: "masculine", elapsed: -0.5},
		{name: "blank learner", learner: "  ", question: "chat", submitted: "masculine"},
		{name: "blank question", learner: "ana", question: "", submitted: "masculine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, questions, _, svc := newAnswerFixture()

			_, err := svc.SubmitAnswer(context.Background(), tt.learner, 1, tt.question, tt.submitted, tt.hints, tt.elapsed)
			assert.True(t, errors.HasCode(err, errors.ErrCodeValidation), "got %v", err)
			sessions.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything)
			sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			questions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitAnswer_MapsRepositoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{name: "duplicate", repoErr: repository.ErrDuplicateAttempt, wantCode: errors.ErrCodeDuplicateSubmission},
		{name: "completed", repoErr: repository.ErrSessionClosed, wantCode: errors.ErrCodeSessionCompleted},
		{name: "vanished", repoErr: repository.ErrNotFound, wantCode: errors.ErrCodeNotFound},
		{name: "storage failure", repoErr: assert.AnError, wantCode: errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, questions, m, svc := newAnswerFixture()

			sessions.On("Get", mock.Anything, int64(1)).Return(activeSession(1, "ana", 3, 1), nil)
			questions.On("Get", mock.Anything, "chat").Return(chat, nil)
			sessions.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil, tt.repoErr)

			result, err := svc.SubmitAnswer(context.Background(), "ana", 1, "chat", "masculine", 0, 1)
			assert.Nil(t, result)
			assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
			assert.Equal(t, 0.0, testutil.ToFloat64(m.PointsAwarded))
		})
	}
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	sessions, questions, _, svc := newAnswerFixture()

	sessions.On("Get", mock.Anything, int64(1)).Return(activeSession(1, "ana", 3, 0), nil)
	questions.On("Get", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	_, err := svc.SubmitAnswer(context.Background(), "ana", 1, "nope", "masculine", 0, 1)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	sessions.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything)
}

func TestSubmitAnswer_ForeignSessionIsNotFound(t *testing.T) {
	sessions, questions, _, svc := newAnswerFixture()

	sessions.On("Get", mock.Anything, int64(1)).Return(activeSession(1, "ben", 3, 0), nil)

	_, err := svc.SubmitAnswer(context.Background(), "ana", 1, "chat", "masculine", 0, 1)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	questions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	sessions.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything)
}

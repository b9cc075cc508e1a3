package models

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	// SessionPaused is part of the schema but nothing transitions into it yet.
	SessionPaused SessionStatus = "paused"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionActive, SessionCompleted, SessionPaused:
		return true
	}
	return false
}

type Session struct {
	ID             int64         `json:"id"`
	LearnerID      string        `json:"learner_id"`
	RequestedCount int           `json:"requested_count"`
	AnsweredCount  int           `json:"answered_count"`
	Score          int           `json:"score"`
	Difficulty     int           `json:"difficulty"` // 0 means any difficulty
	Status         SessionStatus `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at"`
}

// IsComplete reports whether every requested question has been answered.
func (s Session) IsComplete() bool {
	return s.AnsweredCount >= s.RequestedCount
}

type SessionFilter struct {
	LearnerID string
	Status    SessionStatus
	Limit     int
	Offset    int
}

type Attempt struct {
	ID               int64     `json:"id"`
	SessionID        int64     `json:"session_id"`
	QuestionID       string    `json:"question_id"`
	SubmittedGender  Gender    `json:"submitted_gender"`
	Correct          bool      `json:"correct"`
	HintsUsed        int       `json:"hints_used"`
	TimeTakenSeconds float64   `json:"time_taken_seconds"`
	Points           int       `json:"points"`
	CreatedAt        time.Time `json:"created_at"`
}

// AnswerResult is returned to the learner after each submission.
type AnswerResult struct {
	Correct       bool     `json:"correct"`
	CorrectAnswer Gender   `json:"correct_answer"`
	PointsEarned  int      `json:"points_earned"`
	Explanation   string   `json:"explanation"`
	Examples      []string `json:"examples"`
	Score         int      `json:"score"`
	AnsweredCount int      `json:"answered_count"`
	Complete      bool     `json:"complete"`
}

// SessionSummary aggregates the attempts of one session.
type SessionSummary struct {
	SessionID          int64   `json:"session_id"`
	TotalAttempts      int     `json:"total_attempts"`
	CorrectCount       int     `json:"correct_count"`
	AccuracyPercent    float64 `json:"accuracy_percent"`
	TotalPoints        int     `json:"total_points"`
	MaxPossiblePoints  int     `json:"max_possible_points"`
	PointsPercent      float64 `json:"points_percent"`
	TotalTimeSeconds   float64 `json:"total_time_seconds"`
	TotalHintsUsed     int     `json:"total_hints_used"`
	AverageTimeSeconds int     `json:"average_time_seconds"`
}

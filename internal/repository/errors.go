package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateAttempt is returned when the session already has an
	// attempt for the question.
	ErrDuplicateAttempt = errors.New("attempt already recorded for question")
	// ErrSessionClosed is returned when the session no longer accepts answers.
	ErrSessionClosed = errors.New("session does not accept answers")
)

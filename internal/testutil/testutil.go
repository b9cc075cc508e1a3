package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/genrequiz/internal/db"
	"github.com/vytor/genrequiz/internal/models"
)

// NewTestDB opens an in-memory SQLite database with all migrations
// applied, including the seeded question bank.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertQuestion adds a question directly, bypassing the repository.
func InsertQuestion(t *testing.T, database *db.DB, q models.Question) {
	t.Helper()
	_, err := database.ExecContext(context.Background(), `
INSERT INTO questions (id, word, gender, difficulty, example_everyday, example_literary, example_academic)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, q.ID, q.Word, string(q.Gender), q.Difficulty, q.ExampleEveryday, q.ExampleLiterary, q.ExampleAcademic)
	require.NoError(t, err)
}

// ClearQuestions empties the bank so tests control its content.
func ClearQuestions(t *testing.T, database *db.DB) {
	t.Helper()
	_, err := database.ExecContext(context.Background(), `DELETE FROM questions`)
	require.NoError(t, err)
}

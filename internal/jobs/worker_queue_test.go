package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/worker"
)

type recordingSeeder struct {
	paths chan string
}

func (s *recordingSeeder) ImportFile(_ context.Context, path string) (*models.SeedReport, error) {
	s.paths <- path
	return &models.SeedReport{}, nil
}

func TestWorkerQueue_EnqueueSeedRunsOnPool(t *testing.T) {
	pool := worker.NewPool(1, 2)
	pool.Start(context.Background())
	defer pool.Stop()

	seeder := &recordingSeeder{paths: make(chan string, 1)}
	q := NewWorkerQueue(pool, seeder)

	require.NoError(t, q.EnqueueSeed("data/nouns.tsv"))
	select {
	case path := <-seeder.paths:
		assert.Equal(t, "data/nouns.tsv", path)
	case <-time.After(2 * time.Second):
		t.Fatal("seed job did not run")
	}
}

func TestWorkerQueue_StoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()

	q := NewWorkerQueue(pool, &recordingSeeder{paths: make(chan string, 1)})
	assert.ErrorIs(t, q.EnqueueSeed("nouns.tsv"), worker.ErrPoolStopped)
}

package jobs

import (
	"github.com/vytor/genrequiz/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool   *worker.Pool
	seeder worker.Seeder
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, seeder worker.Seeder) JobQueue {
	return &WorkerQueue{pool: pool, seeder: seeder}
}

func (q *WorkerQueue) EnqueueSeed(path string) error {
	return q.pool.Submit(&worker.SeedQuestionsJob{
		Seeder: q.seeder,
		Path:   path,
	})
}

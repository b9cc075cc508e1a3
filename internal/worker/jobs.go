package worker

import (
	"context"

	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/models"
)

// Seeder imports a noun list file into the question bank.
type Seeder interface {
	ImportFile(ctx context.Context, path string) (*models.SeedReport, error)
}

// SeedQuestionsJob extends the question bank from a TSV noun list.
type SeedQuestionsJob struct {
	Seeder Seeder
	Path   string
}

func (j *SeedQuestionsJob) Name() string { return "seed_questions" }

func (j *SeedQuestionsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("path", j.Path)
	log.Info("starting noun list import")

	report, err := j.Seeder.ImportFile(ctx, j.Path)
	if err != nil {
		return err
	}
	log.Info("noun list import finished: inserted=%d, existing=%d, skipped=%d", report.Inserted, report.Existing, report.Skipped)
	return nil
}

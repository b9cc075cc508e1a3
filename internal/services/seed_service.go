package services

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/vytor/genrequiz/internal/errors"
	"github.com/vytor/genrequiz/internal/logger"
	"github.com/vytor/genrequiz/internal/metrics"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/nounlist"
	"github.com/vytor/genrequiz/internal/repository"
)

// SeedService extends the question bank from noun lists
type SeedService interface {
	ImportNounList(ctx context.Context, r io.Reader) (*models.SeedReport, error)
	ImportFile(ctx context.Context, path string) (*models.SeedReport, error)
}

type seedService struct {
	questionRepo repository.QuestionRepository
	metrics      *metrics.Metrics
}

// NewSeedService creates a new SeedService
func NewSeedService(questionRepo repository.QuestionRepository, m *metrics.Metrics) SeedService {
	return &seedService{questionRepo: questionRepo, metrics: m}
}

// ImportNounList inserts every listed noun that is not in the bank yet.
// Existing words are left untouched.
func (s *seedService) ImportNounList(ctx context.Context, r io.Reader) (*models.SeedReport, error) {
	log := logger.FromContext(ctx).WithPrefix("seed")

	parsed, err := nounlist.Parse(r)
	if err != nil {
		log.Error("failed to parse noun list: %v", err)
		return nil, errors.NewBadRequestError("unreadable noun list")
	}

	report := &models.SeedReport{Parsed: len(parsed.Entries), Skipped: parsed.Skipped}
	for _, entry := range parsed.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		inserted, err := s.questionRepo.InsertIfAbsent(ctx, models.Question{
			ID:         uuid.NewString(),
			Word:       entry.Noun,
			Gender:     entry.Gender,
			Difficulty: nounlist.Difficulty(entry.Count),
		})
		if err != nil {
			log.Error("failed to insert %s: %v", entry.Noun, err)
			return report, errors.NewInternalError(err)
		}
		if inserted {
			report.Inserted++
		} else {
			report.Existing++
		}
	}

	s.metrics.Seeded(report.Inserted)
	log.Info("noun list imported: parsed=%d, inserted=%d, existing=%d, skipped=%d",
		report.Parsed, report.Inserted, report.Existing, report.Skipped)
	return report, nil
}

func (s *seedService) ImportFile(ctx context.Context, path string) (*models.SeedReport, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.FromContext(ctx).Error("failed to open noun list %s: %v", path, err)
		return nil, errors.NewInternalError(err)
	}
	defer f.Close()
	return s.ImportNounList(ctx, f)
}

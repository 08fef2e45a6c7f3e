package domain

import (
	"fmt"
	"strings"

	apperrors "revisit/internal/platform/errors"
)

// SeedEntry is one problem of a bootstrap file with its recorded progress.
type SeedEntry struct {
	QuestionID     string
	Slug           string
	Level          int
	LastSubmission Timestamp
	NextReview     Timestamp
}

func (e SeedEntry) Validate() error {
	if strings.TrimSpace(e.Slug) == "" {
		return fmt.Errorf("%w: seed entry %q has no problem slug", apperrors.ErrInvalidInput, e.QuestionID)
	}
	if e.Level < 0 {
		return fmt.Errorf("%w: seed entry %s has negative level", apperrors.ErrInvalidInput, e.Slug)
	}
	if e.LastSubmission <= 0 || e.NextReview <= 0 {
		return fmt.Errorf("%w: seed entry %s needs positive timestamps", apperrors.ErrInvalidInput, e.Slug)
	}
	return nil
}

func (e SeedEntry) Record(problemID int64) Record {
	return Record{
		ProblemID:      problemID,
		Level:          e.Level,
		LastSubmission: e.LastSubmission,
		NextReview:     e.NextReview,
		Tracking:       true,
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "revisit/internal/platform/errors"
)

// Seed replaces every problem and record with the contents of a seed file.
// Every problem must resolve on the catalog or nothing is written.
func (s *ReviewService) Seed(ctx context.Context, path string) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, fmt.Errorf("%w: seed path is required", apperrors.ErrInvalidInput)
	}
	entries, err := s.seeds.Load(ctx, path)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("%w: seed file %s has no problems", apperrors.ErrInvalidInput, path)
	}
	seen := make(map[string]struct{}, len(entries))
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, err
		}
		if _, dup := seen[e.Slug]; dup {
			return 0, fmt.Errorf("%w: seed file lists %s twice", apperrors.ErrInvalidInput, e.Slug)
		}
		seen[e.Slug] = struct{}{}
		slugs = append(slugs, e.Slug)
	}

	s.logger.Info("fetching seed problem details", slog.Int("problems", len(slugs)))
	drafts, missing, err := s.problems.FetchDrafts(ctx, slugs)
	if err != nil {
		return 0, err
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: could not fetch details for %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}

	err = s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.records.Reset(ctx); err != nil {
			return err
		}
		if err := s.problems.Reset(ctx); err != nil {
			return err
		}
		for _, e := range entries {
			draft := drafts[e.Slug]
			if e.QuestionID != "" {
				draft.QuestionID = e.QuestionID
			}
			ref, err := s.problems.Create(ctx, draft)
			if err != nil {
				return fmt.Errorf("create problem %s: %w", e.Slug, err)
			}
			rec := e.Record(ref.ID)
			if err := rec.Validate(); err != nil {
				return err
			}
			if err := s.records.Save(ctx, rec); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	s.logger.Info("seed completed", slog.Int("problems", len(entries)))
	return len(entries), nil
}

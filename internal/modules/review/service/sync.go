package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"revisit/internal/modules/review/domain"
	apperrors "revisit/internal/platform/errors"
)

// SyncReport is the outcome of a committed reconciliation run.
type SyncReport struct {
	Changes    []domain.Change
	Unresolved []string
}

func (r SyncReport) count(kind domain.ChangeKind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

func (r SyncReport) Created() int  { return r.count(domain.ChangeCreate) }
func (r SyncReport) Advanced() int { return r.count(domain.ChangeAdvance) }

// Sync reconciles the most recent submissions against stored records.
func (s *ReviewService) Sync(ctx context.Context) (SyncReport, error) {
	if !s.syncMu.TryLock() {
		return SyncReport{}, apperrors.ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	s.logger.Info("sync started", slog.Int("limit", s.opts.FetchLimit))
	subs, err := s.feed.RecentSubmissions(ctx, s.opts.FetchLimit)
	if err != nil {
		return SyncReport{}, fmt.Errorf("fetch submissions: %w", err)
	}
	return s.reconcile(ctx, subs)
}

// SyncProblem reconciles one problem against its own submission history.
func (s *ReviewService) SyncProblem(ctx context.Context, slug string) (SyncReport, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return SyncReport{}, fmt.Errorf("%w: slug is required", apperrors.ErrInvalidInput)
	}
	if !s.syncMu.TryLock() {
		return SyncReport{}, apperrors.ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	s.logger.Info("sync started", slog.String("slug", slug))
	subs, err := s.feed.ProblemSubmissions(ctx, slug)
	if err != nil {
		return SyncReport{}, fmt.Errorf("fetch submissions of %s: %w", slug, err)
	}
	own := make([]domain.Submission, 0, len(subs))
	for _, sub := range subs {
		if sub.Slug == slug {
			own = append(own, sub)
		}
	}
	return s.reconcile(ctx, own)
}

func (s *ReviewService) reconcile(ctx context.Context, subs []domain.Submission) (SyncReport, error) {
	groups := domain.GroupBySlug(domain.FilterAccepted(subs))
	slugs := domain.SortedSlugs(groups)

	known := make(map[string]domain.ProblemRef, len(slugs))
	unknown := make([]string, 0)
	for _, slug := range slugs {
		ref, err := s.problems.Lookup(ctx, slug)
		switch {
		case err == nil:
			known[slug] = ref
		case isNotFound(err):
			unknown = append(unknown, slug)
		default:
			return SyncReport{}, fmt.Errorf("lookup problem %s: %w", slug, err)
		}
	}

	// Catalog round-trips happen before the transaction opens.
	drafts, missing, err := s.problems.FetchDrafts(ctx, unknown)
	if err != nil {
		return SyncReport{}, err
	}
	for _, slug := range missing {
		s.logger.Warn("skipping problem missing from catalog", slog.String("slug", slug))
	}

	report := SyncReport{Unresolved: missing}
	changes := make([]domain.Change, 0, len(slugs))
	err = s.txm.Within(ctx, func(ctx context.Context) error {
		for _, slug := range slugs {
			ref, ok := known[slug]
			var existing *domain.Record
			if ok {
				rec, err := s.records.FindByProblemID(ctx, ref.ID)
				switch {
				case err == nil:
					existing = &rec
				case !isNotFound(err):
					return fmt.Errorf("load record of %s: %w", slug, err)
				}
			} else {
				draft, ok := drafts[slug]
				if !ok {
					continue
				}
				created, err := s.problems.Create(ctx, draft)
				if err != nil {
					return fmt.Errorf("create problem %s: %w", slug, err)
				}
				ref = created
			}

			change, ok, err := domain.Reconcile(ref.ID, existing, groups[slug], s.opts.Schedule)
			if err != nil {
				return fmt.Errorf("reconcile %s: %w", slug, err)
			}
			if !ok {
				continue
			}
			if err := s.records.Save(ctx, change.After); err != nil {
				return err
			}
			if change.Kind == domain.ChangeAdvance {
				s.logger.Info("proficiency advanced",
					slog.String("slug", slug),
					slog.Int("old_level", change.Before.Level),
					slog.Int("new_level", change.After.Level),
				)
			} else {
				s.logger.Info("problem tracked", slog.String("slug", slug), slog.String("next_review", change.After.NextReview.String()))
			}
			changes = append(changes, change)
		}
		return ctx.Err()
	})
	if err != nil {
		s.logger.Error("sync rolled back", slog.Any("err", err))
		return report, err
	}
	report.Changes = changes
	s.logger.Info("sync finished",
		slog.Int("created", report.Created()),
		slog.Int("advanced", report.Advanced()),
		slog.Int("unresolved", len(report.Unresolved)),
	)
	return report, nil
}

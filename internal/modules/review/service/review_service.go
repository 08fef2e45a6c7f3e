package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"revisit/internal/modules/review/domain"
	reviewout "revisit/internal/modules/review/port/out"
	"revisit/internal/platform/clock"
	apperrors "revisit/internal/platform/errors"
	"revisit/internal/platform/tx"
)

type Options struct {
	Schedule   domain.Schedule
	FetchLimit int
}

type ReviewService struct {
	clock    clock.Clock
	txm      tx.Manager
	records  reviewout.RecordStore
	problems reviewout.ProblemDirectory
	feed     reviewout.SubmissionFeed
	seeds    reviewout.SeedSource
	logger   *slog.Logger
	opts     Options

	// syncMu keeps a single reconciliation run in flight.
	syncMu sync.Mutex
}

func NewReviewService(
	clock clock.Clock,
	txm tx.Manager,
	records reviewout.RecordStore,
	problems reviewout.ProblemDirectory,
	feed reviewout.SubmissionFeed,
	seeds reviewout.SeedSource,
	logger *slog.Logger,
	opts Options,
) *ReviewService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if opts.Schedule.Len() == 0 {
		opts.Schedule = domain.DefaultSchedule()
	}
	return &ReviewService{
		clock:    clock,
		txm:      txm,
		records:  records,
		problems: problems,
		feed:     feed,
		seeds:    seeds,
		logger:   logger,
		opts:     opts,
	}
}

func (s *ReviewService) Schedule() domain.Schedule {
	return s.opts.Schedule
}

// Now is the service clock as a Timestamp.
func (s *ReviewService) Now() domain.Timestamp {
	return domain.TimestampOf(s.clock.Now())
}

func (s *ReviewService) Board(ctx context.Context) (domain.Board, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	return domain.BuildBoard(problems, records, s.opts.Schedule, s.Now()), nil
}

// Cancel stops tracking a problem; it moves to the not-tracking bucket.
func (s *ReviewService) Cancel(ctx context.Context, slug string) (domain.BoardEntry, error) {
	return s.mutate(ctx, "cancel", slug, func(r domain.Record, now domain.Timestamp) domain.Record {
		return r.Cancel(now)
	})
}

func (s *ReviewService) Resume(ctx context.Context, slug string) (domain.BoardEntry, error) {
	return s.mutate(ctx, "resume", slug, func(r domain.Record, _ domain.Timestamp) domain.Record {
		return r.Resume()
	})
}

// Reset sends a problem back to level 0, due now.
func (s *ReviewService) Reset(ctx context.Context, slug string) (domain.BoardEntry, error) {
	return s.mutate(ctx, "reset", slug, func(r domain.Record, now domain.Timestamp) domain.Record {
		return r.Reset(now)
	})
}

func (s *ReviewService) mutate(ctx context.Context, op, slug string, fn func(domain.Record, domain.Timestamp) domain.Record) (domain.BoardEntry, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.BoardEntry{}, fmt.Errorf("%w: slug is required", apperrors.ErrInvalidInput)
	}
	var entry domain.BoardEntry
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		ref, err := s.problems.Lookup(ctx, slug)
		if err != nil {
			return fmt.Errorf("%s %s: %w", op, slug, err)
		}
		rec, err := s.records.FindByProblemID(ctx, ref.ID)
		if err != nil {
			return fmt.Errorf("%s %s: %w", op, slug, err)
		}
		now := s.Now()
		updated := fn(rec, now)
		if err := s.records.Save(ctx, updated); err != nil {
			return err
		}
		entry = domain.BoardEntry{Problem: ref, Record: updated, Status: domain.Classify(updated, s.opts.Schedule, now)}
		return nil
	})
	if err != nil {
		return domain.BoardEntry{}, err
	}
	s.logger.Info("proficiency updated", slog.String("op", op), slog.String("slug", slug), slog.Int("level", entry.Record.Level), slog.Bool("tracking", entry.Record.Tracking))
	return entry, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

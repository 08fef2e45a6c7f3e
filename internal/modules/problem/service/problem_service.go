package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"revisit/internal/modules/problem/domain"
	problemout "revisit/internal/modules/problem/port/out"
	"revisit/internal/platform/clock"
	apperrors "revisit/internal/platform/errors"
)

type ProblemService struct {
	clock       clock.Clock
	store       problemout.ProblemStore
	catalog     problemout.Catalog
	logger      *slog.Logger
	concurrency int
}

func NewProblemService(clock clock.Clock, store problemout.ProblemStore, catalog problemout.Catalog, logger *slog.Logger, concurrency int) *ProblemService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &ProblemService{clock: clock, store: store, catalog: catalog, logger: logger, concurrency: concurrency}
}

func (s *ProblemService) Find(ctx context.Context, slug string) (domain.Problem, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Problem{}, fmt.Errorf("%w: slug is required", apperrors.ErrInvalidInput)
	}
	return s.store.FindBySlug(ctx, slug)
}

func (s *ProblemService) Get(ctx context.Context, id int64) (domain.Problem, error) {
	return s.store.FindByID(ctx, id)
}

func (s *ProblemService) List(ctx context.Context) ([]domain.Problem, error) {
	return s.store.List(ctx)
}

// FetchDetails resolves slugs against the catalog with bounded concurrency.
// A failed slug lands in missing; only context cancellation fails the call.
func (s *ProblemService) FetchDetails(ctx context.Context, slugs []string) (map[string]domain.Detail, []string, error) {
	unique := uniqueSlugs(slugs)
	details := make(map[string]domain.Detail, len(unique))
	missing := make([]string, 0)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, slug := range unique {
		g.Go(func() error {
			detail, err := s.catalog.ProblemDetail(gctx, slug)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("problem detail unavailable", slog.String("slug", slug), slog.Any("err", err))
				missing = append(missing, slug)
				return nil
			}
			details[slug] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("fetch problem details: %w", err)
	}
	sort.Strings(missing)
	return details, missing, nil
}

// Import upserts a catalog detail as a problem, keyed by slug.
func (s *ProblemService) Import(ctx context.Context, detail domain.Detail) (domain.Problem, error) {
	problem := detail.Problem(s.clock.Now())
	if err := problem.Validate(); err != nil {
		return domain.Problem{}, err
	}
	return s.store.Upsert(ctx, problem)
}

func (s *ProblemService) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}

func uniqueSlugs(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

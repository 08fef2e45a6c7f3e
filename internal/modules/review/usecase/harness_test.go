package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	problemoutadapter "revisit/internal/modules/problem/adapter/out"
	problemdomain "revisit/internal/modules/problem/domain"
	problemin "revisit/internal/modules/problem/port/in"
	problemservice "revisit/internal/modules/problem/service"
	problemusecase "revisit/internal/modules/problem/usecase"
	reviewoutadapter "revisit/internal/modules/review/adapter/out"
	"revisit/internal/modules/review/domain"
	reviewin "revisit/internal/modules/review/port/in"
	reviewout "revisit/internal/modules/review/port/out"
	"revisit/internal/modules/review/service"
	"revisit/internal/modules/review/usecase"
	"revisit/internal/platform/clock"
	"revisit/internal/platform/database"
	apperrors "revisit/internal/platform/errors"
	"revisit/internal/platform/logging"
	"revisit/internal/platform/tx"
)

// t0 is 2024-03-20T00:00:00Z.
const t0 = domain.Timestamp(1710892800000)

const (
	hour = domain.Timestamp(60 * 60 * 1000)
	day  = 24 * hour
)

type fakeCatalog struct {
	mu      sync.Mutex
	details map[string]problemdomain.Detail
}

func (f *fakeCatalog) ProblemDetail(_ context.Context, slug string) (problemdomain.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[slug]
	if !ok {
		return problemdomain.Detail{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, slug)
	}
	return d, nil
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{details: map[string]problemdomain.Detail{
		"two-sum": {
			QuestionID: "1", Title: "Two Sum", Slug: "two-sum", Difficulty: problemdomain.DifficultyEasy,
			Tags: []problemdomain.Tag{{Name: "Array", Slug: "array"}, {Name: "Hash Table", Slug: "hash-table"}},
		},
		"valid-anagram": {
			QuestionID: "242", Title: "Valid Anagram", Slug: "valid-anagram", Difficulty: problemdomain.DifficultyEasy,
			Tags: []problemdomain.Tag{{Name: "Hash Table", Slug: "hash-table"}, {Name: "Sorting", Slug: "sorting"}},
		},
		"merge-intervals": {
			QuestionID: "56", Title: "Merge Intervals", Slug: "merge-intervals", Difficulty: problemdomain.DifficultyMedium,
			Tags: []problemdomain.Tag{{Name: "Array", Slug: "array"}, {Name: "Sorting", Slug: "sorting"}},
		},
	}}
}

type fakeFeed struct {
	mu      sync.Mutex
	recent  []domain.Submission
	err     error
	limits  []int
	started chan struct{}
	release chan struct{}
}

func (f *fakeFeed) set(subs ...domain.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent = subs
}

func (f *fakeFeed) RecentSubmissions(_ context.Context, limit int) ([]domain.Submission, error) {
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Submission(nil), f.recent...), nil
}

// ProblemSubmissions returns the whole history; the service must narrow it.
func (f *fakeFeed) ProblemSubmissions(ctx context.Context, _ string) ([]domain.Submission, error) {
	return f.RecentSubmissions(ctx, 0)
}

// failingRecords fails the nth Save.
type failingRecords struct {
	reviewout.RecordStore
	failOn int
	saves  int
}

func (f *failingRecords) Save(ctx context.Context, rec domain.Record) error {
	f.saves++
	if f.saves == f.failOn {
		return errors.New("disk full")
	}
	return f.RecordStore.Save(ctx, rec)
}

type harness struct {
	uc       reviewin.Usecase
	problems problemin.Usecase
	records  reviewout.RecordStore
	catalog  *fakeCatalog
	feed     *fakeFeed
	db       *sql.DB
}

func newHarness(t *testing.T, now domain.Timestamp, wrap func(reviewout.RecordStore) reviewout.RecordStore) *harness {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "revisit.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	problemStore, err := problemoutadapter.NewSQLiteProblemStore(db)
	if err != nil {
		t.Fatalf("new problem store: %v", err)
	}
	records, err := reviewoutadapter.NewSQLiteRecordStore(db)
	if err != nil {
		t.Fatalf("new record store: %v", err)
	}
	var used reviewout.RecordStore = records
	if wrap != nil {
		used = wrap(records)
	}

	clk := clock.Fixed(now.Time())
	catalog := defaultCatalog()
	feed := &fakeFeed{}
	problems := problemusecase.NewInteractor(problemservice.NewProblemService(clk, problemStore, catalog, logging.Discard(), 2))
	svc := service.NewReviewService(
		clk,
		tx.NewSQLManager(db),
		used,
		reviewoutadapter.NewProblemDirectoryAdapter(problems),
		feed,
		reviewoutadapter.NewYAMLSeedSource(),
		logging.Discard(),
		service.Options{Schedule: domain.DefaultSchedule(), FetchLimit: 20},
	)
	return &harness{uc: usecase.NewInteractor(svc), problems: problems, records: records, catalog: catalog, feed: feed, db: db}
}

func (h *harness) record(t *testing.T, slug string) domain.Record {
	t.Helper()
	p, err := h.problems.Find(context.Background(), slug)
	if err != nil {
		t.Fatalf("find problem %s: %v", slug, err)
	}
	rec, err := h.records.FindByProblemID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("find record %s: %v", slug, err)
	}
	return rec
}

func accepted(slug string, ts domain.Timestamp) domain.Submission {
	return domain.Submission{Slug: slug, Timestamp: ts, Accepted: true}
}

func rejected(slug string, ts domain.Timestamp) domain.Submission {
	return domain.Submission{Slug: slug, Timestamp: ts, Accepted: false}
}

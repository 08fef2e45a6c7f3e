package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	problemout "revisit/internal/modules/problem/adapter/out"
	"revisit/internal/modules/problem/domain"
	"revisit/internal/modules/problem/dto"
	problemin "revisit/internal/modules/problem/port/in"
	"revisit/internal/modules/problem/service"
	"revisit/internal/modules/problem/usecase"
	"revisit/internal/platform/clock"
	"revisit/internal/platform/database"
	apperrors "revisit/internal/platform/errors"
	"revisit/internal/platform/logging"
	"revisit/internal/platform/tx"
)

type fakeCatalog struct {
	mu      sync.Mutex
	details map[string]domain.Detail
	calls   map[string]int
}

func newFakeCatalog(details ...domain.Detail) *fakeCatalog {
	f := &fakeCatalog{details: map[string]domain.Detail{}, calls: map[string]int{}}
	for _, d := range details {
		f.details[d.Slug] = d
	}
	return f
}

func (f *fakeCatalog) ProblemDetail(_ context.Context, slug string) (domain.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[slug]++
	d, ok := f.details[slug]
	if !ok {
		return domain.Detail{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, slug)
	}
	return d, nil
}

var twoSum = domain.Detail{
	QuestionID: "1",
	Title:      "Two Sum",
	Slug:       "two-sum",
	Difficulty: domain.DifficultyEasy,
	Tags:       []domain.Tag{{Name: "Array", Slug: "array"}, {Name: "Hash Table", Slug: "hash-table"}},
}

var validAnagram = domain.Detail{
	QuestionID: "242",
	Title:      "Valid Anagram",
	Slug:       "valid-anagram",
	Difficulty: domain.DifficultyEasy,
	Tags:       []domain.Tag{{Name: "Hash Table", Slug: "hash-table"}, {Name: "Sorting", Slug: "sorting"}},
}

func newUsecase(t *testing.T, catalog *fakeCatalog) (problemin.Usecase, tx.Manager) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "revisit.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := problemout.NewSQLiteProblemStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	now := clock.Fixed(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	svc := service.NewProblemService(now, store, catalog, logging.Discard(), 2)
	return usecase.NewInteractor(svc), tx.NewSQLManager(db)
}

func TestFetchDetailsIsolatesMisses(t *testing.T) {
	t.Parallel()
	catalog := newFakeCatalog(twoSum, validAnagram)
	uc, _ := newUsecase(t, catalog)

	out, err := uc.FetchDetails(context.Background(), dto.FetchDetailsInput{
		Slugs: []string{"two-sum", "missing-one", "valid-anagram", "two-sum", ""},
	})
	if err != nil {
		t.Fatalf("fetch details: %v", err)
	}
	if len(out.Details) != 2 {
		t.Fatalf("expected 2 resolved details, got %d", len(out.Details))
	}
	if len(out.Missing) != 1 || out.Missing[0] != "missing-one" {
		t.Fatalf("unexpected missing slugs %v", out.Missing)
	}
	if catalog.calls["two-sum"] != 1 {
		t.Fatalf("duplicate slugs must be fetched once, got %d", catalog.calls["two-sum"])
	}
	if out.Details["two-sum"].Difficulty != "Easy" || len(out.Details["two-sum"].Tags) != 2 {
		t.Fatalf("unexpected detail %+v", out.Details["two-sum"])
	}
}

type blockingCatalog struct{}

func (blockingCatalog) ProblemDetail(ctx context.Context, _ string) (domain.Detail, error) {
	<-ctx.Done()
	return domain.Detail{}, ctx.Err()
}

func TestFetchDetailsFailsOnCancelledContext(t *testing.T) {
	t.Parallel()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "revisit.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := problemout.NewSQLiteProblemStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	uc := usecase.NewInteractor(service.NewProblemService(clock.SystemClock{}, store, blockingCatalog{}, logging.Discard(), 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = uc.FetchDetails(ctx, dto.FetchDetailsInput{Slugs: []string{"two-sum", "valid-anagram"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestImportUpsertsBySlugAndSharesTags(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t, newFakeCatalog())
	ctx := context.Background()

	first, err := uc.Import(ctx, dto.ImportInput{Detail: toDetailOutput(twoSum)})
	if err != nil {
		t.Fatalf("import two-sum: %v", err)
	}
	if first.ID == 0 || first.URL != "https://leetcode.com/problems/two-sum" {
		t.Fatalf("unexpected imported problem %+v", first)
	}
	if _, err := uc.Import(ctx, dto.ImportInput{Detail: toDetailOutput(validAnagram)}); err != nil {
		t.Fatalf("import valid-anagram: %v", err)
	}

	renamed := toDetailOutput(twoSum)
	renamed.Title = "Two Sum (renamed)"
	renamed.QuestionID = "0001"
	renamed.Tags = renamed.Tags[:1]
	again, err := uc.Import(ctx, dto.ImportInput{Detail: renamed})
	if err != nil {
		t.Fatalf("re-import two-sum: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("upsert must keep the problem id, got %d want %d", again.ID, first.ID)
	}

	got, err := uc.Find(ctx, "two-sum")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Title != "Two Sum (renamed)" || got.QuestionID != "0001" || len(got.Tags) != 1 {
		t.Fatalf("unexpected stored problem %+v", got)
	}
	byID, err := uc.Get(ctx, first.ID)
	if err != nil || byID.Slug != "two-sum" {
		t.Fatalf("get by id: %+v %v", byID, err)
	}

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(list))
	}
	if tags := list[1].Tags; len(tags) != 2 || tags[0].Slug != "hash-table" || tags[1].Slug != "sorting" {
		t.Fatalf("unexpected tags for valid-anagram %+v", tags)
	}
}

func TestImportRejectsInvalidDetail(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t, newFakeCatalog())
	bad := toDetailOutput(twoSum)
	bad.Difficulty = "Trivial"
	if _, err := uc.Import(context.Background(), dto.ImportInput{Detail: bad}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestFindMissingIsNotFound(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t, newFakeCatalog())
	if _, err := uc.Find(context.Background(), "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.Find(context.Background(), " "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestImportRollsBackWithTransaction(t *testing.T) {
	t.Parallel()
	uc, txm := newUsecase(t, newFakeCatalog())
	ctx := context.Background()
	boom := errors.New("boom")

	err := txm.Within(ctx, func(ctx context.Context) error {
		if _, err := uc.Import(ctx, dto.ImportInput{Detail: toDetailOutput(twoSum)}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := uc.Find(ctx, "two-sum"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("rolled back import must not be visible, got %v", err)
	}
}

func TestResetRemovesProblemsAndTags(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t, newFakeCatalog())
	ctx := context.Background()
	if _, err := uc.Import(ctx, dto.ImportInput{Detail: toDetailOutput(twoSum)}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := uc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %d problems", len(list))
	}
}

func toDetailOutput(d domain.Detail) dto.DetailOutput {
	out := dto.DetailOutput{QuestionID: d.QuestionID, Title: d.Title, Slug: d.Slug, Difficulty: string(d.Difficulty)}
	for _, tag := range d.Tags {
		out.Tags = append(out.Tags, dto.TagOutput{Name: tag.Name, Slug: tag.Slug})
	}
	return out
}

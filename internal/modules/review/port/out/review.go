package out

import (
	"context"

	"revisit/internal/modules/review/domain"
)

// RecordStore persists proficiency records, at most one per problem.
type RecordStore interface {
	FindByProblemID(ctx context.Context, problemID int64) (domain.Record, error)
	Save(ctx context.Context, record domain.Record) error
	List(ctx context.Context) ([]domain.Record, error)
	Reset(ctx context.Context) error
}

// SubmissionFeed reads the user's judged submissions from the catalog.
type SubmissionFeed interface {
	RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error)
	ProblemSubmissions(ctx context.Context, slug string) ([]domain.Submission, error)
}

// ProblemDirectory resolves and creates problem entities.
type ProblemDirectory interface {
	Lookup(ctx context.Context, slug string) (domain.ProblemRef, error)
	List(ctx context.Context) ([]domain.ProblemRef, error)
	FetchDrafts(ctx context.Context, slugs []string) (map[string]domain.ProblemDraft, []string, error)
	Create(ctx context.Context, draft domain.ProblemDraft) (domain.ProblemRef, error)
	Reset(ctx context.Context) error
}

type SeedSource interface {
	Load(ctx context.Context, path string) ([]domain.SeedEntry, error)
}

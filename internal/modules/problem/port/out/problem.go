package out

import (
	"context"

	"revisit/internal/modules/problem/domain"
)

// ProblemStore persists problems and their tags. Implementations join the
// transaction carried by ctx.
type ProblemStore interface {
	FindBySlug(ctx context.Context, slug string) (domain.Problem, error)
	FindByID(ctx context.Context, id int64) (domain.Problem, error)
	Upsert(ctx context.Context, problem domain.Problem) (domain.Problem, error)
	List(ctx context.Context) ([]domain.Problem, error)
	Reset(ctx context.Context) error
}

// Catalog resolves problem metadata from the judge.
type Catalog interface {
	ProblemDetail(ctx context.Context, slug string) (domain.Detail, error)
}

package in

import (
	"context"

	"revisit/internal/modules/problem/dto"
)

type Usecase interface {
	Find(ctx context.Context, slug string) (dto.ProblemOutput, error)
	Get(ctx context.Context, id int64) (dto.ProblemOutput, error)
	List(ctx context.Context) ([]dto.ProblemOutput, error)
	FetchDetails(ctx context.Context, input dto.FetchDetailsInput) (dto.FetchDetailsOutput, error)
	Import(ctx context.Context, input dto.ImportInput) (dto.ProblemOutput, error)
	Reset(ctx context.Context) error
}

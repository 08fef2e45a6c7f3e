package in

import (
	"context"

	"revisit/internal/modules/review/dto"
)

type Usecase interface {
	Sync(ctx context.Context, input dto.SyncInput) dto.SyncOutput
	Board(ctx context.Context) (dto.BoardOutput, error)
	Cancel(ctx context.Context, input dto.TrackInput) (dto.EntryOutput, error)
	Resume(ctx context.Context, input dto.TrackInput) (dto.EntryOutput, error)
	Reset(ctx context.Context, input dto.TrackInput) (dto.EntryOutput, error)
	Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error)
	Schedule(ctx context.Context) []dto.ScheduleStepOutput
}

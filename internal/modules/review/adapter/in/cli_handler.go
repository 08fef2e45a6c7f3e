package in

import (
	"context"

	"revisit/internal/modules/review/dto"
	reviewin "revisit/internal/modules/review/port/in"
)

type CLIHandler struct {
	usecase reviewin.Usecase
}

func NewCLIHandler(usecase reviewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Sync(ctx context.Context, slug string) dto.SyncOutput {
	return h.usecase.Sync(ctx, dto.SyncInput{Slug: slug})
}

func (h CLIHandler) Board(ctx context.Context) (dto.BoardOutput, error) {
	return h.usecase.Board(ctx)
}

func (h CLIHandler) Cancel(ctx context.Context, slug string) (dto.EntryOutput, error) {
	return h.usecase.Cancel(ctx, dto.TrackInput{Slug: slug})
}

func (h CLIHandler) Resume(ctx context.Context, slug string) (dto.EntryOutput, error) {
	return h.usecase.Resume(ctx, dto.TrackInput{Slug: slug})
}

func (h CLIHandler) Reset(ctx context.Context, slug string) (dto.EntryOutput, error) {
	return h.usecase.Reset(ctx, dto.TrackInput{Slug: slug})
}

func (h CLIHandler) Seed(ctx context.Context, path string) (dto.SeedOutput, error) {
	return h.usecase.Seed(ctx, dto.SeedInput{Path: path})
}

func (h CLIHandler) Schedule(ctx context.Context) []dto.ScheduleStepOutput {
	return h.usecase.Schedule(ctx)
}

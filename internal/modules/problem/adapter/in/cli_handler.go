package in

import (
	"context"

	"revisit/internal/modules/problem/dto"
	problemin "revisit/internal/modules/problem/port/in"
)

type CLIHandler struct {
	usecase problemin.Usecase
}

func NewCLIHandler(usecase problemin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProblemOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, slug string) (dto.ProblemOutput, error) {
	return h.usecase.Find(ctx, slug)
}

package usecase

import (
	"context"

	"revisit/internal/modules/problem/domain"
	"revisit/internal/modules/problem/dto"
	problemin "revisit/internal/modules/problem/port/in"
	"revisit/internal/modules/problem/service"
)

type Interactor struct {
	svc *service.ProblemService
}

func NewInteractor(svc *service.ProblemService) problemin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Find(ctx context.Context, slug string) (dto.ProblemOutput, error) {
	problem, err := i.svc.Find(ctx, slug)
	if err != nil {
		return dto.ProblemOutput{}, err
	}
	return toProblemOutput(problem), nil
}

func (i *Interactor) Get(ctx context.Context, id int64) (dto.ProblemOutput, error) {
	problem, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ProblemOutput{}, err
	}
	return toProblemOutput(problem), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProblemOutput, error) {
	problems, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProblemOutput, 0, len(problems))
	for _, problem := range problems {
		out = append(out, toProblemOutput(problem))
	}
	return out, nil
}

func (i *Interactor) FetchDetails(ctx context.Context, input dto.FetchDetailsInput) (dto.FetchDetailsOutput, error) {
	details, missing, err := i.svc.FetchDetails(ctx, input.Slugs)
	if err != nil {
		return dto.FetchDetailsOutput{}, err
	}
	out := dto.FetchDetailsOutput{Details: make(map[string]dto.DetailOutput, len(details)), Missing: missing}
	for slug, detail := range details {
		out.Details[slug] = dto.DetailOutput{
			QuestionID: detail.QuestionID,
			Title:      detail.Title,
			Slug:       detail.Slug,
			Difficulty: string(detail.Difficulty),
			Tags:       toTagOutputs(detail.Tags),
		}
	}
	return out, nil
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ProblemOutput, error) {
	detail := domain.Detail{
		QuestionID: input.Detail.QuestionID,
		Title:      input.Detail.Title,
		Slug:       input.Detail.Slug,
		Difficulty: domain.Difficulty(input.Detail.Difficulty),
	}
	for _, tag := range input.Detail.Tags {
		detail.Tags = append(detail.Tags, domain.Tag{Name: tag.Name, Slug: tag.Slug})
	}
	problem, err := i.svc.Import(ctx, detail)
	if err != nil {
		return dto.ProblemOutput{}, err
	}
	return toProblemOutput(problem), nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func toProblemOutput(problem domain.Problem) dto.ProblemOutput {
	return dto.ProblemOutput{
		ID:         problem.ID,
		QuestionID: problem.QuestionID,
		Title:      problem.Title,
		Slug:       problem.Slug,
		Difficulty: string(problem.Difficulty),
		URL:        problem.URL(),
		Tags:       toTagOutputs(problem.Tags),
	}
}

func toTagOutputs(tags []domain.Tag) []dto.TagOutput {
	out := make([]dto.TagOutput, 0, len(tags))
	for _, tag := range tags {
		out = append(out, dto.TagOutput{Name: tag.Name, Slug: tag.Slug})
	}
	return out
}

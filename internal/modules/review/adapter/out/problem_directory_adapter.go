package out

import (
	"context"

	problemdto "revisit/internal/modules/problem/dto"
	problemin "revisit/internal/modules/problem/port/in"
	"revisit/internal/modules/review/domain"
	reviewout "revisit/internal/modules/review/port/out"
)

// ProblemDirectoryAdapter exposes the problem module to review.
type ProblemDirectoryAdapter struct {
	problems problemin.Usecase
}

func NewProblemDirectoryAdapter(problems problemin.Usecase) reviewout.ProblemDirectory {
	return &ProblemDirectoryAdapter{problems: problems}
}

func (a *ProblemDirectoryAdapter) Lookup(ctx context.Context, slug string) (domain.ProblemRef, error) {
	p, err := a.problems.Find(ctx, slug)
	if err != nil {
		return domain.ProblemRef{}, err
	}
	return toRef(p), nil
}

func (a *ProblemDirectoryAdapter) List(ctx context.Context) ([]domain.ProblemRef, error) {
	problems, err := a.problems.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProblemRef, 0, len(problems))
	for _, p := range problems {
		out = append(out, toRef(p))
	}
	return out, nil
}

func (a *ProblemDirectoryAdapter) FetchDrafts(ctx context.Context, slugs []string) (map[string]domain.ProblemDraft, []string, error) {
	if len(slugs) == 0 {
		return map[string]domain.ProblemDraft{}, nil, nil
	}
	res, err := a.problems.FetchDetails(ctx, problemdto.FetchDetailsInput{Slugs: slugs})
	if err != nil {
		return nil, nil, err
	}
	drafts := make(map[string]domain.ProblemDraft, len(res.Details))
	for slug, d := range res.Details {
		draft := domain.ProblemDraft{QuestionID: d.QuestionID, Title: d.Title, Slug: d.Slug, Difficulty: d.Difficulty}
		for _, tag := range d.Tags {
			draft.Tags = append(draft.Tags, domain.TagDraft{Name: tag.Name, Slug: tag.Slug})
		}
		drafts[slug] = draft
	}
	return drafts, res.Missing, nil
}

func (a *ProblemDirectoryAdapter) Create(ctx context.Context, draft domain.ProblemDraft) (domain.ProblemRef, error) {
	detail := problemdto.DetailOutput{QuestionID: draft.QuestionID, Title: draft.Title, Slug: draft.Slug, Difficulty: draft.Difficulty}
	for _, tag := range draft.Tags {
		detail.Tags = append(detail.Tags, problemdto.TagOutput{Name: tag.Name, Slug: tag.Slug})
	}
	p, err := a.problems.Import(ctx, problemdto.ImportInput{Detail: detail})
	if err != nil {
		return domain.ProblemRef{}, err
	}
	return toRef(p), nil
}

func (a *ProblemDirectoryAdapter) Reset(ctx context.Context) error {
	return a.problems.Reset(ctx)
}

func toRef(p problemdto.ProblemOutput) domain.ProblemRef {
	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tags = append(tags, tag.Name)
	}
	return domain.ProblemRef{
		ID:         p.ID,
		QuestionID: p.QuestionID,
		Title:      p.Title,
		Slug:       p.Slug,
		Difficulty: p.Difficulty,
		URL:        p.URL,
		Tags:       tags,
	}
}

package usecase

import (
	"context"

	"revisit/internal/modules/review/domain"
	"revisit/internal/modules/review/dto"
	reviewin "revisit/internal/modules/review/port/in"
	"revisit/internal/modules/review/service"
)

type Interactor struct {
	svc *service.ReviewService
}

func NewInteractor(svc *service.ReviewService) reviewin.Usecase {
	return &Interactor{svc: svc}
}

// Sync never returns a Go error; failures are reported in the output.
func (i *Interactor) Sync(ctx context.Context, input dto.SyncInput) dto.SyncOutput {
	var (
		report service.SyncReport
		err    error
	)
	if input.Slug != "" {
		report, err = i.svc.SyncProblem(ctx, input.Slug)
	} else {
		report, err = i.svc.Sync(ctx)
	}
	if err != nil {
		return dto.SyncOutput{
			Success:    false,
			Error:      "failed to sync problems: " + err.Error(),
			Unresolved: report.Unresolved,
		}
	}
	out := dto.SyncOutput{
		Success:    true,
		Created:    report.Created(),
		Advanced:   report.Advanced(),
		Unresolved: report.Unresolved,
		Changes:    make([]dto.ChangeOutput, 0, len(report.Changes)),
	}
	for _, c := range report.Changes {
		out.Changes = append(out.Changes, dto.ChangeOutput{
			Slug:      c.Slug,
			Kind:      string(c.Kind),
			FromLevel: c.Before.Level,
			ToLevel:   c.After.Level,
		})
	}
	return out
}

func (i *Interactor) Board(ctx context.Context) (dto.BoardOutput, error) {
	board, err := i.svc.Board(ctx)
	if err != nil {
		return dto.BoardOutput{}, err
	}
	maxLevel := i.svc.Schedule().Len()
	convert := func(st domain.Status) []dto.EntryOutput {
		entries := board.Buckets[st]
		out := make([]dto.EntryOutput, 0, len(entries))
		for _, e := range entries {
			out = append(out, toEntryOutput(e, board.Now, maxLevel))
		}
		return out
	}
	return dto.BoardOutput{
		ReviewDue:       convert(domain.StatusReviewDue),
		ReviewScheduled: convert(domain.StatusReviewScheduled),
		Mastered:        convert(domain.StatusMastered),
		NotTracking:     convert(domain.StatusNotTracking),
	}, nil
}

func (i *Interactor) Cancel(ctx context.Context, input dto.TrackInput) (dto.EntryOutput, error) {
	return i.track(i.svc.Cancel(ctx, input.Slug))
}

func (i *Interactor) Resume(ctx context.Context, input dto.TrackInput) (dto.EntryOutput, error) {
	return i.track(i.svc.Resume(ctx, input.Slug))
}

func (i *Interactor) Reset(ctx context.Context, input dto.TrackInput) (dto.EntryOutput, error) {
	return i.track(i.svc.Reset(ctx, input.Slug))
}

func (i *Interactor) track(entry domain.BoardEntry, err error) (dto.EntryOutput, error) {
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(entry, i.svc.Now(), i.svc.Schedule().Len()), nil
}

func (i *Interactor) Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error) {
	n, err := i.svc.Seed(ctx, input.Path)
	if err != nil {
		return dto.SeedOutput{}, err
	}
	return dto.SeedOutput{Problems: n}, nil
}

func (i *Interactor) Schedule(context.Context) []dto.ScheduleStepOutput {
	delays := i.svc.Schedule().Delays()
	out := make([]dto.ScheduleStepOutput, 0, len(delays))
	for level, d := range delays {
		out = append(out, dto.ScheduleStepOutput{Level: level, Delay: formatDelay(d)})
	}
	return out
}

func toEntryOutput(e domain.BoardEntry, now domain.Timestamp, maxLevel int) dto.EntryOutput {
	return dto.EntryOutput{
		ProblemID:      e.Problem.ID,
		QuestionID:     e.Problem.QuestionID,
		Title:          e.Problem.Title,
		Slug:           e.Problem.Slug,
		Difficulty:     e.Problem.Difficulty,
		URL:            e.Problem.URL,
		Tags:           e.Problem.Tags,
		Level:          e.Record.Level,
		MaxLevel:       maxLevel,
		Tracking:       e.Record.Tracking,
		Status:         string(e.Status),
		LastSubmission: e.Record.LastSubmission.String(),
		NextReview:     e.Record.NextReview.String(),
		LastSubmitted:  TimeAgo(e.Record.LastSubmission, now),
		NextReviewIn:   TimeLeft(e.Record.NextReview, now),
	}
}

package out

import (
	"context"

	"revisit/internal/modules/review/domain"
	reviewout "revisit/internal/modules/review/port/out"
	"revisit/internal/platform/leetcode"
)

type LeetCodeSubmissionFeed struct {
	client *leetcode.Client
}

func NewLeetCodeSubmissionFeed(client *leetcode.Client) reviewout.SubmissionFeed {
	return &LeetCodeSubmissionFeed{client: client}
}

func (f *LeetCodeSubmissionFeed) RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	subs, err := f.client.Submissions(ctx, leetcode.SubmissionsQuery{Limit: limit})
	if err != nil {
		return nil, err
	}
	return toSubmissions(subs), nil
}

func (f *LeetCodeSubmissionFeed) ProblemSubmissions(ctx context.Context, slug string) ([]domain.Submission, error) {
	subs, err := f.client.Submissions(ctx, leetcode.SubmissionsQuery{Slug: slug})
	if err != nil {
		return nil, err
	}
	return toSubmissions(subs), nil
}

func toSubmissions(subs []leetcode.Submission) []domain.Submission {
	out := make([]domain.Submission, 0, len(subs))
	for _, s := range subs {
		out = append(out, domain.Submission{
			Slug:      s.TitleSlug,
			Timestamp: domain.Timestamp(s.Timestamp),
			Accepted:  s.Accepted(),
		})
	}
	return out
}

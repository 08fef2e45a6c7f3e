package out

import (
	"context"

	"revisit/internal/modules/problem/domain"
	problemout "revisit/internal/modules/problem/port/out"
	"revisit/internal/platform/leetcode"
)

type LeetCodeCatalog struct {
	client *leetcode.Client
}

func NewLeetCodeCatalog(client *leetcode.Client) problemout.Catalog {
	return &LeetCodeCatalog{client: client}
}

func (c *LeetCodeCatalog) ProblemDetail(ctx context.Context, slug string) (domain.Detail, error) {
	q, err := c.client.Question(ctx, slug)
	if err != nil {
		return domain.Detail{}, err
	}
	detail := domain.Detail{
		QuestionID: q.QuestionID,
		Title:      q.Title,
		Slug:       q.TitleSlug,
		Difficulty: domain.Difficulty(q.Difficulty),
	}
	for _, tag := range q.TopicTags {
		detail.Tags = append(detail.Tags, domain.Tag{Name: tag.Name, Slug: tag.Slug})
	}
	return detail, nil
}

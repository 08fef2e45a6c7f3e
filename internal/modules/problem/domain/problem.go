package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "revisit/internal/platform/errors"
	"revisit/internal/platform/slug"
)

const ProblemURLPrefix = "https://leetcode.com/problems/"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Validate() error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("%w: unsupported difficulty %q", apperrors.ErrInvalidInput, string(d))
	}
}

type Tag struct {
	ID   int64
	Name string
	Slug string
}

type Problem struct {
	ID         int64
	QuestionID string
	Title      string
	Slug       string
	Difficulty Difficulty
	Tags       []Tag
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Problem) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("%w: slug is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if err := p.Difficulty.Validate(); err != nil {
		return err
	}
	for _, tag := range p.Tags {
		if strings.TrimSpace(tag.Slug) == "" {
			return fmt.Errorf("%w: tag slug is required", apperrors.ErrInvalidInput)
		}
	}
	return nil
}

func (p Problem) URL() string {
	return ProblemURLPrefix + p.Slug
}

func (p Problem) TagNames() []string {
	out := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		out = append(out, tag.Name)
	}
	return out
}

// Detail is problem metadata as reported by the catalog.
type Detail struct {
	QuestionID string
	Title      string
	Slug       string
	Difficulty Difficulty
	Tags       []Tag
}

func (d Detail) Problem(now time.Time) Problem {
	return Problem{
		QuestionID: d.QuestionID,
		Title:      d.Title,
		Slug:       d.Slug,
		Difficulty: d.Difficulty,
		Tags:       dedupeTags(d.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// dedupeTags drops repeated slugs. A tag reported without a slug gets one
// derived from its name.
func dedupeTags(tags []Tag) []Tag {
	seen := make(map[string]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag.Slug) == "" {
			if strings.TrimSpace(tag.Name) == "" {
				continue
			}
			tag.Slug = slug.Make(tag.Name)
		}
		if _, ok := seen[tag.Slug]; ok {
			continue
		}
		seen[tag.Slug] = struct{}{}
		out = append(out, tag)
	}
	return out
}

package out

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"revisit/internal/modules/review/domain"
	reviewout "revisit/internal/modules/review/port/out"
	apperrors "revisit/internal/platform/errors"
	"revisit/internal/platform/slug"
)

// YAMLSeedSource reads seed files. Two layouts are accepted:
//
//	problems:
//	  - question_id: "1"
//	    url: https://leetcode.com/problems/two-sum/
//	    level: 2
//	    last_submission: 1710892800000
//	    next_review: 1711065600000
//
// or a mapping from question id to {url, proficiency, submissionTime,
// modificationTime}, which also covers plain JSON exports.
type YAMLSeedSource struct{}

func NewYAMLSeedSource() reviewout.SeedSource {
	return YAMLSeedSource{}
}

type seedList struct {
	Problems []struct {
		QuestionID     string `yaml:"question_id"`
		URL            string `yaml:"url"`
		Slug           string `yaml:"slug"`
		Level          int    `yaml:"level"`
		LastSubmission int64  `yaml:"last_submission"`
		NextReview     int64  `yaml:"next_review"`
	} `yaml:"problems"`
}

type seedKeyed map[string]struct {
	URL              string `yaml:"url"`
	Proficiency      int    `yaml:"proficiency"`
	SubmissionTime   int64  `yaml:"submissionTime"`
	ModificationTime int64  `yaml:"modificationTime"`
}

func (YAMLSeedSource) Load(_ context.Context, path string) ([]domain.SeedEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var list seedList
	if err := yaml.Unmarshal(raw, &list); err == nil && len(list.Problems) > 0 {
		out := make([]domain.SeedEntry, 0, len(list.Problems))
		for _, p := range list.Problems {
			s := p.Slug
			if s == "" {
				s = slug.FromProblemURL(p.URL)
			}
			out = append(out, domain.SeedEntry{
				QuestionID:     p.QuestionID,
				Slug:           s,
				Level:          p.Level,
				LastSubmission: domain.Timestamp(p.LastSubmission),
				NextReview:     domain.Timestamp(p.NextReview),
			})
		}
		return out, nil
	}

	var keyed seedKeyed
	if err := yaml.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("%w: decode seed file %s: %v", apperrors.ErrInvalidInput, path, err)
	}
	ids := make([]string, 0, len(keyed))
	for id := range keyed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.SeedEntry, 0, len(keyed))
	for _, id := range ids {
		p := keyed[id]
		out = append(out, domain.SeedEntry{
			QuestionID:     id,
			Slug:           slug.FromProblemURL(p.URL),
			Level:          p.Proficiency,
			LastSubmission: domain.Timestamp(p.SubmissionTime),
			NextReview:     domain.Timestamp(p.ModificationTime),
		})
	}
	return out, nil
}

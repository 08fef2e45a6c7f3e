package domain

import (
	"sort"
	"strings"
)

// Submission is one judged attempt observed on the catalog.
type Submission struct {
	Slug      string
	Timestamp Timestamp
	Accepted  bool
}

func (s Submission) Valid() bool {
	return strings.TrimSpace(s.Slug) != "" && s.Timestamp > 0
}

// FilterAccepted keeps accepted, well-formed submissions.
func FilterAccepted(subs []Submission) []Submission {
	out := make([]Submission, 0, len(subs))
	for _, s := range subs {
		if s.Accepted && s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// GroupBySlug buckets submissions per problem. Each group is sorted by
// ascending timestamp.
func GroupBySlug(subs []Submission) map[string][]Submission {
	groups := make(map[string][]Submission)
	for _, s := range subs {
		groups[s.Slug] = append(groups[s.Slug], s)
	}
	for slug := range groups {
		g := groups[slug]
		sort.SliceStable(g, func(i, j int) bool { return g[i].Timestamp < g[j].Timestamp })
	}
	return groups
}

// SortedSlugs returns the group keys in lexical order so runs are
// reproducible.
func SortedSlugs(groups map[string][]Submission) []string {
	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// SelectForCreate picks the earliest submission of a problem without a record.
func SelectForCreate(group []Submission) (Submission, bool) {
	var best Submission
	found := false
	for _, s := range group {
		if !found || s.Timestamp < best.Timestamp {
			best, found = s, true
		}
	}
	return best, found
}

// SelectForAdvance picks the earliest submission made strictly after the
// record's next review. Mastered records never qualify, whether or not they
// are tracked.
func SelectForAdvance(r Record, group []Submission, schedule Schedule) (Submission, bool) {
	if Progress(r, schedule, 0) == StatusMastered {
		return Submission{}, false
	}
	var best Submission
	found := false
	for _, s := range group {
		if s.Timestamp <= r.NextReview {
			continue
		}
		if !found || s.Timestamp < best.Timestamp {
			best, found = s, true
		}
	}
	return best, found
}

type ChangeKind string

const (
	ChangeCreate  ChangeKind = "create"
	ChangeAdvance ChangeKind = "advance"
)

// Change is the mutation the reconciler decided for one problem.
type Change struct {
	Kind       ChangeKind
	Slug       string
	Submission Submission
	Before     Record
	After      Record
}

// Reconcile decides the change for one problem group. existing is nil when
// the problem has no record yet. ok is false when nothing should happen.
func Reconcile(problemID int64, existing *Record, group []Submission, schedule Schedule) (Change, bool, error) {
	if existing == nil {
		sub, ok := SelectForCreate(group)
		if !ok {
			return Change{}, false, nil
		}
		rec, err := NewRecord(problemID, sub.Timestamp, schedule)
		if err != nil {
			return Change{}, false, err
		}
		return Change{Kind: ChangeCreate, Slug: sub.Slug, Submission: sub, After: rec}, true, nil
	}
	sub, ok := SelectForAdvance(*existing, group, schedule)
	if !ok {
		return Change{}, false, nil
	}
	rec, err := existing.Advance(sub.Timestamp, schedule)
	if err != nil {
		return Change{}, false, err
	}
	return Change{Kind: ChangeAdvance, Slug: sub.Slug, Submission: sub, Before: *existing, After: rec}, true, nil
}

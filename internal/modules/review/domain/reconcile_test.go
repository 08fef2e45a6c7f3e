package domain_test

import (
	"testing"

	"revisit/internal/modules/review/domain"
)

func TestFilterAcceptedDropsRejectedAndMalformed(t *testing.T) {
	t.Parallel()
	subs := []domain.Submission{
		{Slug: "two-sum", Timestamp: 10, Accepted: true},
		{Slug: "two-sum", Timestamp: 11, Accepted: false},
		{Slug: "", Timestamp: 12, Accepted: true},
		{Slug: "   ", Timestamp: 12, Accepted: true},
		{Slug: "three-sum", Timestamp: 0, Accepted: true},
		{Slug: "three-sum", Timestamp: -4, Accepted: true},
		{Slug: "three-sum", Timestamp: 5, Accepted: true},
	}
	got := domain.FilterAccepted(subs)
	if len(got) != 2 || got[0].Slug != "two-sum" || got[1].Slug != "three-sum" {
		t.Fatalf("unexpected filtered submissions %+v", got)
	}
}

func TestGroupBySlugSortsAscending(t *testing.T) {
	t.Parallel()
	groups := domain.GroupBySlug([]domain.Submission{
		{Slug: "b", Timestamp: 9, Accepted: true},
		{Slug: "a", Timestamp: 3, Accepted: true},
		{Slug: "b", Timestamp: 2, Accepted: true},
		{Slug: "b", Timestamp: 5, Accepted: true},
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	b := groups["b"]
	if len(b) != 3 || b[0].Timestamp != 2 || b[1].Timestamp != 5 || b[2].Timestamp != 9 {
		t.Fatalf("unexpected group order %+v", b)
	}
	if slugs := domain.SortedSlugs(groups); len(slugs) != 2 || slugs[0] != "a" || slugs[1] != "b" {
		t.Fatalf("unexpected slug order %v", slugs)
	}
}

func TestReconcileCreatesFromEarliestSubmission(t *testing.T) {
	t.Parallel()
	s := minutesSchedule(t, 1440, 2880, 5760, 10080, 21600)
	group := []domain.Submission{
		{Slug: "two-sum", Timestamp: 1710900000000, Accepted: true},
		{Slug: "two-sum", Timestamp: 1710892800000, Accepted: true},
	}
	change, ok, err := domain.Reconcile(3, nil, group, s)
	if err != nil || !ok {
		t.Fatalf("expected a create, ok=%v err=%v", ok, err)
	}
	if change.Kind != domain.ChangeCreate {
		t.Fatalf("expected create, got %s", change.Kind)
	}
	rec := change.After
	if rec.ProblemID != 3 || rec.Level != 1 || !rec.Tracking {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.LastSubmission.String() != "1710892800000" || rec.NextReview.String() != "1710979200000" {
		t.Fatalf("unexpected timestamps last=%s next=%s", rec.LastSubmission, rec.NextReview)
	}
}

func TestReconcileAdvancesOnlyStrictlyAfterNextReview(t *testing.T) {
	t.Parallel()
	s := minutesSchedule(t, 1440, 2880, 5760, 10080, 21600)
	existing := domain.Record{ProblemID: 1, Level: 1, LastSubmission: 1, NextReview: 2, Tracking: true}
	group := []domain.Submission{
		{Slug: "two-sum", Timestamp: 1, Accepted: true},
		{Slug: "two-sum", Timestamp: 2, Accepted: true},
		{Slug: "two-sum", Timestamp: 3, Accepted: true},
		{Slug: "two-sum", Timestamp: 7, Accepted: true},
	}
	change, ok, err := domain.Reconcile(1, &existing, group, s)
	if err != nil || !ok {
		t.Fatalf("expected an advance, ok=%v err=%v", ok, err)
	}
	if change.Kind != domain.ChangeAdvance || change.Submission.Timestamp != 3 {
		t.Fatalf("expected advance from timestamp 3, got %+v", change)
	}
	if change.After.Level != 2 || change.After.LastSubmission != 3 {
		t.Fatalf("unexpected advanced record %+v", change.After)
	}
	if want := domain.Timestamp(3 + 2880*60*1000); change.After.NextReview != want {
		t.Fatalf("expected next review %d, got %d", want, change.After.NextReview)
	}
	if change.Before != existing {
		t.Fatalf("change must carry the prior record")
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	t.Parallel()
	s := domain.DefaultSchedule()
	group := []domain.Submission{
		{Slug: "two-sum", Timestamp: 1000, Accepted: true},
		{Slug: "two-sum", Timestamp: 2000, Accepted: true},
	}
	first, ok, err := domain.Reconcile(1, nil, group, s)
	if err != nil || !ok {
		t.Fatalf("first run: ok=%v err=%v", ok, err)
	}
	rec := first.After
	// The same batch again: nothing lies beyond the new next review.
	if _, ok, err := domain.Reconcile(1, &rec, group, s); err != nil || ok {
		t.Fatalf("second run should be a no-op, ok=%v err=%v", ok, err)
	}
}

func TestReconcileSkipsMastered(t *testing.T) {
	t.Parallel()
	s := domain.DefaultSchedule()
	for _, tracking := range []bool{true, false} {
		existing := domain.Record{ProblemID: 1, Level: 5, LastSubmission: 1, NextReview: 2, Tracking: tracking}
		group := []domain.Submission{{Slug: "two-sum", Timestamp: 999999999999, Accepted: true}}
		if _, ok, err := domain.Reconcile(1, &existing, group, s); err != nil || ok {
			t.Fatalf("mastered record (tracking=%v) must be skipped, ok=%v err=%v", tracking, ok, err)
		}
	}
}

func TestReconcileAdvancesUntrackedRecord(t *testing.T) {
	t.Parallel()
	s := domain.DefaultSchedule()
	existing := domain.Record{ProblemID: 1, Level: 2, LastSubmission: 1, NextReview: 2, Tracking: false}
	change, ok, err := domain.Reconcile(1, &existing, []domain.Submission{{Slug: "x", Timestamp: 10, Accepted: true}}, s)
	if err != nil || !ok {
		t.Fatalf("expected an advance, ok=%v err=%v", ok, err)
	}
	if change.After.Level != 3 || change.After.Tracking {
		t.Fatalf("unexpected record %+v", change.After)
	}
}

func TestReconcileEmptyGroup(t *testing.T) {
	t.Parallel()
	if _, ok, err := domain.Reconcile(1, nil, nil, domain.DefaultSchedule()); err != nil || ok {
		t.Fatalf("empty group must be a no-op, ok=%v err=%v", ok, err)
	}
}

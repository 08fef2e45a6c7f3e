package board

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	reviewdto "revisit/internal/modules/review/dto"
)

type fakePort struct {
	board reviewdto.BoardOutput
	err   error
}

func (f fakePort) Board(context.Context) (reviewdto.BoardOutput, error) {
	return f.board, f.err
}

func loaded(t *testing.T, port BoardPort) Model {
	t.Helper()
	m := New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	msg := m.Reload()()
	m, _ = m.Update(msg)
	return m
}

func TestBoardSwitchesBuckets(t *testing.T) {
	m := loaded(t, fakePort{board: reviewdto.BoardOutput{
		ReviewDue: []reviewdto.EntryOutput{
			{Slug: "two-sum", Title: "Two Sum", Level: 1, MaxLevel: 5, NextReviewIn: "Due now"},
		},
		Mastered: []reviewdto.EntryOutput{
			{Slug: "valid-anagram", Title: "Valid Anagram", Level: 5, MaxLevel: 5},
			{Slug: "merge-intervals", Title: "Merge Intervals", Level: 5, MaxLevel: 5},
		},
	}})

	if got := m.Count(BucketDue); got != 1 {
		t.Fatalf("due count = %d", got)
	}
	entry, ok := m.Selected()
	if !ok || entry.Slug != "two-sum" {
		t.Fatalf("selected = %+v, %v", entry, ok)
	}

	m.SetBucket(BucketMastered)
	if m.Bucket() != BucketMastered || m.Count(BucketMastered) != 2 {
		t.Fatalf("bucket = %v count = %d", m.Bucket(), m.Count(BucketMastered))
	}
	entry, ok = m.Selected()
	if !ok || entry.Slug != "valid-anagram" {
		t.Fatalf("selected after switch = %+v, %v", entry, ok)
	}

	m.SetBucket(BucketNotTracking)
	if _, ok := m.Selected(); ok {
		t.Fatal("expected empty bucket to have no selection")
	}
	if !strings.Contains(m.View(), "Nothing in not tracking") {
		t.Fatalf("view missing empty hint:\n%s", m.View())
	}
}

func TestBoardShowsLoadError(t *testing.T) {
	m := loaded(t, fakePort{err: errors.New("database is locked")})
	if !strings.Contains(m.View(), "database is locked") {
		t.Fatalf("view missing error:\n%s", m.View())
	}
}

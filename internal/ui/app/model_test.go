package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	reviewdto "revisit/internal/modules/review/dto"
	"revisit/internal/ui/components"
)

type fakeReview struct {
	board    reviewdto.BoardOutput
	synced   []string
	canceled []string
}

func (f *fakeReview) Sync(_ context.Context, slug string) reviewdto.SyncOutput {
	f.synced = append(f.synced, slug)
	return reviewdto.SyncOutput{Success: true, Created: 2, Advanced: 1, Unresolved: []string{"gone"}}
}

func (f *fakeReview) Board(context.Context) (reviewdto.BoardOutput, error) { return f.board, nil }

func (f *fakeReview) Cancel(_ context.Context, slug string) (reviewdto.EntryOutput, error) {
	f.canceled = append(f.canceled, slug)
	return reviewdto.EntryOutput{Slug: slug, Level: 2, NextReviewIn: "Due now"}, nil
}

func (f *fakeReview) Resume(_ context.Context, slug string) (reviewdto.EntryOutput, error) {
	return reviewdto.EntryOutput{Slug: slug}, nil
}

func (f *fakeReview) Reset(_ context.Context, slug string) (reviewdto.EntryOutput, error) {
	return reviewdto.EntryOutput{Slug: slug}, nil
}

func keyPress(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestSyncKeyRunsSyncAndReportsCounts(t *testing.T) {
	review := &fakeReview{}
	m := NewModel(review)

	m, cmd := step(t, m, keyPress('r'))
	if !m.syncing || cmd == nil {
		t.Fatal("expected sync to start")
	}
	if _, again := step(t, m, keyPress('r')); again != nil {
		t.Fatal("expected second sync to be refused while running")
	}

	m, _ = step(t, m, cmd())
	if m.syncing {
		t.Fatal("expected sync to finish")
	}
	if len(review.synced) != 1 || review.synced[0] != "" {
		t.Fatalf("synced = %v", review.synced)
	}
	if m.status != "synced: 2 new, 1 advanced, 1 unresolved" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestCancelKeyTargetsSelectedEntry(t *testing.T) {
	review := &fakeReview{board: reviewdto.BoardOutput{
		ReviewDue: []reviewdto.EntryOutput{{Slug: "two-sum", Title: "Two Sum"}},
	}}
	m := NewModel(review)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = step(t, m, m.board.Reload()())

	m, cmd := step(t, m, keyPress('c'))
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	m, _ = step(t, m, cmd())
	if len(review.canceled) != 1 || review.canceled[0] != "two-sum" {
		t.Fatalf("canceled = %v", review.canceled)
	}
	if !strings.HasPrefix(m.status, "cancel two-sum") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestCancelWithoutSelection(t *testing.T) {
	m := NewModel(&fakeReview{})
	m, cmd := step(t, m, keyPress('c'))
	if cmd != nil || m.status != "no problem selected" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestPaletteCommands(t *testing.T) {
	review := &fakeReview{}
	m := NewModel(review)

	m, cmd := step(t, m, components.PaletteSubmitMsg{Input: "sync two-sum"})
	if cmd == nil {
		t.Fatal("expected sync command")
	}
	cmd()
	if len(review.synced) != 1 || review.synced[0] != "two-sum" {
		t.Fatalf("synced = %v", review.synced)
	}

	m.syncing = false
	m, _ = step(t, m, components.PaletteSubmitMsg{Input: "bogus"})
	if m.status != "unknown command: bogus" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestSummarizeFailedSync(t *testing.T) {
	got := summarizeSync(reviewdto.SyncOutput{Error: "failed to sync problems: boom"})
	if got != "sync failed: failed to sync problems: boom" {
		t.Fatalf("got %q", got)
	}
}

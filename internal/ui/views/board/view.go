package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reviewdto "revisit/internal/modules/review/dto"
	"revisit/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type BoardPort interface {
	Board(ctx context.Context) (reviewdto.BoardOutput, error)
}

// ─── buckets ─────────────────────────────────────────────────────────────────

type Bucket int

const (
	BucketDue Bucket = iota
	BucketScheduled
	BucketMastered
	BucketNotTracking
	BucketCount
)

var bucketLabels = [BucketCount]string{"Review due", "Scheduled", "Mastered", "Not tracking"}

func (b Bucket) Label() string { return bucketLabels[b] }

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Board reviewdto.BoardOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry reviewdto.EntryOutput
}

func (i entryItem) Title() string { return i.entry.Title }
func (i entryItem) Description() string {
	return fmt.Sprintf("%s  %s  %s", theme.Difficulty(i.entry.Difficulty), theme.Level(i.entry.Level, i.entry.MaxLevel), i.entry.NextReviewIn)
}
func (i entryItem) FilterValue() string { return i.entry.Title + " " + strings.Join(i.entry.Tags, " ") }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    BoardPort
	board   reviewdto.BoardOutput
	bucket  Bucket
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port BoardPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, list: l, detail: vp, spinner: sp, loading: true}
	m.list.Title = m.bucket.Label()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the board again; the result arrives as LoadedMsg.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("board not configured")}
		}
		b, err := port.Board(context.Background())
		return LoadedMsg{Board: b, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.board = msg.Board
		}
		cmds = append(cmds, m.refreshItems())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		m.detail.SetContent(m.renderDetail())

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading board…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SetBucket switches the visible bucket without reloading.
func (m *Model) SetBucket(b Bucket) tea.Cmd {
	if b < 0 || b >= BucketCount {
		return nil
	}
	m.bucket = b
	m.list.ResetFilter()
	m.list.Title = b.Label()
	cmd := m.refreshItems()
	m.detail.SetContent(m.renderDetail())
	return cmd
}

func (m Model) Bucket() Bucket { return m.bucket }

// Count returns the number of entries in bucket b.
func (m Model) Count(b Bucket) int { return len(m.entries(b)) }

func (m Model) Selected() (reviewdto.EntryOutput, bool) {
	if item, ok := m.list.SelectedItem().(entryItem); ok {
		return item.entry, true
	}
	return reviewdto.EntryOutput{}, false
}

// Filtering reports whether the list's search filter is active so the app
// model can leave typed keys alone.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) entries(b Bucket) []reviewdto.EntryOutput {
	switch b {
	case BucketDue:
		return m.board.ReviewDue
	case BucketScheduled:
		return m.board.ReviewScheduled
	case BucketMastered:
		return m.board.Mastered
	case BucketNotTracking:
		return m.board.NotTracking
	}
	return nil
}

func (m *Model) refreshItems() tea.Cmd {
	entries := m.entries(m.bucket)
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return m.list.SetItems(items)
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(detailW-4, 1)
	m.detail.Height = max(m.height-4, 1)
}

func (m Model) renderDetail() string {
	if m.err != nil {
		return theme.Error.Render("board: " + m.err.Error())
	}
	e, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("Nothing in " + strings.ToLower(m.bucket.Label()))
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(e.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("slug:     ") + e.Slug + "\n")
	sb.WriteString(theme.Muted.Render("level:    ") + theme.Level(e.Level, e.MaxLevel) + fmt.Sprintf(" %d/%d\n", e.Level, e.MaxLevel))
	sb.WriteString(theme.Muted.Render("diff:     ") + theme.Difficulty(e.Difficulty) + "\n")
	sb.WriteString(theme.Muted.Render("solved:   ") + e.LastSubmitted + "\n")
	sb.WriteString(theme.Muted.Render("review:   ") + e.NextReviewIn + "\n")
	if len(e.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:     ") + strings.Join(e.Tags, ", ") + "\n")
	}
	sb.WriteString(theme.Muted.Render("url:      ") + e.URL + "\n")
	hint := "c: stop tracking  x: reset  r: sync"
	if !e.Tracking {
		hint = "u: resume tracking  x: reset  r: sync"
	}
	sb.WriteString("\n" + theme.Muted.Render(hint))
	return sb.String()
}

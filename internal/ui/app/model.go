package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reviewdto "revisit/internal/modules/review/dto"
	"revisit/internal/ui/components"
	"revisit/internal/ui/theme"
	boardview "revisit/internal/ui/views/board"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type reviewPort interface {
	Sync(ctx context.Context, slug string) reviewdto.SyncOutput
	Board(ctx context.Context) (reviewdto.BoardOutput, error)
	Cancel(ctx context.Context, slug string) (reviewdto.EntryOutput, error)
	Resume(ctx context.Context, slug string) (reviewdto.EntryOutput, error)
	Reset(ctx context.Context, slug string) (reviewdto.EntryOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type syncDoneMsg struct {
	out reviewdto.SyncOutput
}

type trackDoneMsg struct {
	action string
	entry  reviewdto.EntryOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Sync    key.Binding
	Cancel  key.Binding
	Resume  key.Binding
	Reset   key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next bucket")),
		Sync:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "sync submissions")),
		Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "stop tracking")),
		Resume:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "resume tracking")),
		Reset:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset proficiency")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Sync, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Sync},
		{k.Cancel, k.Resume, k.Reset},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns bucket routing, the help
// overlay and the command palette; the board view renders entries.
type Model struct {
	review reviewPort
	board  boardview.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	syncing  bool
	status   string
	width    int
	height   int
}

func NewModel(review reviewPort) Model {
	return Model{
		review:  review,
		board:   boardview.New(review),
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(),
		status:  "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.board.Init()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 3})
		return m, cmd

	case syncDoneMsg:
		m.syncing = false
		m.status = summarizeSync(msg.out)
		return m, m.board.Reload()

	case trackDoneMsg:
		if msg.err != nil {
			m.status = msg.action + " failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s %s: level %d, %s", msg.action, msg.entry.Slug, msg.entry.Level, msg.entry.NextReviewIn)
		return m, m.board.Reload()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Typed keys belong to the list filter while it is open.
		if m.board.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			return m, m.board.SetBucket((m.board.Bucket() + 1) % boardview.BucketCount)
		case "shift+tab":
			return m, m.board.SetBucket((m.board.Bucket() + boardview.BucketCount - 1) % boardview.BucketCount)
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			target := ""
			if e, ok := m.board.Selected(); ok {
				target = e.Slug
			}
			return m, m.palette.Open(target)
		case "r":
			return m.startSync("")
		case "c":
			return m.track("cancel", "")
		case "u":
			return m.track("resume", "")
		case "x":
			return m.track("reset", "")
		}
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.board.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, boardview.BucketCount)
	for b := boardview.Bucket(0); b < boardview.BucketCount; b++ {
		label := fmt.Sprintf(" %s (%d) ", b.Label(), m.board.Count(b))
		if b == m.board.Bucket() {
			parts[b] = theme.Hot.Render(label)
		} else {
			parts[b] = theme.Muted.Render(label)
		}
	}
	bar := "revisit  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.syncing {
		left = theme.Hot.Render("● syncing") + "  " + left
	}
	right := theme.Muted.Render("?:help  r:sync  tab:bucket  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	slug := ""
	if len(parts) > 1 {
		slug = parts[1]
	}

	switch parts[0] {
	case "sync":
		return m.startSync(slug)
	case "cancel", "resume", "reset":
		return m.track(parts[0], slug)
	case "refresh":
		m.status = "refreshing"
		return m, m.board.Reload()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startSync(slug string) (tea.Model, tea.Cmd) {
	if m.syncing {
		m.status = "sync already running"
		return m, nil
	}
	m.syncing = true
	m.status = "syncing submissions"
	review := m.review
	return m, func() tea.Msg {
		return syncDoneMsg{out: review.Sync(context.Background(), slug)}
	}
}

// track applies a tracking action to slug, or to the selected entry when
// slug is empty.
func (m Model) track(action, slug string) (tea.Model, tea.Cmd) {
	if slug == "" {
		entry, ok := m.board.Selected()
		if !ok {
			m.status = "no problem selected"
			return m, nil
		}
		slug = entry.Slug
	}
	review := m.review
	return m, func() tea.Msg {
		ctx := context.Background()
		var (
			entry reviewdto.EntryOutput
			err   error
		)
		switch action {
		case "cancel":
			entry, err = review.Cancel(ctx, slug)
		case "resume":
			entry, err = review.Resume(ctx, slug)
		default:
			entry, err = review.Reset(ctx, slug)
		}
		return trackDoneMsg{action: action, entry: entry, err: err}
	}
}

func summarizeSync(out reviewdto.SyncOutput) string {
	if !out.Success {
		return "sync failed: " + out.Error
	}
	s := fmt.Sprintf("synced: %d new, %d advanced", out.Created, out.Advanced)
	if len(out.Unresolved) > 0 {
		s += fmt.Sprintf(", %d unresolved", len(out.Unresolved))
	}
	return s
}

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"revisit/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Lavender).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

type hint struct {
	verb  string
	usage string
	about string
}

// Keep in sync with executePalette in app/model.go.
var paletteHints = []hint{
	{"sync", "sync [slug]", "pull accepted submissions"},
	{"cancel", "cancel [slug]", "stop tracking"},
	{"resume", "resume [slug]", "resume tracking"},
	{"reset", "reset [slug]", "drop proficiency to zero"},
	{"refresh", "refresh", "reload the board"},
}

// Palette is a one-line command prompt. A missing slug argument means the
// problem selected on the board.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	target  string
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "sync, cancel two-sum, …"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette for the given selected slug, which may be empty.
func (p *Palette) Open(target string) tea.Cmd {
	p.visible = true
	p.target = target
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if m := Hints(p.input.Value()); len(m) == 1 {
				p.input.SetValue(m[0] + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command"))
	if p.target != "" {
		sb.WriteString(theme.Muted.Render("  on " + p.target))
	}
	sb.WriteString("\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if verbs := Hints(p.input.Value()); len(verbs) > 0 {
		sb.WriteString("\n")
		for _, h := range paletteHints {
			for _, v := range verbs {
				if v == h.verb {
					sb.WriteString(hintStyle.Render("  "+padRight(h.usage, 16)+h.about) + "\n")
				}
			}
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// Hints returns the verbs matching the first word typed so far.
func Hints(input string) []string {
	fields := strings.Fields(strings.ToLower(input))
	var out []string
	for _, h := range paletteHints {
		if len(fields) == 0 || strings.HasPrefix(h.verb, fields[0]) {
			out = append(out, h.verb)
		}
	}
	return out
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}

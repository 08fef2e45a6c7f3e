package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)
)

// Difficulty colours a LeetCode difficulty label.
func Difficulty(label string) string {
	switch label {
	case "Easy":
		return lipgloss.NewStyle().Foreground(Green).Render(label)
	case "Medium":
		return lipgloss.NewStyle().Foreground(Yellow).Render(label)
	case "Hard":
		return lipgloss.NewStyle().Foreground(Red).Render(label)
	default:
		return Muted.Render(label)
	}
}

// Level renders proficiency as filled and empty pips, e.g. ●●○○○.
func Level(level, total int) string {
	if total <= 0 {
		return ""
	}
	if level > total {
		level = total
	}
	if level < 0 {
		level = 0
	}
	filled := lipgloss.NewStyle().Foreground(Lavender)
	var out string
	for i := 0; i < total; i++ {
		if i < level {
			out += filled.Render("●")
		} else {
			out += Muted.Render("○")
		}
	}
	return out
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Oath theme (CLI + board).
// Reusable styles, a light and a dark palette, and a few emojis.

const (
	IconTennis  = "🎾"
	IconCheck   = "✓"
	IconEmpty   = "○"
	IconFire    = "🔥"
	IconPen     = "✍️"
	IconSparkle = "✨"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCal     = "📅"
	IconMoon    = "🌙"
	IconSun     = "☀️"
	IconWave    = "👋"
)

type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	good    lipgloss.Color
	warn    lipgloss.Color
	bad     lipgloss.Color
	muted   lipgloss.Color
	gold    lipgloss.Color
	player  lipgloss.Color
	parent  lipgloss.Color
	both    lipgloss.Color
	onCell  lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("25"),  // navy
		accent:  lipgloss.Color("161"), // raspberry
		good:    lipgloss.Color("28"),  // green
		warn:    lipgloss.Color("166"), // orange
		bad:     lipgloss.Color("160"), // red
		muted:   lipgloss.Color("243"), // gray
		gold:    lipgloss.Color("136"), // dark gold
		player:  lipgloss.Color("33"),  // blue
		parent:  lipgloss.Color("127"), // purple
		both:    lipgloss.Color("34"),  // green
		onCell:  lipgloss.Color("255"),
	}
	darkPalette = palette{
		primary: lipgloss.Color("63"),  // blue
		accent:  lipgloss.Color("205"), // magenta
		good:    lipgloss.Color("42"),  // green
		warn:    lipgloss.Color("214"), // orange
		bad:     lipgloss.Color("196"), // red
		muted:   lipgloss.Color("244"), // gray
		gold:    lipgloss.Color("220"), // gold
		player:  lipgloss.Color("39"),  // sky
		parent:  lipgloss.Color("170"), // orchid
		both:    lipgloss.Color("78"),  // mint
		onCell:  lipgloss.Color("232"),
	}
)

var (
	Title lipgloss.Style
	H2    lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Gold  lipgloss.Style

	Panel       lipgloss.Style
	SelectedRow lipgloss.Style

	CellPlayer lipgloss.Style
	CellParent lipgloss.Style
	CellBoth   lipgloss.Style
	CellToday  lipgloss.Style

	dark bool
)

func init() {
	UseTheme(false)
}

// UseTheme swaps every exported style to the light or dark palette.
func UseTheme(isDark bool) {
	p := lightPalette
	if isDark {
		p = darkPalette
	}
	dark = isDark

	Title = lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	H2 = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Muted = lipgloss.NewStyle().Foreground(p.muted)
	Key = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Good = lipgloss.NewStyle().Bold(true).Foreground(p.good)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(p.warn)
	Bad = lipgloss.NewStyle().Bold(true).Foreground(p.bad)
	Gold = lipgloss.NewStyle().Bold(true).Foreground(p.gold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.muted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(p.gold)

	cell := lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	CellPlayer = cell.Foreground(p.onCell).Background(p.player)
	CellParent = cell.Foreground(p.onCell).Background(p.parent)
	CellBoth = cell.Foreground(p.onCell).Background(p.both)
	CellToday = cell.Bold(true).Underline(true).Foreground(p.accent)
}

func IsDark() bool { return dark }

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Check renders a checklist marker.
func Check(done bool) string {
	if done {
		return Good.Render(IconCheck)
	}
	return Muted.Render(IconEmpty)
}

// SignHelper is the line under the checklist telling the user how far along they are.
func SignHelper(done, total int) string {
	if total > 0 && done == total {
		return Good.Render(IconWave + " Ready to sign! Go have fun on the court!")
	}
	return Muted.Render(fmt.Sprintf("Acknowledge all %d points above (%d/%d)", total, done, total))
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/aula/internal/tui/theme"
)

// Default column width - recalculated from the terminal width.
const defaultColWidth = 16

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg     lipgloss.Color
	colorPanel  lipgloss.Color
	colorBorder lipgloss.Color

	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	TimeColumnStyle     lipgloss.Style

	// Cells
	EmptyCellStyle    lipgloss.Style
	SlotStyle         lipgloss.Style
	SlotAltStyle      lipgloss.Style // alternate rows
	ConflictStyle     lipgloss.Style // error-severity conflict
	CursorStyle       lipgloss.Style
	MoveOriginStyle   lipgloss.Style
	MoveTargetStyle   lipgloss.Style
	MoveBlockedStyle  lipgloss.Style
	BorderStyle       lipgloss.Style
	StatsStyle        lipgloss.Style
	StatusStyle       lipgloss.Style
	StatusErrorStyle  lipgloss.Style
	HelpStyle         lipgloss.Style
	PanelStyle        lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	PanelConflictLine lipgloss.Style
	PromptStyle       lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		colorBg:     p.Bg,
		colorPanel:  p.PanelBg,
		colorBorder: p.PanelBorder,
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.Bg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(p.Fg).
		Background(p.Bg)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.Foreground(p.Today)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg).
		Padding(0, 1)

	cell := lipgloss.NewStyle().Padding(0, 1)
	s.EmptyCellStyle = cell.Background(p.Bg).Foreground(p.FgMuted)
	s.SlotStyle = cell.Background(p.SlotBg).Foreground(p.TextOnSlot)
	s.SlotAltStyle = cell.Background(p.SlotBgAlt).Foreground(p.TextOnSlot)
	s.ConflictStyle = cell.Background(p.ConflictBg).Foreground(p.TextOnConflict).Bold(true)
	s.CursorStyle = cell.Background(p.BgSelection).Foreground(p.Fg).Bold(true)
	s.MoveOriginStyle = cell.Background(p.Bg).Foreground(p.FgMuted).Italic(true)
	s.MoveTargetStyle = cell.Background(p.Warning).Foreground(p.TextOnWarning).Bold(true)
	s.MoveBlockedStyle = cell.Background(p.Conflict).Foreground(p.TextOnConflict).Bold(true)

	s.BorderStyle = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)

	s.StatsStyle = lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg)
	s.StatusStyle = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)
	s.StatusErrorStyle = lipgloss.NewStyle().Foreground(p.Conflict).Background(p.Bg).Bold(true)
	s.HelpStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg)

	s.PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.PanelBorder).
		BorderBackground(p.PanelBg).
		Background(p.PanelBg).
		Foreground(p.Fg).
		Padding(0, 1)
	s.PanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.PanelBg)
	s.PanelConflictLine = lipgloss.NewStyle().Foreground(p.Conflict).Background(p.PanelBg)

	s.PromptStyle = lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg)

	return s
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	StatsLine  string
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 3

// RenderFooter renders stats, status and help lines.
func RenderFooter(state FooterViewState) string {
	s := strings.Join([]string{state.StatsLine, state.StatusLine, state.HelpLine}, "\n")
	return PlaceBox(state.InnerW, FooterHeight, lipgloss.Top, s, state.Bg)
}

package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_CellShades(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Slot:        "#112233",
		Conflict:    "#445566",
		Warning:     "#888888",
	}

	palette := NewPalette(base)

	if palette.SlotBg != lipgloss.Color(darkenColor(base.Slot)) {
		t.Fatalf("SlotBg = %q, want %q", palette.SlotBg, darkenColor(base.Slot))
	}
	if palette.ConflictBg != lipgloss.Color(darkenColor(base.Conflict)) {
		t.Fatalf("ConflictBg = %q, want %q", palette.ConflictBg, darkenColor(base.Conflict))
	}
	if palette.SlotBgAlt != lipgloss.Color(alternateShade(darkenColor(base.Slot), false)) {
		t.Fatalf("SlotBgAlt = %q, want %q", palette.SlotBgAlt, alternateShade(darkenColor(base.Slot), false))
	}
}

func TestNewPalette_PanelFallbacks(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		Fg:          "#ffffff",
		Accent:      "#ff0000",
		Slot:        "#00ff00",
		Conflict:    "#0000ff",
		Warning:     "#ff00ff",
	}

	palette := NewPalette(base)
	if palette.PanelBg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("PanelBg = %q, want %q", palette.PanelBg, base.BgHighlight)
	}
	if palette.PanelBorder != lipgloss.Color(base.Accent) {
		t.Fatalf("PanelBorder = %q, want %q", palette.PanelBorder, base.Accent)
	}
	if palette.Today != lipgloss.Color(base.Accent) {
		t.Fatalf("Today = %q, want accent %q", palette.Today, base.Accent)
	}
}

func TestNewPalette_LightThemeLightensCells(t *testing.T) {
	base := &Theme{
		Bg:       "#f5f5f5",
		Fg:       "#222222",
		Accent:   "#2f6feb",
		Slot:     "#1d8a8a",
		Conflict: "#c2410c",
		Warning:  "#c97b00",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.SlotBg)) <= relativeLuminance(base.Slot) {
		t.Fatalf("SlotBg luminance = %f, want greater than Slot", relativeLuminance(string(palette.SlotBg)))
	}
	if relativeLuminance(string(palette.ConflictBg)) <= relativeLuminance(base.Conflict) {
		t.Fatalf("ConflictBg luminance = %f, want greater than Conflict", relativeLuminance(string(palette.ConflictBg)))
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

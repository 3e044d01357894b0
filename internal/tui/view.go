package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/view"
)

// gridHeight is the catalog rows plus top border, header, separator and bottom border.
var gridHeight = len(timetable.TimeCatalog) + 4

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		view.PlaceBox(m.width, 1, lipgloss.Top, m.titleLine(), m.styles.colorBg),
		view.RenderTable(m.tableViewState()),
	}
	if m.showConflicts {
		sections = append(sections, m.conflictPanel())
	}
	sections = append(sections, view.RenderFooter(view.FooterViewState{
		InnerW:     m.width,
		StatsLine:  m.statsLine(),
		StatusLine: m.statusLine(),
		HelpLine:   m.styles.HelpStyle.Render(m.helpLine()),
		Bg:         m.styles.colorBg,
	}))

	content := view.PadLines(lipgloss.JoinVertical(lipgloss.Left, sections...), m.width, m.height, m.styles.colorBg)
	if m.mode == ModeDetail {
		if s, ok := m.slotAt(m.cursor); ok {
			box := m.styles.PanelStyle.Render(strings.Join(view.SlotDetail(s), "\n"))
			return view.Overlay(content, box, m.width, m.height)
		}
	}
	return content
}

func (m Model) titleLine() string {
	title := "aula · weekly timetable"
	if m.loading {
		title += " (loading)"
	}
	if !m.filter.IsZero() {
		title += " · " + describeFilter(m.filter)
	}
	return m.styles.TitleStyle.Render(title)
}

func (m Model) tableViewState() view.TableViewState {
	headers, todayCol := view.HeaderLabels(m.days, timetable.Weekday(m.now().Weekday()))
	headerStyles := make([]lipgloss.Style, len(headers))
	for i := range headers {
		headerStyles[i] = m.styles.DayHeaderStyle
		if i == todayCol && todayCol > 0 {
			headerStyles[i] = m.styles.DayHeaderTodayStyle
		}
	}

	grid := m.visibleGrid()
	rows := grid.Rows(m.days)
	content := view.TableContent{
		Rows:       make([][]string, len(rows)),
		CellStyles: make([][]lipgloss.Style, len(rows)),
	}
	textW := m.colWidth - 2
	for r, row := range rows {
		cells := make([]string, 0, len(row.Cells)+1)
		styles := make([]lipgloss.Style, 0, len(row.Cells)+1)
		cells = append(cells, row.Start)
		styles = append(styles, m.styles.TimeColumnStyle)

		for d, s := range row.Cells {
			text := ""
			if s != nil {
				text = view.CellLabel(*s, textW)
			}
			cells = append(cells, text)
			styles = append(styles, m.cellStyle(Position{Day: d, Row: r}, s).Width(m.colWidth))
		}
		content.Rows[r] = cells
		content.CellStyles[r] = styles
	}

	return view.TableViewState{
		InnerW:       m.width,
		GridH:        gridHeight,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content:      content,
		BorderStyle:  m.styles.BorderStyle,
		Bg:           m.styles.colorBg,
	}
}

func (m Model) cellStyle(p Position, s *timetable.Slot) lipgloss.Style {
	if p == m.cursor {
		if m.mode != ModeMove {
			return m.styles.CursorStyle
		}
		day, start := m.cell(p)
		if occupant, ok := m.grid.Occupant(day, start); ok && occupant.ID != m.movingID {
			return m.styles.MoveBlockedStyle
		}
		return m.styles.MoveTargetStyle
	}
	if m.mode == ModeMove && p == m.moveOrigin {
		return m.styles.MoveOriginStyle
	}
	switch {
	case s == nil:
		return m.styles.EmptyCellStyle
	case s.HasErrors():
		return m.styles.ConflictStyle
	case p.Row%2 == 1:
		return m.styles.SlotAltStyle
	default:
		return m.styles.SlotStyle
	}
}

func (m Model) conflictPanel() string {
	lines := []string{m.styles.PanelTitleStyle.Render("Conflicts")}
	conflicting := m.conflicting()
	if len(conflicting) == 0 {
		lines = append(lines, "No conflicts")
	}
	width := max(m.width-4, 10)
	for _, s := range conflicting {
		head := fmt.Sprintf("%s %s %s", slotTitle(s), timetable.DayShortName(s.DayOfWeek), s.StartTime)
		for _, c := range s.Conflicts {
			line := view.Truncate(fmt.Sprintf("%s  %s", head, c.Message), width)
			lines = append(lines, m.styles.PanelConflictLine.Render(line))
		}
	}
	return m.styles.PanelStyle.Width(max(m.width-2, 0)).Render(strings.Join(lines, "\n"))
}

func (m Model) statsLine() string {
	pairs := timetable.ConflictPairs(m.slots)
	line := fmt.Sprintf("%d classes · %d conflicts", len(m.slots), pairs)
	if shadowed := len(m.grid.Shadowed()); shadowed > 0 {
		line += fmt.Sprintf(" · %d hidden by shared cells", shadowed)
	}
	return m.styles.StatsStyle.Render(line)
}

func (m Model) statusLine() string {
	if m.mode == ModeFilter {
		return m.styles.PromptStyle.Render(m.filterInput.View())
	}
	if m.statusErr {
		return m.styles.StatusErrorStyle.Render(m.statusMsg)
	}
	return m.styles.StatusStyle.Render(m.statusMsg)
}

func (m Model) helpLine() string {
	switch m.mode {
	case ModeMove:
		return "←↓↑→ choose cell · enter drop · esc cancel"
	case ModeConfirmDelete:
		return "y delete · n keep"
	case ModeDetail:
		return "esc close"
	case ModeFilter:
		return "enter apply · esc cancel"
	default:
		return "←↓↑→ move cursor · m move · d delete · enter details · c conflicts · / filter · r reload · q quit"
	}
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", zap.String("key", msg.String()), zap.Int("mode", int(m.mode)))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModeDetail:
		return m.handleDetailKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// navigate moves the cursor for arrow and vim keys and reports whether key was one.
func (m *Model) navigate(key string) bool {
	switch key {
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < len(m.days)-1 {
			m.cursor.Day++
		}
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "j", "down":
		if m.cursor.Row < len(timetable.TimeCatalog)-1 {
			m.cursor.Row++
		}
	default:
		return false
	}
	return true
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.navigate(key) {
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "m":
		s, ok := m.slotAt(m.cursor)
		if !ok {
			return m.setStatus("No class here to move", true)
		}
		m.mode = ModeMove
		m.movingID = s.ID
		m.moveOrigin = m.cursor
		return m.setStatus(fmt.Sprintf("Moving %s: pick a cell and press enter", slotTitle(s)), false)

	case "d":
		s, ok := m.slotAt(m.cursor)
		if !ok {
			return m.setStatus("No class here to delete", true)
		}
		m.mode = ModeConfirmDelete
		m.movingID = s.ID
		return m.setStatus(fmt.Sprintf("Delete %s? (y/n)", slotTitle(s)), false)

	case "enter", "i":
		if _, ok := m.slotAt(m.cursor); ok {
			m.mode = ModeDetail
		}
		return m, nil

	case "c":
		m.showConflicts = !m.showConflicts
		return m, nil

	case "/":
		m.mode = ModeFilter
		m.filterInput.SetValue(describeFilter(m.filter))
		return m, m.filterInput.Focus()

	case "esc":
		if !m.filter.IsZero() {
			m.filter = timetable.Filter{}
			return m.setStatus("Filter cleared", false)
		}
		return m, nil

	case "r":
		m.loading = true
		return m, commands.LoadSnapshot(m.svc)
	}
	return m, nil
}

func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.navigate(key) {
		return m, nil
	}

	switch key {
	case "esc", "q":
		m.mode = ModeNormal
		m.cursor = m.moveOrigin
		m.movingID = ""
		return m.setStatus("Move cancelled", false)

	case "enter", "m":
		if m.cursor == m.moveOrigin {
			m.mode = ModeNormal
			m.movingID = ""
			return m.setStatus("Move cancelled", false)
		}
		day, start := m.cell(m.cursor)
		if occupant, ok := m.grid.Occupant(day, start); ok && occupant.ID != m.movingID {
			return m.setStatus(fmt.Sprintf("Cannot move: %s %s is taken by %s",
				timetable.DayShortName(day), start, slotTitle(occupant)), true)
		}
		id := m.movingID
		m.mode = ModeNormal
		m.movingID = ""
		m.loading = true
		return m, commands.MoveSlot(m.svc, id, day, start)
	}
	return m, nil
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.movingID
		m.mode = ModeNormal
		m.movingID = ""
		m.loading = true
		return m, commands.DeleteSlot(m.svc, id)
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		m.movingID = ""
		return m.setStatus("Delete cancelled", false)
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q", "i":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filter = parseFilter(m.filterInput.Value())
		m.mode = ModeNormal
		m.filterInput.Blur()
		if m.filter.IsZero() {
			return m.setStatus("Filter cleared", false)
		}
		return m.setStatus("Filter: "+describeFilter(m.filter), false)
	case "esc":
		m.mode = ModeNormal
		m.filterInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// setStatus shows msg in the status line.
func (m Model) setStatus(msg string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusErr = isErr
	return m, nil
}

func slotTitle(s timetable.Slot) string {
	if s.CourseCode != "" {
		return s.CourseCode
	}
	if s.CourseName != "" {
		return s.CourseName
	}
	return "slot " + s.ID
}

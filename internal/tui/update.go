package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/commands"
)

const statusTimeout = 4 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		return m, nil

	case commands.SnapshotMsg:
		m.loading = false
		if msg.Snapshot != nil {
			m.setSlots(msg.Snapshot.Slots)
		}
		return m, nil

	case commands.ChangedMsg:
		m.loading = false
		m.setSlots(msg.Change.Slots)
		m.logger.Info("slot changed", zap.String("op", msg.Op), zap.String("slot_id", msg.SlotID))
		status := changeStatus(msg)
		if n := len(msg.Change.Issues); n > 0 {
			status += fmt.Sprintf(" (%d invalid slots)", n)
		}
		m.statusMsg = status
		m.statusErr = false
		if msg.Op == "move" && msg.Change.Slot.HasErrors() {
			m.statusMsg += ": now conflicting, press c"
			m.statusErr = true
		}
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ErrMsg:
		m.loading = false
		m.logger.Warn("tui operation failed", zap.String("op", msg.Op), zap.Error(msg.Err))
		m.statusErr = true
		if msg.Op == "move" && timetable.KindOf(msg.Err) == timetable.KindCellOccupied {
			m.statusMsg = "Cannot move: target cell is occupied"
		} else {
			m.statusMsg = msg.Error()
		}
		if msg.Op == "load" {
			return m, nil
		}
		return m, commands.LoadSnapshot(m.svc)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}
	return m, nil
}

func changeStatus(msg commands.ChangedMsg) string {
	switch msg.Op {
	case "move":
		s := msg.Change.Slot
		return fmt.Sprintf("Moved %s to %s %s", slotTitle(s), timetable.DayShortName(s.DayOfWeek), s.StartTime)
	case "delete":
		return "Deleted " + slotTitle(msg.Change.Slot)
	default:
		return msg.Op + " done"
	}
}

// calculateColWidth splits the terminal width across the day columns.
func (m Model) calculateColWidth() int {
	const timeCol = 7 // "HH:MM" plus padding
	borders := len(m.days) + 2
	w := (m.width - timeCol - borders) / max(len(m.days), 1)
	return max(w, 8)
}

// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/aula/internal/schedule"
	"github.com/javiermolinar/aula/internal/timetable"
)

// Timetable is the part of the schedule service the TUI drives.
type Timetable interface {
	Snapshot(ctx context.Context) (*schedule.Snapshot, error)
	MoveSlot(ctx context.Context, id string, day int, start string) (timetable.Change, error)
	DeleteSlot(ctx context.Context, id string) (timetable.Change, error)
}

// SnapshotMsg is sent when the timetable has been (re)loaded.
type SnapshotMsg struct {
	Snapshot *schedule.Snapshot
}

// ChangedMsg is sent after a mutation was stored.
type ChangedMsg struct {
	Op     string // "move" or "delete"
	SlotID string
	Change timetable.Change
}

// ErrMsg is sent when an operation fails.
type ErrMsg struct {
	Op  string
	Err error
}

func (e ErrMsg) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadSnapshot reads the current timetable.
func LoadSnapshot(svc Timetable) tea.Cmd {
	return func() tea.Msg {
		snap, err := svc.Snapshot(context.Background())
		if err != nil {
			return ErrMsg{Op: "load", Err: err}
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

// MoveSlot relocates slot id to (day, start).
func MoveSlot(svc Timetable, id string, day int, start string) tea.Cmd {
	return func() tea.Msg {
		change, err := svc.MoveSlot(context.Background(), id, day, start)
		if err != nil {
			return ErrMsg{Op: "move", Err: err}
		}
		return ChangedMsg{Op: "move", SlotID: id, Change: change}
	}
}

// DeleteSlot removes slot id.
func DeleteSlot(svc Timetable, id string) tea.Cmd {
	return func() tea.Msg {
		change, err := svc.DeleteSlot(context.Background(), id)
		if err != nil {
			return ErrMsg{Op: "delete", Err: err}
		}
		return ChangedMsg{Op: "delete", SlotID: id, Change: change}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

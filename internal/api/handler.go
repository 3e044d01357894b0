// Package api serves the timetable over HTTP.
package api

import (
	"context"
	"strconv"
	"strings"

	"github.com/javiermolinar/aula/internal/generator"
	"github.com/javiermolinar/aula/internal/schedule"
	"github.com/javiermolinar/aula/internal/scheduler"
	"github.com/javiermolinar/aula/internal/timetable"
)

// Timetable is the service behind the API. *schedule.Service implements it.
type Timetable interface {
	Snapshot(ctx context.Context) (*schedule.Snapshot, error)
	View(ctx context.Context, role timetable.Role, subject string, f timetable.Filter) ([]timetable.Slot, error)
	Today(slots []timetable.Slot) []timetable.Slot
	Stats(ctx context.Context) (timetable.Stats, error)
	WorkingDays() []int

	AddSlot(ctx context.Context, in timetable.SlotInput) (timetable.Change, error)
	UpdateSlot(ctx context.Context, id string, in timetable.SlotInput) (timetable.Change, error)
	DeleteSlot(ctx context.Context, id string) (timetable.Change, error)
	MoveSlot(ctx context.Context, id string, day int, start string) (timetable.Change, error)
	Generate(ctx context.Context, notes string) (*generator.Result, error)

	FreeCells(ctx context.Context, req scheduler.Request) ([]scheduler.Cell, error)
	NextFree(ctx context.Context, req scheduler.Request) (scheduler.Cell, bool, error)

	References(ctx context.Context) (*timetable.References, error)
}

var _ Timetable = (*schedule.Service)(nil)

// Handler holds the HTTP handlers.
type Handler struct {
	svc Timetable
}

// NewHandler creates a Handler.
func NewHandler(svc Timetable) *Handler {
	return &Handler{svc: svc}
}

// changeResponse is the reply to a slot mutation.
type changeResponse struct {
	Slot   timetable.Slot   `json:"slot"`
	Slots  []timetable.Slot `json:"slots"`
	Issues []string         `json:"issues,omitempty"`
}

func newChangeResponse(ch timetable.Change) changeResponse {
	return changeResponse{Slot: ch.Slot, Slots: ch.Slots, Issues: issueStrings(ch.Issues)}
}

func issueStrings(issues []timetable.SlotError) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Error()
	}
	return out
}

// parseDays reads a comma separated list of day indexes, falling back to def.
func parseDays(raw string, def []int) ([]int, bool) {
	if strings.TrimSpace(raw) == "" {
		return def, true
	}
	var days []int
	for _, part := range strings.Split(raw, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || !timetable.ValidDay(d) {
			return nil, false
		}
		days = append(days, d)
	}
	return days, true
}

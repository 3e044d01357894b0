// Package scheduler finds grid cells where a class can be placed without clashes.
package scheduler

import (
	"slices"
	"time"

	"github.com/javiermolinar/aula/internal/timetable"
)

// DefaultDuration is the class length in minutes when a Request leaves it unset.
const DefaultDuration = 60

// Scheduler searches the working days of the grid.
type Scheduler struct {
	workingDays []int
}

// New creates a Scheduler over workingDays (0=Monday). Empty means Monday to Friday.
func New(workingDays []int) *Scheduler {
	days := slices.Clone(workingDays)
	if len(days) == 0 {
		days = slices.Clone(timetable.DefaultWorkingDays)
	}
	slices.Sort(days)
	return &Scheduler{workingDays: slices.Compact(days)}
}

// Request describes the class to place. Empty ids match nothing.
type Request struct {
	TeacherID   string
	ClassroomID string
	Groups      []string
	Duration    int // minutes
}

// Cell is a free grid position.
type Cell struct {
	Day   int    `json:"dayOfWeek"`
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// FreeCells returns, in week order, the empty cells where a class for req
// would not overlap a class of the same teacher, classroom or group.
func (s *Scheduler) FreeCells(slots []timetable.Slot, req Request) []Cell {
	duration := durationOf(req)
	grid := timetable.BuildGrid(slots)

	var cells []Cell
	for _, day := range s.workingDays {
		for _, start := range timetable.TimeCatalog {
			if grid.Occupied(day, start) {
				continue
			}
			cell, ok := s.fit(slots, req, day, start, duration)
			if ok {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// CanFit reports whether a class for req fits at (day, start).
func (s *Scheduler) CanFit(slots []timetable.Slot, req Request, day int, start string) bool {
	if !s.IsWorkday(day) || timetable.CatalogIndex(start) < 0 {
		return false
	}
	if timetable.BuildGrid(slots).Occupied(day, start) {
		return false
	}
	_, ok := s.fit(slots, req, day, start, durationOf(req))
	return ok
}

// NextFree returns the first free cell at or after now, wrapping to next week.
func (s *Scheduler) NextFree(slots []timetable.Slot, req Request, now time.Time) (Cell, bool) {
	cells := s.FreeCells(slots, req)
	if len(cells) == 0 {
		return Cell{}, false
	}
	today := timetable.Weekday(now.Weekday())
	clock := now.Hour()*60 + now.Minute()
	for _, c := range cells {
		from, err := timetable.ParseClock(c.Start)
		if err != nil {
			continue
		}
		if c.Day > today || (c.Day == today && from >= clock) {
			return c, true
		}
	}
	return cells[0], true
}

// IsWorkday reports whether day (0=Monday) is searched.
func (s *Scheduler) IsWorkday(day int) bool {
	return slices.Contains(s.workingDays, day)
}

func (s *Scheduler) fit(slots []timetable.Slot, req Request, day int, start string, duration int) (Cell, bool) {
	from, err := timetable.ParseClock(start)
	if err != nil {
		return Cell{}, false
	}
	to := from + duration
	if to >= 24*60 {
		return Cell{}, false
	}

	for _, other := range slots {
		if other.DayOfWeek != day || !clashes(other, req) {
			continue
		}
		s1, e1, err := timetable.Span(other.StartTime, other.EndTime)
		if err != nil {
			continue
		}
		if from < e1 && s1 < to {
			return Cell{}, false
		}
	}
	return Cell{Day: day, Start: start, End: timetable.FormatClock(to)}, true
}

// clashes reports whether other shares a teacher, classroom or group with req.
func clashes(other timetable.Slot, req Request) bool {
	if req.TeacherID != "" && other.TeacherID == req.TeacherID {
		return true
	}
	if req.ClassroomID != "" && other.ClassroomID == req.ClassroomID {
		return true
	}
	for _, g := range req.Groups {
		if other.InGroup(g) {
			return true
		}
	}
	return false
}

func durationOf(req Request) int {
	if req.Duration <= 0 {
		return DefaultDuration
	}
	return req.Duration
}

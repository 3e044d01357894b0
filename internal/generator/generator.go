// Package generator produces whole timetables, either from fixed demo data or
// by asking an LLM for slot proposals.
package generator

import (
	"context"
	"errors"

	"github.com/javiermolinar/aula/internal/timetable"
)

// ErrGenerationFailed is returned when no acceptable timetable was produced.
var ErrGenerationFailed = errors.New("failed to generate timetable")

// Request is the input of a generation run.
type Request struct {
	References  *timetable.References
	WorkingDays []int
	Notes       string
}

// Result is a generated timetable.
type Result struct {
	// Slots carries conflict annotations.
	Slots    []timetable.Slot
	Issues   []timetable.SlotError
	Warnings []string
	Attempts int
}

// ConflictCount returns the number of distinct conflicting slot pairs.
func (r *Result) ConflictCount() int {
	return timetable.ConflictPairs(r.Slots)
}

// Generator builds a timetable.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

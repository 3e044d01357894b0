package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/javiermolinar/aula/internal/timetable"
)

const mockFailureReason = "Teacher availability conflict detected for Prof. Chen on Monday 9:00-10:30"

// Mock simulates a generation run: it waits Delay, then succeeds with
// probability SuccessRate and returns the demo timetable placed against the
// request's references. The references themselves are never part of the result.
type Mock struct {
	Delay       time.Duration
	SuccessRate float64

	roll func() float64
}

// NewMock creates a Mock generator.
func NewMock(delay time.Duration, successRate float64) *Mock {
	return &Mock{Delay: delay, SuccessRate: successRate, roll: rand.Float64}
}

// Generate implements Generator. It returns ctx.Err() if ctx is done before
// the delay elapses, and ErrGenerationFailed when the references lack a
// course, teacher or classroom the demo timetable uses.
func (m *Mock) Generate(ctx context.Context, req Request) (*Result, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	roll := m.roll
	if roll == nil {
		roll = rand.Float64
	}
	if roll() >= m.SuccessRate {
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, mockFailureReason)
	}

	refs := req.References
	if refs == nil {
		refs = &timetable.References{}
	}
	_, demo := Demo()
	ids := make([]string, len(demo))
	for i, d := range demo {
		ids[i] = d.ID
	}
	next := 0
	editor := timetable.NewEditor(refs, timetable.WithIDSource(func() string {
		if next >= len(ids) {
			return ""
		}
		next++
		return ids[next-1]
	}))

	var change timetable.Change
	for _, d := range demo {
		ch, err := editor.Add(change.Slots, d.Input())
		if err != nil {
			return nil, fmt.Errorf("%w: demo timetable does not fit the registry: %w; run 'aula seed' first", ErrGenerationFailed, err)
		}
		change = ch
	}
	return &Result{
		Slots:    change.Slots,
		Issues:   change.Issues,
		Attempts: 1,
	}, nil
}

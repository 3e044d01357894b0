package schedule

import (
	"context"

	"github.com/javiermolinar/aula/internal/scheduler"
)

// FreeCells lists the working-day cells where a class for req has no clash.
func (s *Service) FreeCells(ctx context.Context, req scheduler.Request) ([]scheduler.Cell, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.New(s.workingDays).FreeCells(snap.Slots, req), nil
}

// NextFree returns the first free cell for req from now on, wrapping to next week.
func (s *Service) NextFree(ctx context.Context, req scheduler.Request) (scheduler.Cell, bool, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return scheduler.Cell{}, false, err
	}
	cell, ok := scheduler.New(s.workingDays).NextFree(snap.Slots, req, s.now())
	return cell, ok, nil
}

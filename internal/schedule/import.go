package schedule

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/timetable"
)

// ImportResult reports a bulk import.
type ImportResult struct {
	Change   timetable.Change
	Added    int
	Rejected []string
}

// Import adds each input through the edit protocol, skipping the ones the
// protocol rejects. With dryRun the result is computed but not stored.
func (s *Service) Import(ctx context.Context, inputs []timetable.SlotInput, dryRun bool) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, slots, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	editor := s.editor(refs)

	res := &ImportResult{}
	res.Change.Slots, res.Change.Issues = timetable.DetectConflicts(slots)
	current := res.Change.Slots
	for i, in := range inputs {
		ch, err := editor.Add(current, in)
		if err != nil {
			res.Rejected = append(res.Rejected, fmt.Sprintf("entry %d: %v", i+1, err))
			continue
		}
		current = ch.Slots
		res.Change = ch
		res.Added++
	}

	if dryRun || res.Added == 0 {
		return res, nil
	}
	if err := s.repo.ReplaceSlots(ctx, res.Change.Slots); err != nil {
		return nil, fmt.Errorf("saving imported slots: %w", err)
	}
	s.logger.Info("slots imported", zap.Int("added", res.Added), zap.Int("rejected", len(res.Rejected)))
	return res, nil
}

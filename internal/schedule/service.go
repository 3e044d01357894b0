// Package schedule runs the timetable edit protocol against persistent storage.
// Every mutation loads the current collection, applies one pure edit and
// replaces the stored collection in a single transaction.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/generator"
	"github.com/javiermolinar/aula/internal/timetable"
)

// ErrNoGenerator is returned by Generate when no generator is configured.
var ErrNoGenerator = errors.New("no timetable generator configured")

// Snapshot is the current timetable with conflicts recomputed.
type Snapshot struct {
	References *timetable.References
	Slots      []timetable.Slot
	Issues     []timetable.SlotError
}

// Grid indexes the snapshot's slots by cell.
func (s *Snapshot) Grid() *timetable.Grid {
	return timetable.BuildGrid(s.Slots)
}

// Conflicting returns the slots that carry at least one conflict.
func (s *Snapshot) Conflicting() []timetable.Slot {
	var out []timetable.Slot
	for _, sl := range s.Slots {
		if sl.HasConflicts() {
			out = append(out, sl)
		}
	}
	return out
}

// Service serializes timetable mutations over a Repository.
type Service struct {
	mu          sync.Mutex
	repo        timetable.Repository
	gen         generator.Generator
	workingDays []int
	idSource    func() string
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithGenerator sets the generator used by Generate.
func WithGenerator(g generator.Generator) Option {
	return func(s *Service) { s.gen = g }
}

// WithWorkingDays sets the teaching days used for stats and generation.
func WithWorkingDays(days []int) Option {
	return func(s *Service) { s.workingDays = days }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithIDSource sets the id generator for new slots.
func WithIDSource(fn func() string) Option {
	return func(s *Service) { s.idSource = fn }
}

// WithClock sets the clock used by Today.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service backed by repo.
func New(repo timetable.Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		workingDays: timetable.DefaultWorkingDays,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WorkingDays returns the configured teaching days.
func (s *Service) WorkingDays() []int {
	return s.workingDays
}

// Snapshot loads the timetable and annotates conflicts.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	refs, slots, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	annotated, issues := timetable.DetectConflicts(slots)
	return &Snapshot{References: refs, Slots: annotated, Issues: issues}, nil
}

// AddSlot adds a slot built from in.
func (s *Service) AddSlot(ctx context.Context, in timetable.SlotInput) (timetable.Change, error) {
	return s.mutate(ctx, "add", func(e *timetable.Editor, slots []timetable.Slot) (timetable.Change, error) {
		return e.Add(slots, in)
	})
}

// UpdateSlot replaces the editable fields of slot id.
func (s *Service) UpdateSlot(ctx context.Context, id string, in timetable.SlotInput) (timetable.Change, error) {
	return s.mutate(ctx, "update", func(e *timetable.Editor, slots []timetable.Slot) (timetable.Change, error) {
		return e.Update(slots, id, in)
	})
}

// DeleteSlot removes slot id.
func (s *Service) DeleteSlot(ctx context.Context, id string) (timetable.Change, error) {
	return s.mutate(ctx, "delete", func(e *timetable.Editor, slots []timetable.Slot) (timetable.Change, error) {
		return e.Delete(slots, id)
	})
}

// MoveSlot places slot id at day and start.
func (s *Service) MoveSlot(ctx context.Context, id string, day int, start string) (timetable.Change, error) {
	return s.mutate(ctx, "move", func(e *timetable.Editor, slots []timetable.Slot) (timetable.Change, error) {
		return e.Move(slots, id, day, start)
	})
}

func (s *Service) mutate(ctx context.Context, op string, edit func(*timetable.Editor, []timetable.Slot) (timetable.Change, error)) (timetable.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, slots, err := s.load(ctx)
	if err != nil {
		return timetable.Change{}, err
	}

	ch, err := edit(s.editor(refs), slots)
	if err != nil {
		s.logger.Warn("slot edit rejected",
			zap.String("op", op),
			zap.String("kind", string(timetable.KindOf(err))),
			zap.Error(err),
		)
		return timetable.Change{}, err
	}

	if err := s.repo.ReplaceSlots(ctx, ch.Slots); err != nil {
		return timetable.Change{}, fmt.Errorf("saving timetable: %w", err)
	}

	s.logger.Info("slot edited",
		zap.String("op", op),
		zap.String("slot_id", ch.Slot.ID),
		zap.Int("slots", len(ch.Slots)),
		zap.Int("conflicts", timetable.ConflictPairs(ch.Slots)),
	)
	return ch, nil
}

func (s *Service) editor(refs *timetable.References) *timetable.Editor {
	if s.idSource != nil {
		return timetable.NewEditor(refs, timetable.WithIDSource(s.idSource))
	}
	return timetable.NewEditor(refs)
}

func (s *Service) load(ctx context.Context) (*timetable.References, []timetable.Slot, error) {
	refs, err := s.repo.References(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading references: %w", err)
	}
	slots, err := s.repo.ListSlots(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading slots: %w", err)
	}
	return refs, slots, nil
}

// View returns the slots visible to role and subject, narrowed by f.
func (s *Service) View(ctx context.Context, role timetable.Role, subject string, f timetable.Filter) ([]timetable.Slot, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	visible, err := timetable.ViewFor(role, subject, snap.Slots, snap.References)
	if err != nil {
		return nil, err
	}
	return f.Apply(visible), nil
}

// Today returns the slots held on the current weekday.
func (s *Service) Today(slots []timetable.Slot) []timetable.Slot {
	return timetable.Today(slots, s.now())
}

// Stats computes dashboard figures for the stored timetable.
func (s *Service) Stats(ctx context.Context) (timetable.Stats, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return timetable.Stats{}, err
	}
	return timetable.ComputeStats(snap.Slots, snap.References, s.workingDays), nil
}

// Generate runs the configured generator and replaces the stored timetable
// with its result. Registries are never touched. On failure the stored
// timetable is unchanged.
func (s *Service) Generate(ctx context.Context, notes string) (*generator.Result, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	refs, err := s.repo.References(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading references: %w", err)
	}

	start := time.Now()
	result, err := s.gen.Generate(ctx, generator.Request{
		References:  refs,
		WorkingDays: s.workingDays,
		Notes:       notes,
	})
	if err != nil {
		s.logger.Warn("timetable generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	if err := s.repo.ReplaceSlots(ctx, result.Slots); err != nil {
		return nil, fmt.Errorf("saving generated timetable: %w", err)
	}

	s.logger.Info("timetable generated",
		zap.Int("slots", len(result.Slots)),
		zap.Int("attempts", result.Attempts),
		zap.Int("conflicts", result.ConflictCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// Seed replaces all stored data with the demo registry and timetable.
func (s *Service) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs, slots := generator.Demo()
	if err := s.repo.ReplaceAll(ctx, refs, slots); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	s.logger.Info("demo data loaded", zap.Int("slots", len(slots)))
	return nil
}

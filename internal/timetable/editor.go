package timetable

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Change is the outcome of a successful mutation.
type Change struct {
	// Slots is the new collection with conflicts recomputed.
	Slots []Slot
	// Slot is the slot that was added, updated, moved or deleted.
	Slot Slot
	// Issues lists slots skipped by conflict detection.
	Issues []SlotError
}

// Editor applies add, update, delete and move to slot collections.
// It never mutates the collection it is given; on error the caller's
// collection remains the current state.
type Editor struct {
	refs  Registry
	newID func() string
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithIDSource replaces the id generator used by Add.
func WithIDSource(fn func() string) EditorOption {
	return func(e *Editor) {
		e.newID = fn
	}
}

// NewEditor creates an Editor resolving references against refs.
func NewEditor(refs Registry, opts ...EditorOption) *Editor {
	e := &Editor{refs: refs, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add resolves the references in in, assigns a fresh id and appends the slot.
func (e *Editor) Add(slots []Slot, in SlotInput) (Change, error) {
	s, err := e.denormalize(in)
	if err != nil {
		return Change{}, err
	}
	s.ID = e.freshID(slots)

	next := append(cloneSlots(slots), s)
	return e.settle(next, s.ID), nil
}

// Update replaces the slot with id using in, re-resolving every name.
func (e *Editor) Update(slots []Slot, id string, in SlotInput) (Change, error) {
	i := indexOf(slots, id)
	if i < 0 {
		return Change{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s, err := e.denormalize(in)
	if err != nil {
		return Change{}, err
	}
	s.ID = id

	next := cloneSlots(slots)
	next[i] = s
	return e.settle(next, id), nil
}

// Delete removes the slot with id. An absent id is ErrNotFound.
func (e *Editor) Delete(slots []Slot, id string) (Change, error) {
	i := indexOf(slots, id)
	if i < 0 {
		return Change{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := slots[i].clone()
	removed.Conflicts = nil

	next := slices.Delete(cloneSlots(slots), i, i+1)
	ch := e.settle(next, "")
	ch.Slot = removed
	return ch, nil
}

// Move places the slot with id at (day, start). The target cell is checked
// against every other slot; an occupied cell is ErrCellOccupied. The end time
// becomes the next catalog mark and duration follows.
func (e *Editor) Move(slots []Slot, id string, day int, start string) (Change, error) {
	i := indexOf(slots, id)
	if i < 0 {
		return Change{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !ValidDay(day) {
		return Change{}, fmt.Errorf("%w: day %d is outside the week", ErrInvalidPlacement, day)
	}
	if CatalogIndex(start) < 0 {
		return Change{}, fmt.Errorf("%w: %q is not a catalog time", ErrInvalidPlacement, start)
	}

	others := slices.Delete(slices.Clone(slots), i, i+1)
	if occupant, ok := BuildGrid(others).Occupant(day, start); ok {
		return Change{}, fmt.Errorf("%w: %s %s holds %s",
			ErrCellOccupied, DayName(day), start, label(occupant.CourseName, occupant.ID))
	}

	next := cloneSlots(slots)
	moved := &next[i]
	moved.DayOfWeek = day
	moved.StartTime = start
	moved.EndTime = NextMark(start)
	if from, to, err := Span(moved.StartTime, moved.EndTime); err == nil {
		moved.Duration = to - from
	}
	return e.settle(next, id), nil
}

// denormalize builds a slot from in with names taken from the registry.
func (e *Editor) denormalize(in SlotInput) (Slot, error) {
	course, ok := e.refs.Course(in.CourseID)
	if !ok {
		return Slot{}, fmt.Errorf("%w: course %q", ErrUnresolvedReference, in.CourseID)
	}
	teacher, ok := e.refs.Teacher(in.TeacherID)
	if !ok {
		return Slot{}, fmt.Errorf("%w: teacher %q", ErrUnresolvedReference, in.TeacherID)
	}
	room, ok := e.refs.Classroom(in.ClassroomID)
	if !ok {
		return Slot{}, fmt.Errorf("%w: classroom %q", ErrUnresolvedReference, in.ClassroomID)
	}
	if !ValidDay(in.DayOfWeek) {
		return Slot{}, fmt.Errorf("%w: day %d is outside the week", ErrInvalidPlacement, in.DayOfWeek)
	}

	s := Slot{
		CourseID:      course.ID,
		CourseName:    course.Name,
		CourseCode:    course.Code,
		TeacherID:     teacher.ID,
		TeacherName:   teacher.Name,
		ClassroomID:   room.ID,
		ClassroomName: room.Name,
		DayOfWeek:     in.DayOfWeek,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Duration:      in.Duration,
		StudentGroups: slices.Clone(in.StudentGroups),
	}
	// Malformed times are kept as given; DetectConflicts reports them.
	if from, to, err := Span(s.StartTime, s.EndTime); err == nil {
		s.Duration = to - from
	}
	return s, nil
}

func (e *Editor) freshID(slots []Slot) string {
	for range 8 {
		if id := e.newID(); id != "" && indexOf(slots, id) < 0 {
			return id
		}
	}
	for {
		if id := uuid.NewString(); indexOf(slots, id) < 0 {
			return id
		}
	}
}

func (e *Editor) settle(slots []Slot, id string) Change {
	annotated, issues := DetectConflicts(slots)
	ch := Change{Slots: annotated, Issues: issues}
	if i := indexOf(annotated, id); id != "" && i >= 0 {
		ch.Slot = annotated[i].clone()
	}
	return ch
}

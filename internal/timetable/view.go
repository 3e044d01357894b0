package timetable

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Role selects which part of the timetable a user sees.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole converts a string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q (want admin, teacher or student)", s)
	}
}

// Filter narrows a collection. Empty fields match everything.
type Filter struct {
	TeacherID   string
	ClassroomID string
	Group       string
}

// IsZero reports whether f matches every slot.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether s passes every set criterion.
func (f Filter) Match(s Slot) bool {
	if f.TeacherID != "" && s.TeacherID != f.TeacherID {
		return false
	}
	if f.ClassroomID != "" && s.ClassroomID != f.ClassroomID {
		return false
	}
	if f.Group != "" && !s.InGroup(f.Group) {
		return false
	}
	return true
}

// Apply returns the slots matching f, in collection order.
func (f Filter) Apply(slots []Slot) []Slot {
	var out []Slot
	for _, s := range slots {
		if f.Match(s) {
			out = append(out, s.clone())
		}
	}
	return out
}

// ViewFor returns the slots visible to subject under role.
// Admins see everything. Teachers see the slots they teach; subject is a teacher id.
// Students see the slots of their groups; subject is a student id resolved in refs.
func ViewFor(role Role, subject string, slots []Slot, refs *References) ([]Slot, error) {
	switch role {
	case RoleAdmin:
		return cloneSlots(slots), nil
	case RoleTeacher:
		if _, ok := refs.Teacher(subject); !ok {
			return nil, fmt.Errorf("%w: teacher %q", ErrUnresolvedReference, subject)
		}
		return Filter{TeacherID: subject}.Apply(slots), nil
	case RoleStudent:
		st, ok := refs.Student(subject)
		if !ok {
			return nil, fmt.Errorf("%w: student %q", ErrUnresolvedReference, subject)
		}
		var out []Slot
		for _, s := range slots {
			if slices.ContainsFunc(st.Groups, s.InGroup) {
				out = append(out, s.clone())
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// Weekday converts a time.Weekday to a grid day index (0 = Monday).
func Weekday(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// Today returns the slots held on the weekday of now, sorted by start time.
func Today(slots []Slot, now time.Time) []Slot {
	day := Weekday(now.Weekday())
	var out []Slot
	for _, s := range slots {
		if s.DayOfWeek == day {
			out = append(out, s.clone())
		}
	}
	SortSlots(out)
	return out
}

// SortSlots orders slots by day, then start time, then id.
func SortSlots(slots []Slot) {
	slices.SortStableFunc(slots, func(a, b Slot) int {
		return cmp.Or(
			cmp.Compare(a.DayOfWeek, b.DayOfWeek),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

package timetable

import "slices"

// ConflictType names the resource two slots compete for.
type ConflictType string

const (
	ConflictTeacher      ConflictType = "teacher"
	ConflictClassroom    ConflictType = "classroom"
	ConflictStudentGroup ConflictType = "student_group"
)

// Severity grades a conflict.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Conflict is a derived annotation on a slot. It is never set by callers.
type Conflict struct {
	Type       ConflictType `json:"type"`
	Message    string       `json:"message"`
	Severity   Severity     `json:"severity"`
	WithSlotID string       `json:"withSlotId,omitempty"`
}

// Slot is one scheduled class occurrence placed on the weekly grid.
type Slot struct {
	ID            string     `json:"id"`
	CourseID      string     `json:"courseId"`
	CourseName    string     `json:"courseName"`
	CourseCode    string     `json:"courseCode"`
	TeacherID     string     `json:"teacherId"`
	TeacherName   string     `json:"teacherName"`
	ClassroomID   string     `json:"classroomId"`
	ClassroomName string     `json:"classroomName"`
	DayOfWeek     int        `json:"dayOfWeek"` // 0 = Monday
	StartTime     string     `json:"startTime"` // "HH:MM"
	EndTime       string     `json:"endTime"`   // "HH:MM"
	Duration      int        `json:"duration"`  // minutes
	StudentGroups []string   `json:"studentGroups"`
	Conflicts     []Conflict `json:"conflicts,omitempty"`
}

// SlotInput holds the caller-settable fields of a slot.
// Names are denormalized from the registry and conflicts are derived.
type SlotInput struct {
	CourseID      string   `json:"courseId"`
	TeacherID     string   `json:"teacherId"`
	ClassroomID   string   `json:"classroomId"`
	DayOfWeek     int      `json:"dayOfWeek"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Duration      int      `json:"duration"`
	StudentGroups []string `json:"studentGroups"`
}

// Input returns the editable fields of s.
func (s Slot) Input() SlotInput {
	return SlotInput{
		CourseID:      s.CourseID,
		TeacherID:     s.TeacherID,
		ClassroomID:   s.ClassroomID,
		DayOfWeek:     s.DayOfWeek,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Duration:      s.Duration,
		StudentGroups: slices.Clone(s.StudentGroups),
	}
}

// HasConflicts reports whether any conflict is attached to s.
func (s Slot) HasConflicts() bool {
	return len(s.Conflicts) > 0
}

// HasErrors reports whether any attached conflict has error severity.
func (s Slot) HasErrors() bool {
	for _, c := range s.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// InGroup reports whether group attends s.
func (s Slot) InGroup(group string) bool {
	return slices.Contains(s.StudentGroups, group)
}

// clone returns a deep copy so callers' slices are never shared.
func (s Slot) clone() Slot {
	s.StudentGroups = slices.Clone(s.StudentGroups)
	s.Conflicts = slices.Clone(s.Conflicts)
	return s
}

func cloneSlots(slots []Slot) []Slot {
	if slots == nil {
		return nil
	}
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = s.clone()
	}
	return out
}

// indexOf returns the position of the slot with id, or -1.
func indexOf(slots []Slot, id string) int {
	return slices.IndexFunc(slots, func(s Slot) bool { return s.ID == id })
}

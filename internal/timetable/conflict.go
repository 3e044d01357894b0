package timetable

import (
	"fmt"
	"strings"
)

type span struct {
	from, to int
	ok       bool
}

// DetectConflicts returns a copy of slots with Conflicts recomputed from scratch.
//
// Two slots conflict when they share a day, their [start, end) ranges overlap and
// they share a teacher, a classroom or at least one student group. Each pair gets
// one entry per conflict type on both of its slots. Slots whose times do not parse,
// or whose end is not after their start, are reported in the returned errors and
// take no part in the comparison.
func DetectConflicts(slots []Slot) ([]Slot, []SlotError) {
	out := cloneSlots(slots)
	spans := make([]span, len(out))

	var errs []SlotError
	for i := range out {
		out[i].Conflicts = nil
		from, to, err := Span(out[i].StartTime, out[i].EndTime)
		if err != nil {
			errs = append(errs, SlotError{SlotID: out[i].ID, Err: err})
			continue
		}
		spans[i] = span{from: from, to: to, ok: true}
	}

	for i := range out {
		if !spans[i].ok {
			continue
		}
		for j := i + 1; j < len(out); j++ {
			if !spans[j].ok || out[i].DayOfWeek != out[j].DayOfWeek {
				continue
			}
			if !overlaps(spans[i].from, spans[i].to, spans[j].from, spans[j].to) {
				continue
			}
			when := fmt.Sprintf("%s %s-%s",
				DayName(out[i].DayOfWeek),
				FormatClock(max(spans[i].from, spans[j].from)),
				FormatClock(min(spans[i].to, spans[j].to)),
			)
			annotatePair(&out[i], &out[j], when)
		}
	}

	return out, errs
}

func annotatePair(a, b *Slot, when string) {
	if a.TeacherID != "" && a.TeacherID == b.TeacherID {
		who := label(a.TeacherName, a.TeacherID)
		a.Conflicts = append(a.Conflicts, Conflict{
			Type:       ConflictTeacher,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Teacher %s is also teaching %s on %s", who, label(b.CourseName, b.CourseID), when),
			WithSlotID: b.ID,
		})
		b.Conflicts = append(b.Conflicts, Conflict{
			Type:       ConflictTeacher,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Teacher %s is also teaching %s on %s", who, label(a.CourseName, a.CourseID), when),
			WithSlotID: a.ID,
		})
	}

	if a.ClassroomID != "" && a.ClassroomID == b.ClassroomID {
		room := label(a.ClassroomName, a.ClassroomID)
		a.Conflicts = append(a.Conflicts, Conflict{
			Type:       ConflictClassroom,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Classroom %s is also booked for %s on %s", room, label(b.CourseName, b.CourseID), when),
			WithSlotID: b.ID,
		})
		b.Conflicts = append(b.Conflicts, Conflict{
			Type:       ConflictClassroom,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Classroom %s is also booked for %s on %s", room, label(a.CourseName, a.CourseID), when),
			WithSlotID: a.ID,
		})
	}

	if shared := sharedGroups(a.StudentGroups, b.StudentGroups); len(shared) > 0 {
		groups := strings.Join(shared, ", ")
		a.Conflicts = append(a.Conflicts, Conflict{
			Type:       ConflictStudentGroup,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("Group %s also attends %s on %s", groups, label(b.CourseName, b.CourseID), when),
			WithSlotID: b.ID,
		})
		b.Conflicts = append(b.Conflicts, Conflict{
			Type:       ConflictStudentGroup,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("Group %s also attends %s on %s", groups, label(a.CourseName, a.CourseID), when),
			WithSlotID: a.ID,
		})
	}
}

// sharedGroups returns the groups of a that also appear in b, in a's order.
func sharedGroups(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	in := make(map[string]struct{}, len(b))
	for _, g := range b {
		in[g] = struct{}{}
	}
	var shared []string
	seen := make(map[string]struct{})
	for _, g := range a {
		if _, ok := in[g]; !ok {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		shared = append(shared, g)
	}
	return shared
}

func label(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// ConflictPairs counts distinct conflicting slot pairs in an annotated collection.
func ConflictPairs(slots []Slot) int {
	pairs := make(map[[2]string]struct{})
	for _, s := range slots {
		for _, c := range s.Conflicts {
			key := [2]string{s.ID, c.WithSlotID}
			if key[1] < key[0] {
				key[0], key[1] = key[1], key[0]
			}
			pairs[key] = struct{}{}
		}
	}
	return len(pairs)
}

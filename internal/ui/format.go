package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/aula/internal/timetable"
)

// printChange reports the affected slot and any conflicts it now has.
func printChange(out io.Writer, verb string, ch timetable.Change) {
	s := ch.Slot
	fmt.Fprintf(out, "%s %s (id %s) on %s %s-%s in %s\n",
		verb, formatSlot(slotLabel(s)), s.ID, timetable.DayName(s.DayOfWeek),
		s.StartTime, s.EndTime, roomLabel(s))
	for _, c := range s.Conflicts {
		printConflict(out, c)
	}
	printIssues(out, ch.Issues)
}

func printConflict(out io.Writer, c timetable.Conflict) {
	if c.Severity == timetable.SeverityError {
		fmt.Fprintln(out, formatConflict("  ✗ "+c.Message))
		return
	}
	fmt.Fprintln(out, formatWarning("  ! "+c.Message))
}

func printIssues(out io.Writer, issues []timetable.SlotError) {
	for _, issue := range issues {
		fmt.Fprintln(out, formatWarning("  ! "+issue.Error()))
	}
}

func slotLabel(s timetable.Slot) string {
	if s.CourseCode != "" {
		return s.CourseCode
	}
	if s.CourseName != "" {
		return s.CourseName
	}
	return s.CourseID
}

func roomLabel(s timetable.Slot) string {
	if s.ClassroomName != "" {
		return s.ClassroomName
	}
	return s.ClassroomID
}

// cellText is the course code and room, prefixed with "!" on a clash.
func cellText(s timetable.Slot, width int) string {
	text := slotLabel(s) + " " + roomLabel(s)
	if s.HasErrors() {
		text = "! " + text
	}
	return truncate(text, width)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/aula/internal/timetable"
)

// FormatDuration formats minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// CellLabel is the one-line text of a slot in a grid cell of the given width.
func CellLabel(s timetable.Slot, width int) string {
	label := s.CourseCode
	if label == "" {
		label = s.CourseName
	}
	if s.ClassroomName != "" {
		label += " " + s.ClassroomName
	}
	if s.HasConflicts() {
		label = "! " + label
	}
	return Truncate(label, width)
}

// Truncate clips s to width display columns, adding an ellipsis when clipped.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// SlotDetail lists the fields of s for the detail box.
func SlotDetail(s timetable.Slot) []string {
	lines := []string{
		fmt.Sprintf("%s %s", s.CourseCode, s.CourseName),
		fmt.Sprintf("%s %s-%s (%s)", timetable.DayName(s.DayOfWeek), s.StartTime, s.EndTime, FormatDuration(s.Duration)),
		"Teacher: " + s.TeacherName,
		"Room:    " + s.ClassroomName,
	}
	if len(s.StudentGroups) > 0 {
		lines = append(lines, "Groups:  "+strings.Join(s.StudentGroups, ", "))
	}
	for _, c := range s.Conflicts {
		lines = append(lines, fmt.Sprintf("[%s] %s", c.Severity, c.Message))
	}
	return lines
}

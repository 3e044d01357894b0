// Package dateutil resolves calendar dates onto teaching weeks.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned for input ParseWeekOf does not recognize.
var ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD, a weekday, this-week, next-week or last-week")

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// WeekStart returns midnight of the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	monday = WeekStart(t)
	return monday, monday.AddDate(0, 0, 6)
}

// DayOfWeek returns the date of grid day (0=Monday) in the week starting at monday.
func DayOfWeek(monday time.Time, day int) time.Time {
	return monday.AddDate(0, 0, day)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseWeekOf resolves s to the Monday of a teaching week. s can be:
//   - Empty or "this-week": the week containing relativeTo
//   - "next-week" or "last-week"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday"
//   - Absolute date: "2026-09-14" (YYYY-MM-DD), past dates included
//
// All inputs are case-insensitive.
func ParseWeekOf(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "this-week":
		return WeekStart(today), nil
	case "next-week":
		return WeekStart(today.AddDate(0, 0, 7)), nil
	case "last-week":
		return WeekStart(today.AddDate(0, 0, -7)), nil
	}

	name := strings.TrimPrefix(input, "next-")
	if target, ok := weekdayMap[name]; ok {
		return WeekStart(nextWeekday(today, target)), nil
	}
	if name != input {
		return time.Time{}, ErrInvalidDateFormat
	}

	t, err := ParseDate(input, relativeTo.Location())
	if err != nil {
		return time.Time{}, err
	}
	return WeekStart(t), nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	current := today.Weekday()
	daysUntil := int(target) - int(current)
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

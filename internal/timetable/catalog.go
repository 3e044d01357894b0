package timetable

import (
	"fmt"
	"slices"
	"time"
)

// FallbackEndTime is the end assigned to a slot moved onto the last catalog mark.
const FallbackEndTime = "19:00"

// Days lists the day axis of the grid, Monday first (index = DayOfWeek).
var Days = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimeCatalog lists the grid start times in ascending order.
var TimeCatalog = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// DayName returns the name of the day (0=Monday), or "" when out of range.
func DayName(day int) string {
	if !ValidDay(day) {
		return ""
	}
	return Days[day]
}

// DayShortName returns the three-letter name of the day (0=Monday).
func DayShortName(day int) string {
	if !ValidDay(day) {
		return ""
	}
	return Days[day][:3]
}

// ValidDay reports whether day is on the grid's day axis.
func ValidDay(day int) bool {
	return day >= 0 && day < len(Days)
}

// CatalogIndex returns the position of start in TimeCatalog, or -1.
func CatalogIndex(start string) int {
	return slices.Index(TimeCatalog, start)
}

// NextMark returns the catalog mark following start, or FallbackEndTime when
// start is the last mark or not in the catalog.
func NextMark(start string) string {
	i := CatalogIndex(start)
	if i < 0 || i+1 >= len(TimeCatalog) {
		return FallbackEndTime
	}
	return TimeCatalog[i+1]
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight to "HH:MM", clamping to the day.
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Span parses a start/end pair and checks that end is after start.
func Span(start, end string) (from, to int, err error) {
	from, err = ParseClock(start)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	to, err = ParseClock(end)
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	if to <= from {
		return 0, 0, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidTimeFormat, end, start)
	}
	return from, to, nil
}

// overlaps reports whether half-open ranges [s1,e1) and [s2,e2) intersect.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

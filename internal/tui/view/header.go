package view

import "github.com/javiermolinar/aula/internal/timetable"

// HeaderLabels builds the grid column labels for days and reports which
// column (1-based, after the time column) is today, or 0.
func HeaderLabels(days []int, today int) ([]string, int) {
	labels := make([]string, 0, len(days)+1)
	labels = append(labels, "Time")
	todayCol := 0
	for i, d := range days {
		label := timetable.DayShortName(d)
		if d == today {
			label = "*" + label + "*"
			todayCol = i + 1
		}
		labels = append(labels, label)
	}
	return labels, todayCol
}

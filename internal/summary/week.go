// Package summary provides weekly teaching load summaries.
package summary

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/javiermolinar/aula/internal/timetable"
)

// DayLoad is the teaching on one weekday.
type DayLoad struct {
	Day     int
	Classes int
	Minutes int
}

// Load is the weekly teaching time of one teacher, classroom or group.
type Load struct {
	ID      string
	Name    string
	Classes int
	Minutes int
}

// WeekSummary holds aggregated week data.
type WeekSummary struct {
	Days       []DayLoad
	Teachers   []Load
	Classrooms []Load
	Groups     []Load
	Classes    int
	Minutes    int
	Conflicts  int // conflicting pairs
	Skipped    int // slots whose times do not parse
}

// SummarizeWeek aggregates slots over days. Slots on other days are ignored.
// Loads are sorted by minutes, busiest first.
func SummarizeWeek(slots []timetable.Slot, days []int) *WeekSummary {
	if len(days) == 0 {
		days = timetable.DefaultWorkingDays
	}
	ws := &WeekSummary{Days: make([]DayLoad, len(days))}
	dayIndex := make(map[int]int, len(days))
	for i, d := range days {
		ws.Days[i].Day = d
		dayIndex[d] = i
	}

	teachers := make(map[string]*Load)
	rooms := make(map[string]*Load)
	groups := make(map[string]*Load)
	var counted []timetable.Slot

	for _, s := range slots {
		i, ok := dayIndex[s.DayOfWeek]
		if !ok {
			continue
		}
		from, to, err := timetable.Span(s.StartTime, s.EndTime)
		if err != nil {
			ws.Skipped++
			continue
		}
		minutes := to - from
		ws.Days[i].Classes++
		ws.Days[i].Minutes += minutes
		ws.Classes++
		ws.Minutes += minutes
		counted = append(counted, s)

		add(teachers, s.TeacherID, s.TeacherName, minutes)
		add(rooms, s.ClassroomID, s.ClassroomName, minutes)
		for _, g := range s.StudentGroups {
			add(groups, g, g, minutes)
		}
	}

	ws.Teachers = sorted(teachers)
	ws.Classrooms = sorted(rooms)
	ws.Groups = sorted(groups)
	ws.Conflicts = timetable.ConflictPairs(counted)
	return ws
}

func add(loads map[string]*Load, id, name string, minutes int) {
	if id == "" {
		return
	}
	l, ok := loads[id]
	if !ok {
		l = &Load{ID: id, Name: cmp.Or(name, id)}
		loads[id] = l
	}
	l.Classes++
	l.Minutes += minutes
}

func sorted(loads map[string]*Load) []Load {
	out := make([]Load, 0, len(loads))
	for _, l := range loads {
		out = append(out, *l)
	}
	slices.SortFunc(out, func(a, b Load) int {
		return cmp.Or(cmp.Compare(b.Minutes, a.Minutes), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// Busiest returns the day with the most teaching minutes. Ties go to the earlier day.
func (ws *WeekSummary) Busiest() (DayLoad, bool) {
	var best DayLoad
	found := false
	for _, d := range ws.Days {
		if d.Minutes > best.Minutes {
			best, found = d, true
		}
	}
	return best, found
}

// Text renders the summary as plain text.
func (ws *WeekSummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week: %d classes, %s teaching", ws.Classes, FormatMinutes(ws.Minutes))
	if ws.Conflicts > 0 {
		fmt.Fprintf(&b, ", %d conflict(s)", ws.Conflicts)
	}
	b.WriteString("\n\n")

	for _, d := range ws.Days {
		fmt.Fprintf(&b, "%-10s %2d  %s\n", timetable.DayName(d.Day), d.Classes, FormatMinutes(d.Minutes))
	}
	writeLoads(&b, "Teachers", ws.Teachers)
	writeLoads(&b, "Classrooms", ws.Classrooms)
	writeLoads(&b, "Groups", ws.Groups)
	if ws.Skipped > 0 {
		fmt.Fprintf(&b, "\n%d slot(s) with unreadable times not counted\n", ws.Skipped)
	}
	return b.String()
}

func writeLoads(b *strings.Builder, title string, loads []Load) {
	if len(loads) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, l := range loads {
		fmt.Fprintf(b, "  %-24s %2d  %s\n", l.Name, l.Classes, FormatMinutes(l.Minutes))
	}
}

// FormatMinutes formats minutes as "1h30m", "2h" or "45m".
func FormatMinutes(m int) string {
	h, rest := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, rest)
	}
}

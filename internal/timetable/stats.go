package timetable

import "math"

// DefaultWorkingDays are Monday to Friday.
var DefaultWorkingDays = []int{0, 1, 2, 3, 4}

// Stats summarizes a timetable for dashboards.
type Stats struct {
	TotalCourses    int `json:"totalCourses"`
	TotalTeachers   int `json:"totalTeachers"`
	TotalClassrooms int `json:"totalClassrooms"`
	TotalStudents   int `json:"totalStudents"`
	UtilizationRate int `json:"utilizationRate"` // percent
	ConflictCount   int `json:"conflictCount"`
}

// ComputeStats counts reference entities, classroom utilization and conflicting pairs.
//
// Utilization is the share of classroom-hour cells (classroom x working day x
// catalog mark) touched by at least one valid slot. Slots must already carry
// conflict annotations for ConflictCount to be meaningful.
func ComputeStats(slots []Slot, refs *References, workingDays []int) Stats {
	st := Stats{
		TotalCourses:    len(refs.Courses),
		TotalTeachers:   len(refs.Teachers),
		TotalClassrooms: len(refs.Classrooms),
		TotalStudents:   len(refs.Students),
		ConflictCount:   ConflictPairs(slots),
	}
	if len(workingDays) == 0 {
		workingDays = DefaultWorkingDays
	}

	working := make(map[int]bool, len(workingDays))
	for _, d := range workingDays {
		working[d] = true
	}
	rooms := make(map[string]bool, len(refs.Classrooms))
	for _, c := range refs.Classrooms {
		rooms[c.ID] = true
	}

	type roomHour struct {
		room string
		day  int
		mark int
	}
	used := make(map[roomHour]struct{})
	for _, s := range slots {
		if !working[s.DayOfWeek] || !rooms[s.ClassroomID] {
			continue
		}
		from, to, err := Span(s.StartTime, s.EndTime)
		if err != nil {
			continue
		}
		for i, mark := range TimeCatalog {
			m, _ := ParseClock(mark)
			if overlaps(from, to, m, m+60) {
				used[roomHour{room: s.ClassroomID, day: s.DayOfWeek, mark: i}] = struct{}{}
			}
		}
	}

	capacity := len(rooms) * len(working) * len(TimeCatalog)
	if capacity > 0 {
		st.UtilizationRate = int(math.Round(float64(len(used)) * 100 / float64(capacity)))
	}
	return st
}

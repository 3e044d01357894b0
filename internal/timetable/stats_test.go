package timetable

import "testing"

func TestComputeStats(t *testing.T) {
	refs := testRefs()
	slots, _ := DetectConflicts([]Slot{
		slotAt("a", 0, "09:00", "10:30", "t1", "r1", "G1"),
		slotAt("b", 0, "10:00", "11:00", "t1", "r2"),
		slotAt("c", 5, "09:00", "10:00", "t2", "r1"),
		slotAt("d", 1, "bad", "10:00", "t2", "r1"),
	})

	st := ComputeStats(slots, refs, nil)

	if st.TotalCourses != 3 || st.TotalTeachers != 2 || st.TotalClassrooms != 2 || st.TotalStudents != 2 {
		t.Errorf("totals = %+v", st)
	}
	if st.ConflictCount != 1 {
		t.Errorf("ConflictCount = %d, want 1", st.ConflictCount)
	}
	// a covers two marks in r1, b one mark in r2; c is on Saturday and d is invalid.
	// 3 used of 2 rooms x 5 days x 11 marks = 110.
	if st.UtilizationRate != 3 {
		t.Errorf("UtilizationRate = %d, want 3", st.UtilizationRate)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil, &References{}, []int{0, 1})
	if st != (Stats{}) {
		t.Errorf("ComputeStats on empty input = %+v, want zero", st)
	}
}

func TestComputeStatsFullRoom(t *testing.T) {
	refs := &References{Classrooms: []Classroom{{ID: "r1"}}}
	var slots []Slot
	for _, start := range TimeCatalog {
		slots = append(slots, slotAt(start, 0, start, NextMark(start), "t"+start, "r1"))
	}

	st := ComputeStats(slots, refs, []int{0})

	if st.UtilizationRate != 100 {
		t.Errorf("UtilizationRate = %d, want 100", st.UtilizationRate)
	}
}

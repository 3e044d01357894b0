package timetable

import "fmt"

func testRefs() *References {
	return &References{
		Courses: []Course{
			{ID: "c1", Name: "Data Structures", Code: "CS201", TeacherID: "t1"},
			{ID: "c2", Name: "Database Systems", Code: "CS301", TeacherID: "t1"},
			{ID: "c3", Name: "Linear Algebra", Code: "MATH201", TeacherID: "t2"},
		},
		Teachers: []Teacher{
			{ID: "t1", Name: "Prof. Michael Chen"},
			{ID: "t2", Name: "Dr. Emily Davis"},
		},
		Classrooms: []Classroom{
			{ID: "r1", Name: "Room A101", Type: ClassroomLecture},
			{ID: "r2", Name: "Lab B201", Type: ClassroomLab},
		},
		Students: []Student{
			{ID: "s1", Name: "Ana", Groups: []string{"G1"}},
			{ID: "s2", Name: "Ben", Groups: []string{"G2", "G3"}},
		},
	}
}

// sequentialIDs returns an id source yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func slotAt(id string, day int, start, end, teacher, room string, groups ...string) Slot {
	return Slot{
		ID:            id,
		CourseID:      "c1",
		CourseName:    "Data Structures",
		TeacherID:     teacher,
		ClassroomID:   room,
		DayOfWeek:     day,
		StartTime:     start,
		EndTime:       end,
		StudentGroups: groups,
	}
}

package generator

import "github.com/javiermolinar/aula/internal/timetable"

// Demo returns the built-in demonstration registry and timetable.
// The slots are conflict free; both belong to Prof. Michael Chen on different days.
func Demo() (*timetable.References, []timetable.Slot) {
	refs := &timetable.References{
		Courses: []timetable.Course{
			{ID: "1", Name: "Data Structures", Code: "CS201", Credits: 3, TeacherID: "2", Color: "#3B82F6"},
			{ID: "2", Name: "Database Systems", Code: "CS301", Credits: 4, TeacherID: "2", Color: "#10B981"},
			{ID: "3", Name: "Linear Algebra", Code: "MATH201", Credits: 3, TeacherID: "3", Color: "#F59E0B"},
		},
		Teachers: []timetable.Teacher{
			{ID: "1", Name: "Dr. Sarah Johnson", Email: "sarah.johnson@scheduler.com", Department: "Computer Science", Specialization: "Data Structures & Algorithms"},
			{ID: "2", Name: "Prof. Michael Chen", Email: "michael.chen@scheduler.com", Department: "Computer Science", Specialization: "Database Systems"},
			{ID: "3", Name: "Dr. Emily Davis", Email: "emily.davis@scheduler.com", Department: "Mathematics", Specialization: "Linear Algebra"},
		},
		Classrooms: []timetable.Classroom{
			{ID: "1", Name: "Room A101", Capacity: 50, Type: timetable.ClassroomLecture, Building: "Academic Block A", Floor: 1},
			{ID: "2", Name: "Lab B201", Capacity: 30, Type: timetable.ClassroomLab, Building: "Engineering Block B", Floor: 2},
			{ID: "3", Name: "Seminar Hall C301", Capacity: 25, Type: timetable.ClassroomSeminar, Building: "Administrative Block C", Floor: 3},
		},
		Students: []timetable.Student{
			{ID: "1", Name: "Alice Johnson", Email: "alice.johnson@student.edu", StudentNo: "CS2021001", Semester: 4, Department: "Computer Science", Groups: []string{"CS-2A"}},
			{ID: "2", Name: "Bob Smith", Email: "bob.smith@student.edu", StudentNo: "CS2021002", Semester: 4, Department: "Computer Science", Groups: []string{"CS-2B", "CS-3A"}},
			{ID: "3", Name: "Carol Davis", Email: "carol.davis@student.edu", StudentNo: "MATH2021001", Semester: 3, Department: "Mathematics", Groups: []string{"MATH-2A"}},
		},
	}

	slots := []timetable.Slot{
		{
			ID:            "1",
			CourseID:      "1",
			CourseName:    "Data Structures",
			CourseCode:    "CS201",
			TeacherID:     "2",
			TeacherName:   "Prof. Michael Chen",
			ClassroomID:   "1",
			ClassroomName: "Room A101",
			DayOfWeek:     0,
			StartTime:     "09:00",
			EndTime:       "10:30",
			Duration:      90,
			StudentGroups: []string{"CS-2A", "CS-2B"},
		},
		{
			ID:            "2",
			CourseID:      "2",
			CourseName:    "Database Systems",
			CourseCode:    "CS301",
			TeacherID:     "2",
			TeacherName:   "Prof. Michael Chen",
			ClassroomID:   "2",
			ClassroomName: "Lab B201",
			DayOfWeek:     2,
			StartTime:     "11:00",
			EndTime:       "12:30",
			Duration:      90,
			StudentGroups: []string{"CS-3A"},
		},
	}
	return refs, slots
}

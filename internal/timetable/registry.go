package timetable

import "slices"

// ClassroomType describes how a room is used.
type ClassroomType string

const (
	ClassroomLecture ClassroomType = "lecture"
	ClassroomLab     ClassroomType = "lab"
	ClassroomSeminar ClassroomType = "seminar"
)

// Valid returns true if the classroom type is a known value.
func (c ClassroomType) Valid() bool {
	switch c {
	case ClassroomLecture, ClassroomLab, ClassroomSeminar:
		return true
	default:
		return false
	}
}

// Course is a taught subject.
type Course struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Credits   int    `json:"credits"`
	TeacherID string `json:"teacherId"`
	Color     string `json:"color"`
}

// Teacher is an instructor.
type Teacher struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Specialization string `json:"specialization"`
}

// Classroom is a room slots are held in.
type Classroom struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Capacity int           `json:"capacity"`
	Type     ClassroomType `json:"type"`
	Building string        `json:"building"`
	Floor    int           `json:"floor"`
}

// Student is an enrolled learner. Groups are the student group labels used on slots.
type Student struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	StudentNo  string   `json:"studentId"`
	Semester   int      `json:"semester"`
	Department string   `json:"department"`
	Groups     []string `json:"groups"`
}

// Registry resolves the ids a slot references.
type Registry interface {
	Course(id string) (Course, bool)
	Teacher(id string) (Teacher, bool)
	Classroom(id string) (Classroom, bool)
}

// References is an in-memory Registry over the reference collections.
type References struct {
	Courses    []Course    `json:"courses"`
	Teachers   []Teacher   `json:"teachers"`
	Classrooms []Classroom `json:"classrooms"`
	Students   []Student   `json:"students"`
}

// Course looks up a course by id.
func (r *References) Course(id string) (Course, bool) {
	return find(r.Courses, func(c Course) bool { return c.ID == id })
}

// Teacher looks up a teacher by id.
func (r *References) Teacher(id string) (Teacher, bool) {
	return find(r.Teachers, func(t Teacher) bool { return t.ID == id })
}

// Classroom looks up a classroom by id.
func (r *References) Classroom(id string) (Classroom, bool) {
	return find(r.Classrooms, func(c Classroom) bool { return c.ID == id })
}

// Student looks up a student by id.
func (r *References) Student(id string) (Student, bool) {
	return find(r.Students, func(s Student) bool { return s.ID == id })
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	if i := slices.IndexFunc(items, match); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

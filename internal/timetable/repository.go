package timetable

import "context"

// Repository defines the storage interface for a timetable and its registries.
type Repository interface {
	// ListSlots returns every slot in collection order. Conflicts are not stored.
	ListSlots(ctx context.Context) ([]Slot, error)

	// ReplaceSlots atomically replaces the whole slot collection.
	ReplaceSlots(ctx context.Context, slots []Slot) error

	// References loads all reference entities.
	References(ctx context.Context) (*References, error)

	// ReplaceAll atomically replaces references and slots together.
	ReplaceAll(ctx context.Context, refs *References, slots []Slot) error

	// SaveCourse inserts or updates a course.
	SaveCourse(ctx context.Context, c Course) error
	// SaveTeacher inserts or updates a teacher.
	SaveTeacher(ctx context.Context, t Teacher) error
	// SaveClassroom inserts or updates a classroom.
	SaveClassroom(ctx context.Context, c Classroom) error
	// SaveStudent inserts or updates a student.
	SaveStudent(ctx context.Context, s Student) error

	// DeleteCourse removes a course. Returns ErrReferenceInUse if a slot uses it.
	DeleteCourse(ctx context.Context, id string) error
	// DeleteTeacher removes a teacher. Returns ErrReferenceInUse if a slot uses it.
	DeleteTeacher(ctx context.Context, id string) error
	// DeleteClassroom removes a classroom. Returns ErrReferenceInUse if a slot uses it.
	DeleteClassroom(ctx context.Context, id string) error
	// DeleteStudent removes a student.
	DeleteStudent(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}

package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/javiermolinar/aula/internal/timetable"
)

func sampleSlots() []timetable.Slot {
	return []timetable.Slot{
		{
			ID: "s2", CourseID: "c1", CourseName: "Data Structures", CourseCode: "CS201",
			TeacherID: "t1", TeacherName: "Prof. Michael Chen",
			ClassroomID: "r1", ClassroomName: "Room A101",
			DayOfWeek: 0, StartTime: "09:00", EndTime: "10:30", Duration: 90,
			StudentGroups: []string{"CS-2A", "CS-2B"},
		},
		{
			ID: "s1", CourseID: "c2", CourseName: "Database Systems", CourseCode: "CS301",
			TeacherID: "t1", TeacherName: "Prof. Michael Chen",
			ClassroomID: "r2", ClassroomName: "Lab B201",
			DayOfWeek: 2, StartTime: "11:00", EndTime: "12:30", Duration: 90,
		},
	}
}

func sampleRefs() *timetable.References {
	return &timetable.References{
		Courses: []timetable.Course{
			{ID: "c1", Name: "Data Structures", Code: "CS201", Credits: 4, TeacherID: "t1", Color: "#3b82f6"},
			{ID: "c2", Name: "Database Systems", Code: "CS301", Credits: 3, TeacherID: "t1"},
		},
		Teachers: []timetable.Teacher{
			{ID: "t1", Name: "Prof. Michael Chen", Email: "chen@example.edu", Department: "Computer Science"},
		},
		Classrooms: []timetable.Classroom{
			{ID: "r1", Name: "Room A101", Capacity: 60, Type: timetable.ClassroomLecture, Building: "A", Floor: 1},
			{ID: "r2", Name: "Lab B201", Capacity: 30, Type: timetable.ClassroomLab, Building: "B", Floor: 2},
		},
		Students: []timetable.Student{
			{ID: "st1", Name: "Alex Johnson", StudentNo: "CS2021001", Semester: 4, Groups: []string{"CS-2A"}},
		},
	}
}

func TestReplaceAndListSlots(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceSlots(ctx, sampleSlots()); err != nil {
		t.Fatalf("ReplaceSlots failed: %v", err)
	}

	got, err := repo.ListSlots(ctx)
	if err != nil {
		t.Fatalf("ListSlots failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(got))
	}
	// collection order is kept, not id order
	if got[0].ID != "s2" || got[1].ID != "s1" {
		t.Errorf("order = %s, %s; want s2, s1", got[0].ID, got[1].ID)
	}
	if !slices.Equal(got[0].StudentGroups, []string{"CS-2A", "CS-2B"}) {
		t.Errorf("groups = %v", got[0].StudentGroups)
	}
	if got[1].StudentGroups != nil {
		t.Errorf("expected nil groups for slot without groups, got %v", got[1].StudentGroups)
	}
	if got[0].Duration != 90 || got[0].ClassroomName != "Room A101" {
		t.Errorf("slot not round-tripped: %+v", got[0])
	}
}

func TestReplaceSlots_Overwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceSlots(ctx, sampleSlots()); err != nil {
		t.Fatal(err)
	}
	if err := repo.ReplaceSlots(ctx, sampleSlots()[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListSlots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 slot after replace, got %d", len(got))
	}
}

func TestReplaceSlots_AllOrNothing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceSlots(ctx, sampleSlots()); err != nil {
		t.Fatal(err)
	}

	bad := sampleSlots()
	bad[1].ID = bad[0].ID // duplicate primary key fails mid-batch
	if err := repo.ReplaceSlots(ctx, bad); err == nil {
		t.Fatal("expected error for duplicate ids")
	}

	got, err := repo.ListSlots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].ID != "s1" {
		t.Errorf("previous collection not kept after failed replace: %+v", got)
	}
}

func TestReplaceSlots_RejectsInvalidDay(t *testing.T) {
	repo := newTestRepo(t)
	slots := sampleSlots()
	slots[0].DayOfWeek = 9

	if err := repo.ReplaceSlots(context.Background(), slots); err == nil {
		t.Error("expected check constraint failure for day 9")
	}
}

func TestReplaceAllAndReferences(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceAll(ctx, sampleRefs(), sampleSlots()); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	refs, err := repo.References(ctx)
	if err != nil {
		t.Fatalf("References failed: %v", err)
	}
	if len(refs.Courses) != 2 || len(refs.Teachers) != 1 || len(refs.Classrooms) != 2 || len(refs.Students) != 1 {
		t.Fatalf("unexpected reference counts: %+v", refs)
	}
	if c, ok := refs.Course("c1"); !ok || c.Credits != 4 || c.Color != "#3b82f6" {
		t.Errorf("course c1 = %+v, %v", c, ok)
	}
	if r, ok := refs.Classroom("r2"); !ok || r.Type != timetable.ClassroomLab || r.Floor != 2 {
		t.Errorf("classroom r2 = %+v, %v", r, ok)
	}
	if st, ok := refs.Student("st1"); !ok || !slices.Equal(st.Groups, []string{"CS-2A"}) {
		t.Errorf("student st1 = %+v, %v", st, ok)
	}

	slots, err := repo.ListSlots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Errorf("expected 2 slots, got %d", len(slots))
	}
}

func TestSaveUpserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveTeacher(ctx, timetable.Teacher{ID: "t1", Name: "Dr. Smith"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveTeacher(ctx, timetable.Teacher{ID: "t1", Name: "Prof. Smith"}); err != nil {
		t.Fatal(err)
	}

	refs, err := repo.References(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs.Teachers) != 1 || refs.Teachers[0].Name != "Prof. Smith" {
		t.Errorf("teachers = %+v, want one updated row", refs.Teachers)
	}
}

func TestSaveClassroom_DefaultType(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveClassroom(ctx, timetable.Classroom{ID: "r9", Name: "Hall"}); err != nil {
		t.Fatal(err)
	}
	refs, err := repo.References(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if refs.Classrooms[0].Type != timetable.ClassroomLecture {
		t.Errorf("type = %q, want lecture", refs.Classrooms[0].Type)
	}
}

func TestDeleteReferenced(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.ReplaceAll(ctx, sampleRefs(), sampleSlots()[:1]); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteTeacher(ctx, "t1"); !errors.Is(err, timetable.ErrReferenceInUse) {
		t.Errorf("DeleteTeacher in use: error = %v, want ErrReferenceInUse", err)
	}
	if err := repo.DeleteClassroom(ctx, "r1"); !errors.Is(err, timetable.ErrReferenceInUse) {
		t.Errorf("DeleteClassroom in use: error = %v, want ErrReferenceInUse", err)
	}
	if err := repo.DeleteClassroom(ctx, "r2"); err != nil {
		t.Errorf("DeleteClassroom unused: %v", err)
	}
	if err := repo.DeleteCourse(ctx, "missing"); !errors.Is(err, timetable.ErrEntityNotFound) {
		t.Errorf("DeleteCourse missing: error = %v, want ErrEntityNotFound", err)
	}
	if err := repo.DeleteStudent(ctx, "st1"); err != nil {
		t.Errorf("DeleteStudent: %v", err)
	}
	if err := repo.DeleteStudent(ctx, "st1"); !errors.Is(err, timetable.ErrEntityNotFound) {
		t.Errorf("DeleteStudent twice: error = %v, want ErrEntityNotFound", err)
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aula.db")

	repo, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.ReplaceSlots(context.Background(), sampleSlots()); err != nil {
		t.Fatal(err)
	}
	_ = repo.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.ListSlots(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 slots after reopen, got %d", len(got))
	}
}

func TestNew_FailsOnUnusablePath(t *testing.T) {
	dir := t.TempDir()
	notADB := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notADB, []byte("this is not a database, just some notes about rooms\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "directory", path: dir},
		{name: "not a database", path: notADB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := New(tt.path)
			if err == nil {
				_ = repo.Close()
				t.Fatalf("New(%s) succeeded", tt.path)
			}
			if repo != nil {
				t.Errorf("New returned a repo together with error %v", err)
			}
		})
	}

	// The failed open released the file, so it can be replaced and opened.
	if err := os.Remove(notADB); err != nil {
		t.Fatal(err)
	}
	repo, err := New(notADB)
	if err != nil {
		t.Fatalf("New after replacing the file: %v", err)
	}
	_ = repo.Close()
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

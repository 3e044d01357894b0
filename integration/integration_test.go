package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/aula/internal/db"
	"github.com/javiermolinar/aula/internal/export"
	"github.com/javiermolinar/aula/internal/schedule"
	"github.com/javiermolinar/aula/internal/timetable"
)

// openService creates a service over a fresh database with automatic cleanup.
func openService(t *testing.T, path string) *schedule.Service {
	t.Helper()
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return schedule.New(repo)
}

func seededService(t *testing.T) *schedule.Service {
	t.Helper()
	svc := openService(t, filepath.Join(t.TempDir(), "test.db"))
	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return svc
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "aula.db")

	repo, err := db.New(path)
	if err != nil {
		t.Fatal(err)
	}
	svc := schedule.New(repo)
	if err := svc.Seed(ctx); err != nil {
		t.Fatal(err)
	}
	ch, err := svc.AddSlot(ctx, timetable.SlotInput{
		CourseID: "3", TeacherID: "2", ClassroomID: "3",
		DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00",
		StudentGroups: []string{"MATH-2A"},
	})
	if err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if !ch.Slot.HasErrors() {
		t.Fatalf("added slot should clash with CS201: %+v", ch.Slot)
	}
	if err := repo.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := openService(t, path)
	snap, err := reopened.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Slots) != 3 {
		t.Fatalf("reopened store has %d slots, want 3", len(snap.Slots))
	}
	// Conflicts are not stored; they must be recomputed on load.
	if got := timetable.ConflictPairs(snap.Slots); got != 1 {
		t.Errorf("conflict pairs after reopen = %d, want 1", got)
	}
	if snap.Slots[2].ID != ch.Slot.ID || snap.Slots[2].CourseName != "Linear Algebra" {
		t.Errorf("appended slot = %+v", snap.Slots[2])
	}
}

func TestEditSequenceKeepsGridConsistent(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t)

	steps := []struct {
		name string
		run  func() error
	}{
		{"move CS201 to tuesday", func() error {
			_, err := svc.MoveSlot(ctx, "1", 1, "09:00")
			return err
		}},
		{"fill monday 09:00", func() error {
			_, err := svc.AddSlot(ctx, timetable.SlotInput{
				CourseID: "3", TeacherID: "3", ClassroomID: "1",
				DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00",
			})
			return err
		}},
		{"delete CS301", func() error {
			_, err := svc.DeleteSlot(ctx, "2")
			return err
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	grid := snap.Grid()
	if grid.Len() != 2 || len(grid.Shadowed()) != 0 {
		t.Fatalf("grid holds %d slots, %d shadowed", grid.Len(), len(grid.Shadowed()))
	}
	if s, ok := grid.Occupant(1, "09:00"); !ok || s.ID != "1" || s.EndTime != "10:00" {
		t.Errorf("tuesday 09:00 = %+v, %v", s, ok)
	}
	if s, ok := grid.Occupant(0, "09:00"); !ok || s.CourseCode != "MATH201" {
		t.Errorf("monday 09:00 = %+v, %v", s, ok)
	}
	if grid.Occupied(2, "11:00") {
		t.Error("deleted CS301 still occupies wednesday 11:00")
	}

	if _, err := svc.MoveSlot(ctx, "1", 0, "09:00"); err == nil {
		t.Error("moving onto the refilled cell should fail")
	}
}

func TestICSRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := seededService(t)

	snap, err := source.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	opts := export.ICSOptions{WeekOf: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), Weeks: 4, Location: time.UTC}
	if err := export.WriteICS(&buf, snap.Slots, opts); err != nil {
		t.Fatal(err)
	}

	// Same registry, empty timetable.
	target := seededService(t)
	for _, s := range snap.Slots {
		if _, err := target.DeleteSlot(ctx, s.ID); err != nil {
			t.Fatal(err)
		}
	}
	refs, err := target.References(ctx)
	if err != nil {
		t.Fatal(err)
	}
	inputs, skipped, err := export.ParseICS(&buf, refs, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v", skipped)
	}
	res, err := target.Import(ctx, inputs, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Added != len(snap.Slots) || len(res.Rejected) != 0 {
		t.Fatalf("import added %d, rejected %v", res.Added, res.Rejected)
	}

	got, err := target.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range snap.Slots {
		g := got.Slots[i]
		if g.CourseID != want.CourseID || g.ClassroomID != want.ClassroomID || g.DayOfWeek != want.DayOfWeek ||
			g.StartTime != want.StartTime || g.EndTime != want.EndTime || len(g.StudentGroups) != len(want.StudentGroups) {
			t.Errorf("slot %d = %+v, want %+v", i, g, want)
		}
	}
}

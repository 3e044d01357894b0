package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/timetable"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	color.NoColor = true
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "aula.db")
	cfg.Generator.Delay = "0s"
	cfg.Generator.SuccessRate = 1
	return cfg
}

// run executes one command with a fresh App over cfg's database.
func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	app := NewApp(cfg, nil)
	defer func() { _ = app.Close() }()

	var buf bytes.Buffer
	app.SetOutput(&buf)
	app.SetArgs(args)
	err := app.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func TestVersion(t *testing.T) {
	out := mustRun(t, testConfig(t), "version")
	if !strings.HasPrefix(out, "aula dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestSeedAndView(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	out := mustRun(t, cfg, "view")
	for _, want := range []string{"Monday", "CS201", "Wednesday", "CS301"} {
		if !strings.Contains(out, want) {
			t.Errorf("view output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, cfg, "view", "--group", "CS-3A")
	if strings.Contains(out, "CS201") || !strings.Contains(out, "CS301") {
		t.Errorf("group filter output:\n%s", out)
	}

	if _, err := run(t, cfg, "seed"); err == nil {
		t.Error("second seed without --force should fail")
	}
	mustRun(t, cfg, "seed", "--force")
}

func TestViewUnknownRole(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "view", "--role", "dean"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestSlotAddReportsConflicts(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	out := mustRun(t, cfg, "slot", "add",
		"--course", "3", "--teacher", "2", "--room", "3",
		"--day", "mon", "--start", "10:00", "--groups", "MATH-2A")
	if !strings.Contains(out, "Scheduled MATH201") {
		t.Errorf("add output = %q", out)
	}
	if !strings.Contains(out, "is also teaching Data Structures") {
		t.Errorf("add output should report the teacher clash:\n%s", out)
	}

	out = mustRun(t, cfg, "conflicts")
	if !strings.Contains(out, "1 pair(s) in conflict") {
		t.Errorf("conflicts output:\n%s", out)
	}

	out = mustRun(t, cfg, "stats")
	if !strings.Contains(out, "Conflicts:   1") {
		t.Errorf("stats output:\n%s", out)
	}
}

func TestSlotAddRequiresFlags(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")
	if _, err := run(t, cfg, "slot", "add", "--course", "1"); err == nil {
		t.Error("expected error for missing flags")
	}
}

func TestSlotAddUnknownCourse(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")
	_, err := run(t, cfg, "slot", "add",
		"--course", "99", "--teacher", "2", "--room", "1", "--day", "fri", "--start", "08:00")
	if !errors.Is(err, timetable.ErrUnresolvedReference) {
		t.Errorf("error = %v, want ErrUnresolvedReference", err)
	}
}

func TestSlotMove(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	_, err := run(t, cfg, "slot", "move", "1", "wed", "11:00")
	if !errors.Is(err, timetable.ErrCellOccupied) {
		t.Fatalf("move onto occupied cell: error = %v, want ErrCellOccupied", err)
	}

	out := mustRun(t, cfg, "slot", "move", "1", "1", "10:00")
	if !strings.Contains(out, "Moved CS201 (id 1) on Tuesday 10:00") {
		t.Errorf("move output = %q", out)
	}
}

func TestSlotUpdateKeepsUnsetFields(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	out := mustRun(t, cfg, "slot", "update", "2", "--room", "3")
	if !strings.Contains(out, "Updated CS301 (id 2) on Wednesday 11:00-12:30 in Seminar Hall C301") {
		t.Errorf("update output = %q", out)
	}

	if _, err := run(t, cfg, "slot", "update", "99", "--room", "3"); !errors.Is(err, timetable.ErrNotFound) {
		t.Errorf("update missing slot: error = %v, want ErrNotFound", err)
	}
}

func TestSlotDelete(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	mustRun(t, cfg, "slot", "delete", "1")
	out := mustRun(t, cfg, "view")
	if strings.Contains(out, "CS201") {
		t.Errorf("deleted slot still listed:\n%s", out)
	}

	if _, err := run(t, cfg, "slot", "delete", "1"); !errors.Is(err, timetable.ErrNotFound) {
		t.Errorf("second delete: error = %v, want ErrNotFound", err)
	}
}

func TestGrid(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	out := mustRun(t, cfg, "grid", "--days", "mon,wed")
	for _, want := range []string{"Time", "Mon", "Wed", "08:00", "18:00", "CS201", "CS301"} {
		if !strings.Contains(out, want) {
			t.Errorf("grid output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Tue") {
		t.Errorf("grid shows a day that was not asked for:\n%s", out)
	}

	if _, err := run(t, cfg, "grid", "--days", "someday"); err == nil {
		t.Error("expected error for invalid day")
	}
}

func TestGenerateMock(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "generate"); err == nil || !strings.Contains(err.Error(), "aula seed") {
		t.Fatalf("generate on an empty registry error = %v", err)
	}

	mustRun(t, cfg, "seed")
	mustRun(t, cfg, "teacher", "add", "Dr. Ana Ruiz", "--id", "t-admin")
	out := mustRun(t, cfg, "generate")
	if !strings.Contains(out, "Generated 2 classes after 1 attempt(s)") {
		t.Errorf("generate output = %q", out)
	}

	cfg.Generator.SuccessRate = 0
	out, err := run(t, cfg, "generate")
	if err == nil {
		t.Fatalf("generate with zero success rate should fail:\n%s", out)
	}
	if !strings.Contains(err.Error(), "stored timetable unchanged") {
		t.Errorf("error = %v", err)
	}
	view := mustRun(t, cfg, "view")
	if !strings.Contains(view, "CS201") {
		t.Errorf("failed generation changed the timetable:\n%s", view)
	}
	if teachers := mustRun(t, cfg, "teacher", "list"); !strings.Contains(teachers, "Dr. Ana Ruiz") {
		t.Errorf("generate dropped a registered teacher:\n%s", teachers)
	}
}

func TestRegistry(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	mustRun(t, cfg, "classroom", "add", "Lab D1", "--id", "9", "--type", "lab", "--capacity", "20")
	out := mustRun(t, cfg, "classroom", "list")
	if !strings.Contains(out, "Lab D1") {
		t.Errorf("classroom list:\n%s", out)
	}
	if _, err := run(t, cfg, "classroom", "add", "Pool", "--type", "swimming"); err == nil {
		t.Error("expected error for invalid classroom type")
	}
	mustRun(t, cfg, "classroom", "remove", "9")

	if _, err := run(t, cfg, "teacher", "remove", "2"); !errors.Is(err, timetable.ErrReferenceInUse) {
		t.Errorf("removing a teacher in use: error = %v, want ErrReferenceInUse", err)
	}

	out = mustRun(t, cfg, "course", "add", "Compilers", "--code", "CS401", "--teacher", "1")
	if !strings.Contains(out, "Saved course Compilers") {
		t.Errorf("course add output = %q", out)
	}
	out = mustRun(t, cfg, "student", "add", "Dan Park", "--groups", "CS-2A,CS-3A")
	if !strings.Contains(out, "Saved student Dan Park") {
		t.Errorf("student add output = %q", out)
	}
	out = mustRun(t, cfg, "student", "list")
	if !strings.Contains(out, "CS-2A, CS-3A") {
		t.Errorf("student list:\n%s", out)
	}
}

func TestExportAndImport(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	dir := t.TempDir()
	xlsx := filepath.Join(dir, "week.xlsx")
	ics := filepath.Join(dir, "week.ics")
	mustRun(t, cfg, "export", "--xlsx", xlsx, "--ics", ics, "--week-of", "2026-09-14", "--weeks", "2")

	for _, path := range []string{xlsx, ics} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}

	out := mustRun(t, cfg, "import", ics, "--dry-run")
	if !strings.Contains(out, "Would import") {
		t.Errorf("import output = %q", out)
	}

	if _, err := run(t, cfg, "export"); err == nil {
		t.Error("export without a target should fail")
	}
	if _, err := run(t, cfg, "import", filepath.Join(dir, "missing.ics")); err == nil {
		t.Error("import of a missing file should fail")
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "6", want: 6},
		{in: "mon", want: 0},
		{in: "Wednesday", want: 2},
		{in: " FRI ", want: 4},
		{in: "7", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "funday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDay(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseDay(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolvePath("~/data/aula.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "data", "aula.db"); got != want {
		t.Errorf("resolvePath = %q, want %q", got, want)
	}
	if _, err := resolvePath("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestFree(t *testing.T) {
	cfg := testConfig(t)
	cfg.Schedule.Workdays = []string{"monday"}
	mustRun(t, cfg, "seed")

	out := mustRun(t, cfg, "free", "--teacher", "2")
	if !strings.Contains(out, "Monday") || !strings.Contains(out, "9 free cell(s)") {
		t.Errorf("free output:\n%s", out)
	}
	if strings.Contains(out, " 09:00") || strings.Contains(out, " 10:00") {
		t.Errorf("free output offers a cell the teacher is busy in:\n%s", out)
	}

	out = mustRun(t, cfg, "free", "--teacher", "2", "--next")
	if !strings.Contains(out, "Next free: Monday") {
		t.Errorf("free --next output = %q", out)
	}
}

func TestSummary(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "seed")

	out := mustRun(t, cfg, "summary")
	for _, want := range []string{"Week: 2 classes, 3h teaching", "Prof. Michael Chen", "Busiest day: Monday"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, cfg, "summary", "--days", "tue")
	if !strings.Contains(out, "Week: 0 classes") || strings.Contains(out, "Busiest") {
		t.Errorf("summary --days tue output:\n%s", out)
	}
}

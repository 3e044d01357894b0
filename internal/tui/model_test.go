package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/aula/internal/schedule"
	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/commands"
)

type moveCall struct {
	id    string
	day   int
	start string
}

type fakeTimetable struct {
	slots   []timetable.Slot
	moves   []moveCall
	deleted []string
	moveErr error
}

func (f *fakeTimetable) Snapshot(context.Context) (*schedule.Snapshot, error) {
	slots, _ := timetable.DetectConflicts(f.slots)
	return &schedule.Snapshot{Slots: slots}, nil
}

func (f *fakeTimetable) MoveSlot(_ context.Context, id string, day int, start string) (timetable.Change, error) {
	if f.moveErr != nil {
		return timetable.Change{}, f.moveErr
	}
	f.moves = append(f.moves, moveCall{id: id, day: day, start: start})
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots[i].DayOfWeek = day
			f.slots[i].StartTime = start
			return timetable.Change{Slots: f.slots, Slot: f.slots[i]}, nil
		}
	}
	return timetable.Change{}, timetable.ErrNotFound
}

func (f *fakeTimetable) DeleteSlot(_ context.Context, id string) (timetable.Change, error) {
	f.deleted = append(f.deleted, id)
	var rest []timetable.Slot
	var removed timetable.Slot
	for _, s := range f.slots {
		if s.ID == id {
			removed = s
			continue
		}
		rest = append(rest, s)
	}
	f.slots = rest
	return timetable.Change{Slots: rest, Slot: removed}, nil
}

func testSlots() []timetable.Slot {
	return []timetable.Slot{
		{
			ID: "1", CourseCode: "CS201", CourseName: "Data Structures",
			TeacherID: "2", TeacherName: "Michael Chen",
			ClassroomID: "1", ClassroomName: "A101",
			DayOfWeek: 0, StartTime: "09:00", EndTime: "10:30", Duration: 90,
			StudentGroups: []string{"CS-2A"},
		},
		{
			ID: "2", CourseCode: "CS301", CourseName: "Database Systems",
			TeacherID: "2", TeacherName: "Michael Chen",
			ClassroomID: "2", ClassroomName: "B201",
			DayOfWeek: 2, StartTime: "11:00", EndTime: "12:30", Duration: 90,
			StudentGroups: []string{"CS-3A"},
		},
	}
}

// monday is 2026-10-12.
func monday() time.Time {
	return time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC)
}

func loadedModel(t *testing.T, fake *fakeTimetable) Model {
	t.Helper()
	m := *New(fake, timetable.DefaultWorkingDays, WithClock(monday))
	msg := m.Init()()
	updated, _ := m.Update(msg)
	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var updated tea.Model = m
	for _, k := range keys {
		updated, cmd = updated.Update(k)
	}
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewPlacesCursorOnToday(t *testing.T) {
	tuesday := func() time.Time { return monday().AddDate(0, 0, 1) }
	m := New(&fakeTimetable{}, timetable.DefaultWorkingDays, WithClock(tuesday))
	if m.cursor.Day != 1 {
		t.Errorf("cursor day = %d, want 1 (Tuesday)", m.cursor.Day)
	}

	sunday := func() time.Time { return monday().AddDate(0, 0, 6) }
	m = New(&fakeTimetable{}, timetable.DefaultWorkingDays, WithClock(sunday))
	if m.cursor.Day != 0 {
		t.Errorf("cursor day = %d on a day off the grid, want 0", m.cursor.Day)
	}
}

func TestNavigationStaysOnGrid(t *testing.T) {
	m := loadedModel(t, &fakeTimetable{slots: testSlots()})

	m, _ = press(t, m, keyUp, keyUp, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != (Position{Day: 0, Row: 0}) {
		t.Errorf("cursor = %+v, want origin", m.cursor)
	}
	for range 20 {
		m, _ = press(t, m, keyRight, keyDown)
	}
	want := Position{Day: len(timetable.DefaultWorkingDays) - 1, Row: len(timetable.TimeCatalog) - 1}
	if m.cursor != want {
		t.Errorf("cursor = %+v, want %+v", m.cursor, want)
	}
}

func TestMoveSlot(t *testing.T) {
	fake := &fakeTimetable{slots: testSlots()}
	m := loadedModel(t, fake)

	// Monday 09:00 holds CS201.
	m, _ = press(t, m, keyDown, runes("m"))
	if m.mode != ModeMove || m.movingID != "1" {
		t.Fatalf("mode = %v, moving = %q; want move of slot 1", m.mode, m.movingID)
	}

	m, cmd := press(t, m, keyRight, keyEnter)
	if cmd == nil {
		t.Fatal("expected a move command")
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %v after drop, want normal", m.mode)
	}

	msg := cmd()
	if _, ok := msg.(commands.ChangedMsg); !ok {
		t.Fatalf("msg = %T, want ChangedMsg", msg)
	}
	if len(fake.moves) != 1 || fake.moves[0] != (moveCall{id: "1", day: 1, start: "09:00"}) {
		t.Fatalf("moves = %+v", fake.moves)
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)
	if !strings.Contains(m.statusMsg, "Moved CS201 to Tue 09:00") {
		t.Errorf("status = %q", m.statusMsg)
	}
	if _, ok := m.grid.Occupant(1, "09:00"); !ok {
		t.Error("grid not refreshed after move")
	}
}

func TestMoveOntoOccupiedCellIsRefused(t *testing.T) {
	fake := &fakeTimetable{slots: testSlots()}
	m := loadedModel(t, fake)

	// Pick CS201 at Mon 09:00 and drop it on CS301 at Wed 11:00.
	m, _ = press(t, m, keyDown, runes("m"), keyRight, keyRight, keyDown, keyDown)
	m, cmd := press(t, m, keyEnter)

	if cmd != nil {
		t.Error("no command expected for a refused move")
	}
	if m.mode != ModeMove {
		t.Errorf("mode = %v, want to stay in move mode", m.mode)
	}
	if !m.statusErr || !strings.HasPrefix(m.statusMsg, "Cannot move") {
		t.Errorf("status = %q (err=%v), want Cannot move", m.statusMsg, m.statusErr)
	}
	if len(fake.moves) != 0 {
		t.Errorf("service called: %+v", fake.moves)
	}

	m, _ = press(t, m, keyEsc)
	if m.mode != ModeNormal || m.cursor != (Position{Day: 0, Row: 1}) {
		t.Errorf("esc should cancel and restore cursor, got mode %v cursor %+v", m.mode, m.cursor)
	}
}

func TestMoveRejectedByService(t *testing.T) {
	fake := &fakeTimetable{slots: testSlots(), moveErr: timetable.ErrCellOccupied}
	m := loadedModel(t, fake)

	m, cmd := press(t, m, keyDown, runes("m"), keyRight, keyEnter)
	updated, reload := m.Update(cmd())
	m = updated.(Model)

	if m.statusMsg != "Cannot move: target cell is occupied" {
		t.Errorf("status = %q", m.statusMsg)
	}
	if reload == nil {
		t.Error("expected a reload after a failed move")
	}
}

func TestDeleteSlot(t *testing.T) {
	tests := []struct {
		name    string
		answer  tea.KeyMsg
		deleted int
	}{
		{name: "confirmed", answer: runes("y"), deleted: 1},
		{name: "declined", answer: runes("n"), deleted: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTimetable{slots: testSlots()}
			m := loadedModel(t, fake)

			m, _ = press(t, m, keyDown, runes("d"))
			if m.mode != ModeConfirmDelete {
				t.Fatalf("mode = %v, want confirm", m.mode)
			}
			m, cmd := press(t, m, tt.answer)
			if cmd != nil {
				updated, _ := m.Update(cmd())
				m = updated.(Model)
			}
			if len(fake.deleted) != tt.deleted {
				t.Errorf("deleted = %v", fake.deleted)
			}
			if m.mode != ModeNormal {
				t.Errorf("mode = %v, want normal", m.mode)
			}
			if want := 2 - tt.deleted; len(m.slots) != want {
				t.Errorf("slots = %d, want %d", len(m.slots), want)
			}
		})
	}
}

func TestEmptyCellActions(t *testing.T) {
	m := loadedModel(t, &fakeTimetable{slots: testSlots()})

	for _, key := range []string{"m", "d"} {
		got, _ := press(t, m, runes(key))
		if got.mode != ModeNormal || !got.statusErr {
			t.Errorf("%s on empty cell: mode %v, status %q", key, got.mode, got.statusMsg)
		}
	}
}

func TestConflictPanelToggle(t *testing.T) {
	slots := testSlots()
	slots[1].DayOfWeek, slots[1].StartTime, slots[1].EndTime = 0, "10:00", "11:00"
	m := loadedModel(t, &fakeTimetable{slots: slots})

	if strings.Contains(m.View(), "Conflicts") {
		t.Error("conflict panel shown before toggling")
	}
	m, _ = press(t, m, runes("c"))
	out := m.View()
	if !strings.Contains(out, "Conflicts") || !strings.Contains(out, "CS201") {
		t.Errorf("conflict panel missing:\n%s", out)
	}
	if !strings.Contains(out, "1 conflicts") {
		t.Errorf("stats line should count one conflicting pair:\n%s", out)
	}
}

func TestFilter(t *testing.T) {
	m := loadedModel(t, &fakeTimetable{slots: testSlots()})

	m, _ = press(t, m, runes("/"))
	if m.mode != ModeFilter {
		t.Fatalf("mode = %v, want filter", m.mode)
	}
	m, _ = press(t, m, runes("group:CS-3A"), keyEnter)
	if m.filter.Group != "CS-3A" {
		t.Fatalf("filter = %+v", m.filter)
	}
	if m.visibleGrid().Occupied(0, "09:00") {
		t.Error("CS-2A slot should be hidden by the filter")
	}
	if !m.visibleGrid().Occupied(2, "11:00") {
		t.Error("CS-3A slot should stay visible")
	}

	m, _ = press(t, m, keyEsc)
	if !m.filter.IsZero() {
		t.Errorf("esc should clear the filter, got %+v", m.filter)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want timetable.Filter
	}{
		{in: "", want: timetable.Filter{}},
		{in: "CS-2A", want: timetable.Filter{Group: "CS-2A"}},
		{in: "teacher:2 room:1", want: timetable.Filter{TeacherID: "2", ClassroomID: "1"}},
		{in: "classroom:3 group:MATH-2A", want: timetable.Filter{ClassroomID: "3", Group: "MATH-2A"}},
		{in: "color:red", want: timetable.Filter{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseFilter(tt.in); got != tt.want {
				t.Errorf("parseFilter(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestViewRendersGrid(t *testing.T) {
	m := loadedModel(t, &fakeTimetable{slots: testSlots()})

	out := m.View()
	for _, want := range []string{"*Mon*", "Fri", "08:00", "18:00", "CS201", "2 classes"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 40 {
		t.Errorf("view has %d lines, want terminal height 40", lines)
	}
}

func TestDetailOverlay(t *testing.T) {
	m := loadedModel(t, &fakeTimetable{slots: testSlots()})

	m, _ = press(t, m, keyDown, keyEnter)
	if m.mode != ModeDetail {
		t.Fatalf("mode = %v, want detail", m.mode)
	}
	if out := m.View(); !strings.Contains(out, "Teacher: Michael Chen") {
		t.Errorf("detail box missing:\n%s", out)
	}
	m, _ = press(t, m, keyEsc)
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal", m.mode)
	}
}

// Package tui provides the terminal timetable browser.
package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/commands"
	"github.com/javiermolinar/aula/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // a slot is picked up and follows the cursor
	ModeConfirmDelete
	ModeDetail
	ModeFilter
)

// Position is a cursor position on the grid.
type Position struct {
	Day int // index into the displayed days
	Row int // index into timetable.TimeCatalog
}

// Model is the main TUI model.
type Model struct {
	svc    commands.Timetable
	days   []int
	styles *Styles
	logger *zap.Logger
	now    func() time.Time

	slots []timetable.Slot
	grid  *timetable.Grid // all slots, used for occupancy checks

	cursor        Position
	mode          Mode
	movingID      string
	moveOrigin    Position
	showConflicts bool
	filter        timetable.Filter
	filterInput   textinput.Model
	loading       bool

	statusMsg string
	statusErr bool

	width    int
	height   int
	colWidth int
}

// Option configures optional model behavior.
type Option func(*Model)

// WithLogger sets the logger for TUI events.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithTheme selects a color theme by name.
func WithTheme(name string) Option {
	return func(m *Model) {
		t, err := theme.Load(name)
		if err != nil {
			t, _ = theme.Load("mocha")
		}
		m.styles = NewStyles(t)
	}
}

// WithClock overrides the clock used to highlight today.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a TUI model over svc showing days (grid indexes, Monday=0).
func New(svc commands.Timetable, days []int, opts ...Option) *Model {
	if len(days) == 0 {
		days = timetable.DefaultWorkingDays
	}
	ti := textinput.New()
	ti.Placeholder = "group:CS-2A teacher:2 room:1"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	m := &Model{
		svc:         svc,
		days:        days,
		logger:      zap.NewNop(),
		now:         time.Now,
		grid:        timetable.BuildGrid(nil),
		filterInput: ti,
		loading:     true,
		colWidth:    defaultColWidth,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.styles == nil {
		t, _ := theme.Load("mocha")
		m.styles = NewStyles(t)
	}
	if i := slices.Index(m.days, timetable.Weekday(m.now().Weekday())); i >= 0 {
		m.cursor.Day = i
	}
	return m
}

// Init loads the timetable.
func (m Model) Init() tea.Cmd {
	return commands.LoadSnapshot(m.svc)
}

// Run starts the TUI and blocks until the user quits.
func Run(svc commands.Timetable, days []int, opts ...Option) error {
	p := tea.NewProgram(New(svc, days, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) setSlots(slots []timetable.Slot) {
	m.slots = slots
	m.grid = timetable.BuildGrid(slots)
}

// visibleGrid indexes the slots that pass the active filter.
func (m Model) visibleGrid() *timetable.Grid {
	if m.filter.IsZero() {
		return m.grid
	}
	return timetable.BuildGrid(m.filter.Apply(m.slots))
}

// cell returns the grid coordinates under p.
func (m Model) cell(p Position) (day int, start string) {
	return m.days[p.Day], timetable.TimeCatalog[p.Row]
}

// slotAt returns the visible slot under p.
func (m Model) slotAt(p Position) (timetable.Slot, bool) {
	day, start := m.cell(p)
	return m.visibleGrid().Occupant(day, start)
}

func (m Model) conflicting() []timetable.Slot {
	var out []timetable.Slot
	for _, s := range m.slots {
		if s.HasConflicts() {
			out = append(out, s)
		}
	}
	return out
}

// parseFilter reads "teacher:ID room:ID group:NAME" terms. A bare word is a group.
func parseFilter(s string) timetable.Filter {
	var f timetable.Filter
	for _, term := range strings.Fields(s) {
		key, value, ok := strings.Cut(term, ":")
		if !ok {
			f.Group = term
			continue
		}
		switch strings.ToLower(key) {
		case "teacher":
			f.TeacherID = value
		case "room", "classroom":
			f.ClassroomID = value
		case "group":
			f.Group = value
		}
	}
	return f
}

func describeFilter(f timetable.Filter) string {
	var parts []string
	if f.TeacherID != "" {
		parts = append(parts, "teacher:"+f.TeacherID)
	}
	if f.ClassroomID != "" {
		parts = append(parts, "room:"+f.ClassroomID)
	}
	if f.Group != "" {
		parts = append(parts, "group:"+f.Group)
	}
	return strings.Join(parts, " ")
}

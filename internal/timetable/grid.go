package timetable

// Cell addresses one position on the weekly grid.
type Cell struct {
	Day   int
	Start string
}

// Grid is an occupancy index over a slot collection keyed by (day, start).
// A later slot with the same key replaces an earlier one.
type Grid struct {
	cells    map[Cell]Slot
	shadowed []string
}

// BuildGrid indexes slots by cell in a single pass. It never mutates slots.
func BuildGrid(slots []Slot) *Grid {
	g := &Grid{cells: make(map[Cell]Slot, len(slots))}
	for _, s := range slots {
		key := Cell{Day: s.DayOfWeek, Start: s.StartTime}
		if prev, ok := g.cells[key]; ok {
			g.shadowed = append(g.shadowed, prev.ID)
		}
		g.cells[key] = s
	}
	return g
}

// Occupant returns the slot at (day, start), if any.
func (g *Grid) Occupant(day int, start string) (Slot, bool) {
	s, ok := g.cells[Cell{Day: day, Start: start}]
	return s, ok
}

// Occupied reports whether a slot sits at (day, start).
func (g *Grid) Occupied(day int, start string) bool {
	_, ok := g.cells[Cell{Day: day, Start: start}]
	return ok
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Shadowed returns ids of slots hidden by a later slot with the same cell,
// in the order they were replaced.
func (g *Grid) Shadowed() []string {
	out := make([]string, len(g.shadowed))
	copy(out, g.shadowed)
	return out
}

// Row is one catalog time mark across the requested days.
type Row struct {
	Start string
	Cells []*Slot // indexed like the days argument of Rows; nil means empty
}

// Rows lays the grid out as catalog rows over days (Monday-first indexes).
func (g *Grid) Rows(days []int) []Row {
	rows := make([]Row, 0, len(TimeCatalog))
	for _, start := range TimeCatalog {
		row := Row{Start: start, Cells: make([]*Slot, len(days))}
		for i, d := range days {
			if s, ok := g.cells[Cell{Day: d, Start: start}]; ok {
				row.Cells[i] = &s
			}
		}
		rows = append(rows, row)
	}
	return rows
}

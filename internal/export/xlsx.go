// Package export writes timetables to spreadsheet and calendar formats and
// reads slots back from calendar files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/aula/internal/timetable"
)

const (
	gridSheet  = "Timetable"
	slotsSheet = "Slots"
)

// WriteXLSX writes a workbook with the weekly grid over days and a flat list
// of every slot. Slots with conflicts are highlighted in both sheets.
func WriteXLSX(w io.Writer, title string, slots []timetable.Slot, days []int) error {
	if len(days) == 0 {
		days = timetable.DefaultWorkingDays
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(gridSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	if _, err := f.NewSheet(slotsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeGrid(f, st, title, slots, days); err != nil {
		return err
	}
	if err := writeSlotList(f, st, slots); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type styles struct {
	header   int
	cell     int
	conflict int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  styles
		err error
	)
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("creating header style: %w", err)
	}
	st.cell, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return st, fmt.Errorf("creating cell style: %w", err)
	}
	st.conflict, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F8CBAD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return st, fmt.Errorf("creating conflict style: %w", err)
	}
	return st, nil
}

func writeGrid(f *excelize.File, st styles, title string, slots []timetable.Slot, days []int) error {
	lastCol := colName(len(days))
	if err := f.SetColWidth(gridSheet, "A", "A", 8); err != nil {
		return err
	}
	if err := f.SetColWidth(gridSheet, "B", lastCol, 28); err != nil {
		return err
	}

	if title == "" {
		title = "Weekly timetable"
	}
	_ = f.SetCellValue(gridSheet, "A1", title)
	_ = f.MergeCell(gridSheet, "A1", cell(lastCol, 1))
	_ = f.SetCellStyle(gridSheet, "A1", cell(lastCol, 1), st.header)

	_ = f.SetCellValue(gridSheet, "A2", "Time")
	for i, d := range days {
		_ = f.SetCellValue(gridSheet, cell(colName(i+1), 2), timetable.DayName(d))
	}
	_ = f.SetCellStyle(gridSheet, "A2", cell(lastCol, 2), st.header)

	row := 3
	for _, r := range timetable.BuildGrid(slots).Rows(days) {
		_ = f.SetCellValue(gridSheet, cell("A", row), r.Start)
		for i, s := range r.Cells {
			if s == nil {
				continue
			}
			ref := cell(colName(i+1), row)
			_ = f.SetCellValue(gridSheet, ref, cellText(*s))
			style := st.cell
			if s.HasConflicts() {
				style = st.conflict
			}
			_ = f.SetCellStyle(gridSheet, ref, ref, style)
		}
		_ = f.SetRowHeight(gridSheet, row, 48)
		row++
	}
	return nil
}

var slotColumns = []string{"ID", "Day", "Start", "End", "Minutes", "Code", "Course", "Teacher", "Classroom", "Groups", "Conflicts"}

func writeSlotList(f *excelize.File, st styles, slots []timetable.Slot) error {
	for i, h := range slotColumns {
		_ = f.SetCellValue(slotsSheet, cell(colName(i), 1), h)
	}
	last := colName(len(slotColumns) - 1)
	_ = f.SetCellStyle(slotsSheet, "A1", cell(last, 1), st.header)
	if err := f.SetColWidth(slotsSheet, "A", last, 16); err != nil {
		return err
	}

	sorted := append([]timetable.Slot(nil), slots...)
	timetable.SortSlots(sorted)
	for i, s := range sorted {
		row := i + 2
		values := []any{
			s.ID, timetable.DayName(s.DayOfWeek), s.StartTime, s.EndTime, s.Duration,
			s.CourseCode, s.CourseName, s.TeacherName, s.ClassroomName,
			strings.Join(s.StudentGroups, ", "), conflictText(s),
		}
		if err := f.SetSheetRow(slotsSheet, cell("A", row), &values); err != nil {
			return fmt.Errorf("writing slot %s: %w", s.ID, err)
		}
		if s.HasConflicts() {
			_ = f.SetCellStyle(slotsSheet, cell("A", row), cell(last, row), st.conflict)
		}
	}
	return nil
}

func cellText(s timetable.Slot) string {
	parts := []string{strings.TrimSpace(s.CourseCode + " " + s.CourseName), s.TeacherName, s.ClassroomName}
	if len(s.StudentGroups) > 0 {
		parts = append(parts, strings.Join(s.StudentGroups, ", "))
	}
	return strings.Join(parts, "\n")
}

func conflictText(s timetable.Slot) string {
	msgs := make([]string, 0, len(s.Conflicts))
	for _, c := range s.Conflicts {
		msgs = append(msgs, c.Message)
	}
	return strings.Join(msgs, "; ")
}

// colName converts a zero-based column index to its letter name.
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

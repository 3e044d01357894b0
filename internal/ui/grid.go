package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/timetable"
)

func (a *App) gridCmd() *cobra.Command {
	var (
		days    string
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the weekly grid",
		Long: `Print the weekly timetable as a grid of start times over days.

Cells holding a class with a clash are marked with "!".

Example:
  aula grid
  aula grid --days mon,wed --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			shown := svc.WorkingDays()
			if days != "" {
				if shown, err = parseDays(days); err != nil {
					return err
				}
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			grid := snap.Grid()
			rendered := renderGrid(grid, shown, min(termWidth(), 160))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rendered)
			if hidden := grid.Shadowed(); len(hidden) > 0 {
				fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d class(es) share a cell and are hidden: %s",
					len(hidden), strings.Join(hidden, ", "))))
			}

			if copyOut {
				if err := clipboard.WriteAll(plainGrid(grid, shown)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Copied to clipboard"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "Days to show (comma-separated, default configured workdays)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the grid as tab-separated text")
	return cmd
}

// renderGrid draws the grid with a lipgloss table sized to width.
func renderGrid(grid *timetable.Grid, days []int, width int) string {
	headers := make([]string, 0, len(days)+1)
	headers = append(headers, "Time")
	for _, d := range days {
		headers = append(headers, timetable.DayShortName(d))
	}

	colW := max((width-7)/max(len(days), 1)-1, 8)
	rows := grid.Rows(days)
	conflicted := make(map[[2]int]bool)
	data := make([][]string, 0, len(rows))
	for r, row := range rows {
		line := make([]string, 0, len(row.Cells)+1)
		line = append(line, row.Start)
		for c, s := range row.Cells {
			if s == nil {
				line = append(line, "")
				continue
			}
			if s.HasErrors() {
				conflicted[[2]int{r, c + 1}] = true
			}
			line = append(line, cellText(*s, colW-2))
		}
		data = append(data, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				style = style.Width(colW)
			}
			if row == table.HeaderRow {
				return style.Bold(!color.NoColor)
			}
			if conflicted[[2]int{row, col}] && !color.NoColor {
				return style.Foreground(lipgloss.Color("1"))
			}
			return style
		})
	return t.Render()
}

// plainGrid renders the grid as tab-separated lines.
func plainGrid(grid *timetable.Grid, days []int) string {
	var b strings.Builder
	b.WriteString("Time")
	for _, d := range days {
		b.WriteString("\t" + timetable.DayName(d))
	}
	b.WriteString("\n")
	for _, row := range grid.Rows(days) {
		b.WriteString(row.Start)
		for _, s := range row.Cells {
			b.WriteString("\t")
			if s != nil {
				b.WriteString(slotLabel(*s) + " " + roomLabel(*s))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// parseDays reads a comma-separated day list.
func parseDays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := parseDay(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no days given")
	}
	return days, nil
}

func (a *App) conflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "List clashing classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			printConflicts(cmd.OutOrStdout(), snap.Conflicting(), snap.Issues)
			return nil
		},
	}
}

func printConflicts(out io.Writer, conflicting []timetable.Slot, issues []timetable.SlotError) {
	if len(conflicting) == 0 && len(issues) == 0 {
		fmt.Fprintln(out, formatStats("No conflicts"))
		return
	}
	fmt.Fprintln(out, formatHeader(fmt.Sprintf("%d pair(s) in conflict", timetable.ConflictPairs(conflicting))))
	for _, s := range conflicting {
		fmt.Fprintf(out, "\n  %s (id %s) %s %s-%s\n", formatSlot(slotLabel(s)), s.ID,
			timetable.DayShortName(s.DayOfWeek), s.StartTime, s.EndTime)
		for _, c := range s.Conflicts {
			printConflict(out, c)
		}
	}
	if len(issues) > 0 {
		fmt.Fprintln(out)
		printIssues(out, issues)
	}
}

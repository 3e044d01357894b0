package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/dateutil"
	"github.com/javiermolinar/aula/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		xlsxPath string
		icsPath  string
		weekOf   string
		weeks    int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timetable to a spreadsheet or calendar",
		Long: `Export the timetable as an Excel workbook, an iCalendar file, or both.

The calendar holds one weekly recurring event per class, starting in the
week of --week-of.

Example:
  aula export --xlsx timetable.xlsx
  aula export --ics timetable.ics --week-of 2026-09-14 --weeks 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if xlsxPath == "" && icsPath == "" {
				return fmt.Errorf("nothing to export: use --xlsx or --ics")
			}
			start, err := dateutil.ParseWeekOf(weekOf, time.Now())
			if err != nil {
				return fmt.Errorf("invalid --week-of %q: %w", weekOf, err)
			}

			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if xlsxPath != "" {
				if err := writeFile(xlsxPath, func(f *os.File) error {
					return export.WriteXLSX(f, "Weekly timetable", snap.Slots, svc.WorkingDays())
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", xlsxPath)
			}
			if icsPath != "" {
				if err := writeFile(icsPath, func(f *os.File) error {
					return export.WriteICS(f, snap.Slots, export.ICSOptions{WeekOf: start, Weeks: weeks})
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", icsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an Excel workbook to this path")
	cmd.Flags().StringVar(&icsPath, "ics", "", "Write an iCalendar file to this path")
	cmd.Flags().StringVar(&weekOf, "week-of", "", "First teaching week (YYYY-MM-DD, next-week, monday...; default this week)")
	cmd.Flags().IntVar(&weeks, "weeks", 15, "Number of weekly occurrences in the calendar")
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(resolved)
	if err != nil {
		return fmt.Errorf("creating %s: %w", resolved, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

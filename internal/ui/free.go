package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/scheduler"
	"github.com/javiermolinar/aula/internal/timetable"
)

func (a *App) freeCmd() *cobra.Command {
	var (
		req  scheduler.Request
		next bool
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Find cells where a class fits",
		Long: `List the grid cells where a class could go without clashing with the
given teacher, classroom or student groups.

Example:
  aula free --teacher 2 --room 1 --groups CS-2A --duration 90
  aula free --teacher 2 --next`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if next {
				cell, ok, err := svc.NextFree(cmd.Context(), req)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, formatWarning("No free cell this week"))
					return nil
				}
				fmt.Fprintf(out, "Next free: %s %s-%s\n",
					formatSlot(timetable.DayName(cell.Day)), cell.Start, cell.End)
				return nil
			}

			cells, err := svc.FreeCells(cmd.Context(), req)
			if err != nil {
				return err
			}
			if len(cells) == 0 {
				fmt.Fprintln(out, formatWarning("No free cell this week"))
				return nil
			}
			day := -1
			for _, c := range cells {
				if c.Day != day {
					if day >= 0 {
						fmt.Fprintln(out)
					}
					day = c.Day
					fmt.Fprint(out, formatHeader(fmt.Sprintf("%-10s", timetable.DayName(day))))
				}
				fmt.Fprintf(out, " %s", c.Start)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d free cell(s)", len(cells))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.TeacherID, "teacher", "t", "", "Teacher ID")
	cmd.Flags().StringVarP(&req.ClassroomID, "room", "r", "", "Classroom ID")
	cmd.Flags().StringSliceVarP(&req.Groups, "groups", "g", nil, "Student groups (comma-separated)")
	cmd.Flags().IntVar(&req.Duration, "duration", scheduler.DefaultDuration, "Class length in minutes")
	cmd.Flags().BoolVar(&next, "next", false, "Only show the next free cell from now")
	return cmd
}

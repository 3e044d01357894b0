package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/timetable"
)

type slotFlags struct {
	course  string
	teacher string
	room    string
	day     string
	start   string
	end     string
	groups  []string
}

func (f *slotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.course, "course", "c", "", "Course ID")
	cmd.Flags().StringVarP(&f.teacher, "teacher", "t", "", "Teacher ID")
	cmd.Flags().StringVarP(&f.room, "room", "r", "", "Classroom ID")
	cmd.Flags().StringVarP(&f.day, "day", "d", "", "Day (mon..sun or 0-6, 0 = Monday)")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Start time (HH:MM)")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "End time (HH:MM, default next grid mark)")
	cmd.Flags().StringSliceVarP(&f.groups, "groups", "g", nil, "Student groups (comma-separated)")
}

// apply overlays the flags set on cmd onto in.
func (f *slotFlags) apply(cmd *cobra.Command, in *timetable.SlotInput) error {
	changed := cmd.Flags().Changed
	if changed("course") {
		in.CourseID = f.course
	}
	if changed("teacher") {
		in.TeacherID = f.teacher
	}
	if changed("room") {
		in.ClassroomID = f.room
	}
	if changed("day") {
		day, err := parseDay(f.day)
		if err != nil {
			return err
		}
		in.DayOfWeek = day
	}
	if changed("start") {
		in.StartTime = f.start
		if !changed("end") {
			in.EndTime = timetable.NextMark(f.start)
		}
	}
	if changed("end") {
		in.EndTime = f.end
	}
	if changed("groups") {
		in.StudentGroups = f.groups
	}
	return nil
}

func (a *App) slotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "slot",
		Aliases: []string{"slots"},
		Short:   "Add, change, move or remove classes",
	}
	cmd.AddCommand(a.slotAddCmd())
	cmd.AddCommand(a.slotUpdateCmd())
	cmd.AddCommand(a.slotMoveCmd())
	cmd.AddCommand(a.slotDeleteCmd())
	return cmd
}

func (a *App) slotAddCmd() *cobra.Command {
	var flags slotFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a class",
		Long: `Schedule a class on the weekly grid.

The class is stored even when it clashes with another one; clashes are
reported so they can be resolved.

Example:
  aula slot add --course 1 --teacher 2 --room 1 --day mon --start 09:00 --groups CS-2A`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range []string{"course", "teacher", "room", "day", "start"} {
				if !cmd.Flags().Changed(name) {
					return fmt.Errorf("--%s is required", name)
				}
			}
			var in timetable.SlotInput
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}

			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			ch, err := svc.AddSlot(cmd.Context(), in)
			if err != nil {
				return err
			}
			printChange(cmd.OutOrStdout(), "Scheduled", ch)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *App) slotUpdateCmd() *cobra.Command {
	var flags slotFlags

	cmd := &cobra.Command{
		Use:   "update <slot-id>",
		Short: "Change a scheduled class",
		Long: `Change fields of a scheduled class. Fields without a flag keep their value.

Example:
  aula slot update 4 --room 2 --groups CS-2A,CS-2B`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			current, ok := findSlot(snap.Slots, args[0])
			if !ok {
				return fmt.Errorf("%w: %s", timetable.ErrNotFound, args[0])
			}
			in := current.Input()
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}

			ch, err := svc.UpdateSlot(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			printChange(cmd.OutOrStdout(), "Updated", ch)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *App) slotMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <slot-id> <day> <start>",
		Short: "Move a class to another cell",
		Long: `Move a class to another day and grid start time. The class then ends at
the next grid mark. The target cell must be free.

Example:
  aula slot move 4 tue 11:00`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			ch, err := svc.MoveSlot(cmd.Context(), args[0], day, args[2])
			if err != nil {
				if errors.Is(err, timetable.ErrCellOccupied) {
					return fmt.Errorf("cannot move to %s %s: %w", timetable.DayName(day), args[2], err)
				}
				return err
			}
			printChange(cmd.OutOrStdout(), "Moved", ch)
			return nil
		},
	}
}

func (a *App) slotDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <slot-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a class",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			ch, err := svc.DeleteSlot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted class %s\n", args[0])
			printIssues(cmd.OutOrStdout(), ch.Issues)
			return nil
		},
	}
}

func findSlot(slots []timetable.Slot, id string) (timetable.Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return timetable.Slot{}, false
}

// parseDay accepts a weekday name, its three letter form, or 0-6 with 0 = Monday.
func parseDay(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if !timetable.ValidDay(n) {
			return 0, fmt.Errorf("invalid day %q: must be 0-6", s)
		}
		return n, nil
	}
	for d, name := range timetable.Days {
		if name = strings.ToLower(name); s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid day %q", s)
}

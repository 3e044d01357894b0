package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/timetable"
)

func (a *App) viewCmd() *cobra.Command {
	var (
		role    string
		subject string
		filter  timetable.Filter
		today   bool
	)

	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"ls"},
		Short:   "List classes as seen by a role",
		Long: `List classes in week order as seen by an admin, a teacher or a student.

A teacher sees the classes they teach; a student sees the classes of their
groups. The filters narrow the list further.

Example:
  aula view
  aula view --role teacher --subject 2 --today
  aula view --group CS-2A`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := timetable.ParseRole(role)
			if err != nil {
				return err
			}
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			slots, err := svc.View(cmd.Context(), r, subject, filter)
			if err != nil {
				return err
			}
			if today {
				slots = svc.Today(slots)
			}
			printSlotList(cmd.OutOrStdout(), slots)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(timetable.RoleAdmin), "Role: admin, teacher or student")
	cmd.Flags().StringVar(&subject, "subject", "", "Teacher or student ID for the role")
	cmd.Flags().StringVar(&filter.TeacherID, "teacher", "", "Only classes of this teacher ID")
	cmd.Flags().StringVar(&filter.ClassroomID, "room", "", "Only classes in this classroom ID")
	cmd.Flags().StringVar(&filter.Group, "group", "", "Only classes of this student group")
	cmd.Flags().BoolVar(&today, "today", false, "Only today's classes")
	return cmd
}

func printSlotList(out io.Writer, slots []timetable.Slot) {
	if len(slots) == 0 {
		fmt.Fprintln(out, formatMuted("No classes"))
		return
	}

	descW := max(termWidth()-60, 20)
	day := -1
	for _, s := range slots {
		if s.DayOfWeek != day {
			if day >= 0 {
				fmt.Fprintln(out)
			}
			day = s.DayOfWeek
			fmt.Fprintln(out, formatHeader(timetable.DayName(day)))
		}
		marker := " "
		if s.HasErrors() {
			marker = formatConflict("!")
		} else if s.HasConflicts() {
			marker = formatWarning("!")
		}
		fmt.Fprintf(out, "  %s %s-%s  %-8s %-*s  %-10s %s  %s\n",
			marker, s.StartTime, s.EndTime, formatSlot(slotLabel(s)),
			descW, truncate(s.CourseName, descW), roomLabel(s), s.TeacherName,
			formatMuted("#"+s.ID))
	}
}

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show timetable figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			st, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func printStats(out io.Writer, st timetable.Stats) {
	fmt.Fprintf(out, "Courses:     %d\n", st.TotalCourses)
	fmt.Fprintf(out, "Teachers:    %d\n", st.TotalTeachers)
	fmt.Fprintf(out, "Classrooms:  %d\n", st.TotalClassrooms)
	fmt.Fprintf(out, "Students:    %d\n", st.TotalStudents)
	fmt.Fprintf(out, "Utilization: %s\n", formatStats(fmt.Sprintf("%d%%", st.UtilizationRate)))
	conflicts := fmt.Sprintf("%d", st.ConflictCount)
	if st.ConflictCount > 0 {
		conflicts = formatConflict(conflicts)
	}
	fmt.Fprintf(out, "Conflicts:   %s\n", conflicts)
}

package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/aula/internal/timetable"
)

// registryCmds returns the course, teacher, classroom and student commands.
func (a *App) registryCmds() []*cobra.Command {
	return []*cobra.Command{
		a.courseCmd(),
		a.teacherCmd(),
		a.classroomCmd(),
		a.studentCmd(),
	}
}

// entityCmd builds "<noun> add|list|remove" around the given subcommand bodies.
func (a *App) entityCmd(noun string, add *cobra.Command, list func(io.Writer, *timetable.References), remove func(context.Context, string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:     noun,
		Aliases: []string{noun + "s"},
		Short:   fmt.Sprintf("Manage %ss", noun),
	}
	cmd.AddCommand(add)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			refs, err := svc.References(cmd.Context())
			if err != nil {
				return err
			}
			list(cmd.OutOrStdout(), refs)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Remove a %s not used by any class", noun),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.ensureService(); err != nil {
				return err
			}
			if err := remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", noun, args[0])
			return nil
		},
	})
	return cmd
}

// newEntityID returns id, or a short random one when id is empty.
func newEntityID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func (a *App) courseCmd() *cobra.Command {
	var c timetable.Course
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a course",
		Long: `Add a course, or replace the course with the same --id.

Example:
  aula course add "Data Structures" --code CS201 --credits 4 --teacher 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			c.ID = newEntityID(c.ID)
			c.Name = args[0]
			if err := svc.SaveCourse(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved course %s (id %s)\n", formatSlot(c.Name), c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&c.ID, "id", "", "Course ID (default random)")
	add.Flags().StringVar(&c.Code, "code", "", "Course code, e.g. CS201")
	add.Flags().IntVar(&c.Credits, "credits", 3, "Credit hours")
	add.Flags().StringVar(&c.TeacherID, "teacher", "", "Default teacher ID")
	add.Flags().StringVar(&c.Color, "color", "", "Display color (hex)")

	return a.entityCmd("course", add,
		func(out io.Writer, refs *timetable.References) {
			fmt.Fprintln(out, formatHeader(fmt.Sprintf("%-10s %-8s %-32s %-7s %s", "ID", "CODE", "NAME", "CREDITS", "TEACHER")))
			for _, c := range refs.Courses {
				fmt.Fprintf(out, "%-10s %-8s %-32s %-7d %s\n", c.ID, c.Code, truncate(c.Name, 32), c.Credits, c.TeacherID)
			}
		},
		func(ctx context.Context, id string) error { return a.svc.DeleteCourse(ctx, id) },
	)
}

func (a *App) teacherCmd() *cobra.Command {
	var t timetable.Teacher
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			t.ID = newEntityID(t.ID)
			t.Name = args[0]
			if err := svc.SaveTeacher(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved teacher %s (id %s)\n", t.Name, t.ID)
			return nil
		},
	}
	add.Flags().StringVar(&t.ID, "id", "", "Teacher ID (default random)")
	add.Flags().StringVar(&t.Email, "email", "", "Email address")
	add.Flags().StringVar(&t.Department, "department", "", "Department")
	add.Flags().StringVar(&t.Specialization, "specialization", "", "Specialization")

	return a.entityCmd("teacher", add,
		func(out io.Writer, refs *timetable.References) {
			fmt.Fprintln(out, formatHeader(fmt.Sprintf("%-10s %-28s %s", "ID", "NAME", "DEPARTMENT")))
			for _, t := range refs.Teachers {
				fmt.Fprintf(out, "%-10s %-28s %s\n", t.ID, truncate(t.Name, 28), t.Department)
			}
		},
		func(ctx context.Context, id string) error { return a.svc.DeleteTeacher(ctx, id) },
	)
}

func (a *App) classroomCmd() *cobra.Command {
	var (
		c    timetable.Classroom
		kind string
	)
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a classroom",
		Long: `Add a classroom, or replace the classroom with the same --id.

Example:
  aula classroom add "Room A101" --capacity 60 --type lecture --building A`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Type = timetable.ClassroomType(strings.ToLower(kind))
			if !c.Type.Valid() {
				return fmt.Errorf("invalid classroom type %q: use lecture, lab or seminar", kind)
			}
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			c.ID = newEntityID(c.ID)
			c.Name = args[0]
			if err := svc.SaveClassroom(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved classroom %s (id %s)\n", c.Name, c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&c.ID, "id", "", "Classroom ID (default random)")
	add.Flags().IntVar(&c.Capacity, "capacity", 30, "Seats")
	add.Flags().StringVar(&kind, "type", string(timetable.ClassroomLecture), "Type: lecture, lab or seminar")
	add.Flags().StringVar(&c.Building, "building", "", "Building")
	add.Flags().IntVar(&c.Floor, "floor", 0, "Floor")

	return a.entityCmd("classroom", add,
		func(out io.Writer, refs *timetable.References) {
			fmt.Fprintln(out, formatHeader(fmt.Sprintf("%-10s %-24s %-8s %s", "ID", "NAME", "TYPE", "CAPACITY")))
			for _, c := range refs.Classrooms {
				fmt.Fprintf(out, "%-10s %-24s %-8s %d\n", c.ID, truncate(c.Name, 24), c.Type, c.Capacity)
			}
		},
		func(ctx context.Context, id string) error { return a.svc.DeleteClassroom(ctx, id) },
	)
}

func (a *App) studentCmd() *cobra.Command {
	var st timetable.Student
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or replace a student",
		Long: `Add a student, or replace the student with the same --id.

Example:
  aula student add "Ana Ruiz" --groups CS-2A --semester 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.ensureService()
			if err != nil {
				return err
			}
			st.ID = newEntityID(st.ID)
			st.Name = args[0]
			if err := svc.SaveStudent(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved student %s (id %s)\n", st.Name, st.ID)
			return nil
		},
	}
	add.Flags().StringVar(&st.ID, "id", "", "Student ID (default random)")
	add.Flags().StringVar(&st.Email, "email", "", "Email address")
	add.Flags().StringVar(&st.StudentNo, "number", "", "Student number")
	add.Flags().IntVar(&st.Semester, "semester", 1, "Semester")
	add.Flags().StringVar(&st.Department, "department", "", "Department")
	add.Flags().StringSliceVar(&st.Groups, "groups", nil, "Student groups (comma-separated)")

	return a.entityCmd("student", add,
		func(out io.Writer, refs *timetable.References) {
			fmt.Fprintln(out, formatHeader(fmt.Sprintf("%-10s %-28s %s", "ID", "NAME", "GROUPS")))
			for _, st := range refs.Students {
				fmt.Fprintf(out, "%-10s %-28s %s\n", st.ID, truncate(st.Name, 28), strings.Join(st.Groups, ", "))
			}
		},
		func(ctx context.Context, id string) error { return a.svc.DeleteStudent(ctx, id) },
	)
}

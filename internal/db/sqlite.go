// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/aula/internal/timetable"
)

// SQLite implements timetable.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ timetable.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ListSlots returns every slot in collection order.
func (s *SQLite) ListSlots(ctx context.Context) ([]timetable.Slot, error) {
	query := `
		SELECT id, course_id, course_name, course_code, teacher_id, teacher_name,
		       classroom_id, classroom_name, day_of_week, start_time, end_time,
		       duration, student_groups
		FROM slots
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var slots []timetable.Slot
	for rows.Next() {
		var (
			sl     timetable.Slot
			groups string
		)
		err := rows.Scan(
			&sl.ID,
			&sl.CourseID,
			&sl.CourseName,
			&sl.CourseCode,
			&sl.TeacherID,
			&sl.TeacherName,
			&sl.ClassroomID,
			&sl.ClassroomName,
			&sl.DayOfWeek,
			&sl.StartTime,
			&sl.EndTime,
			&sl.Duration,
			&groups,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		if sl.StudentGroups, err = decodeList(groups); err != nil {
			return nil, fmt.Errorf("decoding groups of slot %s: %w", sl.ID, err)
		}
		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	return slots, nil
}

// ReplaceSlots atomically replaces the slot collection.
// Either every slot is written or the previous collection is kept.
func (s *SQLite) ReplaceSlots(ctx context.Context, slots []timetable.Slot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeSlots(ctx, tx, slots); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ReplaceAll atomically replaces every reference entity and the slot collection.
func (s *SQLite) ReplaceAll(ctx context.Context, refs *timetable.References, slots []timetable.Slot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"courses", "teachers", "classrooms", "students"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	for _, c := range refs.Courses {
		if err := saveCourse(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, t := range refs.Teachers {
		if err := saveTeacher(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, c := range refs.Classrooms {
		if err := saveClassroom(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, st := range refs.Students {
		if err := saveStudent(ctx, tx, st); err != nil {
			return err
		}
	}
	if err := writeSlots(ctx, tx, slots); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func writeSlots(ctx context.Context, q queryer, slots []timetable.Slot) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}

	query := `
		INSERT INTO slots (
			id, position, course_id, course_name, course_code, teacher_id, teacher_name,
			classroom_id, classroom_name, day_of_week, start_time, end_time,
			duration, student_groups
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, sl := range slots {
		groups, err := encodeList(sl.StudentGroups)
		if err != nil {
			return fmt.Errorf("encoding groups of slot %s: %w", sl.ID, err)
		}
		_, err = q.ExecContext(ctx, query,
			sl.ID,
			i,
			sl.CourseID,
			sl.CourseName,
			sl.CourseCode,
			sl.TeacherID,
			sl.TeacherName,
			sl.ClassroomID,
			sl.ClassroomName,
			sl.DayOfWeek,
			sl.StartTime,
			sl.EndTime,
			sl.Duration,
			groups,
		)
		if err != nil {
			return fmt.Errorf("inserting slot %s: %w", sl.ID, err)
		}
	}
	return nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/javiermolinar/aula/internal/timetable"
)

// References loads all reference entities.
func (s *SQLite) References(ctx context.Context) (*timetable.References, error) {
	refs := &timetable.References{}
	var err error

	if refs.Courses, err = s.listCourses(ctx); err != nil {
		return nil, err
	}
	if refs.Teachers, err = s.listTeachers(ctx); err != nil {
		return nil, err
	}
	if refs.Classrooms, err = s.listClassrooms(ctx); err != nil {
		return nil, err
	}
	if refs.Students, err = s.listStudents(ctx); err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *SQLite) listCourses(ctx context.Context) ([]timetable.Course, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, code, credits, teacher_id, color FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []timetable.Course
	for rows.Next() {
		var c timetable.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Credits, &c.TeacherID, &c.Color); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return out, nil
}

func (s *SQLite) listTeachers(ctx context.Context) ([]timetable.Teacher, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, department, specialization FROM teachers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying teachers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []timetable.Teacher
	for rows.Next() {
		var t timetable.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Department, &t.Specialization); err != nil {
			return nil, fmt.Errorf("scanning teacher: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teachers: %w", err)
	}
	return out, nil
}

func (s *SQLite) listClassrooms(ctx context.Context) ([]timetable.Classroom, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, capacity, type, building, floor FROM classrooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying classrooms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []timetable.Classroom
	for rows.Next() {
		var c timetable.Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.Capacity, &c.Type, &c.Building, &c.Floor); err != nil {
			return nil, fmt.Errorf("scanning classroom: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating classrooms: %w", err)
	}
	return out, nil
}

func (s *SQLite) listStudents(ctx context.Context) ([]timetable.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, student_no, semester, department, group_list
		FROM students ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []timetable.Student
	for rows.Next() {
		var (
			st     timetable.Student
			groups string
		)
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.StudentNo, &st.Semester, &st.Department, &groups); err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		if st.Groups, err = decodeList(groups); err != nil {
			return nil, fmt.Errorf("decoding groups of student %s: %w", st.ID, err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}
	return out, nil
}

// SaveCourse inserts or updates a course.
func (s *SQLite) SaveCourse(ctx context.Context, c timetable.Course) error {
	return saveCourse(ctx, s.db, c)
}

// SaveTeacher inserts or updates a teacher.
func (s *SQLite) SaveTeacher(ctx context.Context, t timetable.Teacher) error {
	return saveTeacher(ctx, s.db, t)
}

// SaveClassroom inserts or updates a classroom.
func (s *SQLite) SaveClassroom(ctx context.Context, c timetable.Classroom) error {
	return saveClassroom(ctx, s.db, c)
}

// SaveStudent inserts or updates a student.
func (s *SQLite) SaveStudent(ctx context.Context, st timetable.Student) error {
	return saveStudent(ctx, s.db, st)
}

func saveCourse(ctx context.Context, q queryer, c timetable.Course) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO courses (id, name, code, credits, teacher_id, color)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, code = excluded.code, credits = excluded.credits,
			teacher_id = excluded.teacher_id, color = excluded.color
	`, c.ID, c.Name, c.Code, c.Credits, c.TeacherID, c.Color)
	if err != nil {
		return fmt.Errorf("saving course %s: %w", c.ID, err)
	}
	return nil
}

func saveTeacher(ctx context.Context, q queryer, t timetable.Teacher) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO teachers (id, name, email, department, specialization)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, email = excluded.email,
			department = excluded.department, specialization = excluded.specialization
	`, t.ID, t.Name, t.Email, t.Department, t.Specialization)
	if err != nil {
		return fmt.Errorf("saving teacher %s: %w", t.ID, err)
	}
	return nil
}

func saveClassroom(ctx context.Context, q queryer, c timetable.Classroom) error {
	typ := c.Type
	if typ == "" {
		typ = timetable.ClassroomLecture
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO classrooms (id, name, capacity, type, building, floor)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, capacity = excluded.capacity, type = excluded.type,
			building = excluded.building, floor = excluded.floor
	`, c.ID, c.Name, c.Capacity, typ, c.Building, c.Floor)
	if err != nil {
		return fmt.Errorf("saving classroom %s: %w", c.ID, err)
	}
	return nil
}

func saveStudent(ctx context.Context, q queryer, st timetable.Student) error {
	groups, err := encodeList(st.Groups)
	if err != nil {
		return fmt.Errorf("encoding groups of student %s: %w", st.ID, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO students (id, name, email, student_no, semester, department, group_list)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, email = excluded.email, student_no = excluded.student_no,
			semester = excluded.semester, department = excluded.department,
			group_list = excluded.group_list
	`, st.ID, st.Name, st.Email, st.StudentNo, st.Semester, st.Department, groups)
	if err != nil {
		return fmt.Errorf("saving student %s: %w", st.ID, err)
	}
	return nil
}

// DeleteCourse removes a course unless a slot references it.
func (s *SQLite) DeleteCourse(ctx context.Context, id string) error {
	return s.deleteReferenced(ctx, "courses", "course_id", id)
}

// DeleteTeacher removes a teacher unless a slot references it.
func (s *SQLite) DeleteTeacher(ctx context.Context, id string) error {
	return s.deleteReferenced(ctx, "teachers", "teacher_id", id)
}

// DeleteClassroom removes a classroom unless a slot references it.
func (s *SQLite) DeleteClassroom(ctx context.Context, id string) error {
	return s.deleteReferenced(ctx, "classrooms", "classroom_id", id)
}

// DeleteStudent removes a student.
func (s *SQLite) DeleteStudent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: student %s", timetable.ErrEntityNotFound, id)
	}
	return nil
}

// deleteReferenced deletes id from table inside a transaction after checking
// that no slot points at it through column.
func (s *SQLite) deleteReferenced(ctx context.Context, table, column, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var uses int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM slots WHERE "+column+" = ?", id).Scan(&uses); err != nil {
		return fmt.Errorf("checking %s usage: %w", table, err)
	}
	if uses > 0 {
		return fmt.Errorf("%w: %s %s has %d slots", timetable.ErrReferenceInUse, table, id, uses)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s %s", timetable.ErrEntityNotFound, table, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

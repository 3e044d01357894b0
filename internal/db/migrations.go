package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS courses (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			code       TEXT NOT NULL DEFAULT '',
			credits    INTEGER NOT NULL DEFAULT 0,
			teacher_id TEXT NOT NULL DEFAULT '',
			color      TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS teachers (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			email          TEXT NOT NULL DEFAULT '',
			department     TEXT NOT NULL DEFAULT '',
			specialization TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS classrooms (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			capacity INTEGER NOT NULL DEFAULT 0,
			type     TEXT NOT NULL DEFAULT 'lecture' CHECK(type IN ('lecture', 'lab', 'seminar')),
			building TEXT NOT NULL DEFAULT '',
			floor    INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS students (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL DEFAULT '',
			student_no TEXT NOT NULL DEFAULT '',
			semester   INTEGER NOT NULL DEFAULT 0,
			department TEXT NOT NULL DEFAULT '',
			group_list TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS slots (
			id             TEXT PRIMARY KEY,
			position       INTEGER NOT NULL,
			course_id      TEXT NOT NULL,
			course_name    TEXT NOT NULL DEFAULT '',
			course_code    TEXT NOT NULL DEFAULT '',
			teacher_id     TEXT NOT NULL,
			teacher_name   TEXT NOT NULL DEFAULT '',
			classroom_id   TEXT NOT NULL,
			classroom_name TEXT NOT NULL DEFAULT '',
			day_of_week    INTEGER NOT NULL CHECK(day_of_week BETWEEN 0 AND 6),
			start_time     TEXT NOT NULL,
			end_time       TEXT NOT NULL,
			duration       INTEGER NOT NULL DEFAULT 0,
			student_groups TEXT NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_slots_position ON slots(position);
		CREATE INDEX IF NOT EXISTS idx_slots_teacher ON slots(teacher_id);
		CREATE INDEX IF NOT EXISTS idx_slots_classroom ON slots(classroom_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}

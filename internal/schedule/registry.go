package schedule

import (
	"context"

	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/timetable"
)

// References returns the stored reference entities.
func (s *Service) References(ctx context.Context) (*timetable.References, error) {
	return s.repo.References(ctx)
}

// SaveCourse stores c. Slots keep their denormalized names until edited.
func (s *Service) SaveCourse(ctx context.Context, c timetable.Course) error {
	return s.registryOp("save_course", c.ID, func() error { return s.repo.SaveCourse(ctx, c) })
}

// SaveTeacher stores t.
func (s *Service) SaveTeacher(ctx context.Context, t timetable.Teacher) error {
	return s.registryOp("save_teacher", t.ID, func() error { return s.repo.SaveTeacher(ctx, t) })
}

// SaveClassroom stores c.
func (s *Service) SaveClassroom(ctx context.Context, c timetable.Classroom) error {
	return s.registryOp("save_classroom", c.ID, func() error { return s.repo.SaveClassroom(ctx, c) })
}

// SaveStudent stores st.
func (s *Service) SaveStudent(ctx context.Context, st timetable.Student) error {
	return s.registryOp("save_student", st.ID, func() error { return s.repo.SaveStudent(ctx, st) })
}

// DeleteCourse removes course id unless a slot uses it.
func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	return s.registryOp("delete_course", id, func() error { return s.repo.DeleteCourse(ctx, id) })
}

// DeleteTeacher removes teacher id unless a slot uses it.
func (s *Service) DeleteTeacher(ctx context.Context, id string) error {
	return s.registryOp("delete_teacher", id, func() error { return s.repo.DeleteTeacher(ctx, id) })
}

// DeleteClassroom removes classroom id unless a slot uses it.
func (s *Service) DeleteClassroom(ctx context.Context, id string) error {
	return s.registryOp("delete_classroom", id, func() error { return s.repo.DeleteClassroom(ctx, id) })
}

// DeleteStudent removes student id.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	return s.registryOp("delete_student", id, func() error { return s.repo.DeleteStudent(ctx, id) })
}

// registryOp runs fn under the mutation lock.
func (s *Service) registryOp(op, id string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		s.logger.Warn("registry change rejected", zap.String("op", op), zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("registry changed", zap.String("op", op), zap.String("id", id))
	return nil
}

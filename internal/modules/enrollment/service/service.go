package enrollment

import (
	"context"
	"errors"
	"fmt"

	"rosalia.com/connect/internal/entity"
	courseRepo "rosalia.com/connect/internal/modules/course/repository"
	"rosalia.com/connect/internal/modules/enrollment/dto"
	"rosalia.com/connect/internal/modules/enrollment/repository"
	"rosalia.com/connect/pkg/apperror"
	"rosalia.com/connect/pkg/token"

	"gorm.io/gorm"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, actor *token.Claims, req dto.EnrollRequest) (uint, error)
	MyCourses(ctx context.Context, actor *token.Claims) (interface{}, error)
	CourseStudents(ctx context.Context, courseID uint) ([]dto.RosterEntry, error)
	Cancel(ctx context.Context, actor *token.Claims, enrollmentID uint) error
}

type enrollmentService struct {
	repo    repository.EnrollmentRepository
	courses courseRepo.CourseRepository
}

func NewEnrollmentService(repo repository.EnrollmentRepository, courses courseRepo.CourseRepository) EnrollmentService {
	return &enrollmentService{repo: repo, courses: courses}
}

// Enroll admits a student into an active course. Duplicate detection rides
// the unique (student_id, course_id) index rather than a pre-check, so
// concurrent attempts cannot both succeed; a cancelled enrollment occupies
// the same slot, which makes cancellation terminal.
func (s *enrollmentService) Enroll(ctx context.Context, actor *token.Claims, req dto.EnrollRequest) (uint, error) {
	if _, err := s.courses.FindActiveByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("course not found or inactive: %w", apperror.ErrNotFound)
		}
		return 0, err
	}

	enrollment := &entity.Enrollment{
		StudentID: actor.UserID,
		CourseID:  req.CourseID,
	}

	if err := s.repo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("already enrolled in this course: %w", apperror.ErrConflict)
		}
		return 0, err
	}

	return enrollment.ID, nil
}

// MyCourses answers with a role-dependent shape: students get their active
// enrollments, instructors their own courses with headcounts, anyone else
// the full active catalog.
func (s *enrollmentService) MyCourses(ctx context.Context, actor *token.Claims) (interface{}, error) {
	switch actor.Role {
	case entity.RoleStudent:
		return s.repo.FindCoursesByStudent(ctx, actor.UserID)
	case entity.RoleInstructor:
		return s.repo.FindCoursesByInstructor(ctx, actor.UserID)
	default:
		return s.courses.FindAllActive(ctx)
	}
}

func (s *enrollmentService) CourseStudents(ctx context.Context, courseID uint) ([]dto.RosterEntry, error) {
	return s.repo.FindStudentsByCourse(ctx, courseID)
}

func (s *enrollmentService) Cancel(ctx context.Context, actor *token.Claims, enrollmentID uint) error {
	enrollment, err := s.repo.FindByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("enrollment not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if enrollment.StudentID != actor.UserID && actor.Role != entity.RoleAdmin {
		return fmt.Errorf("access denied: %w", apperror.ErrForbidden)
	}

	return s.repo.SetStatus(ctx, enrollmentID, entity.EnrollmentCancelled)
}

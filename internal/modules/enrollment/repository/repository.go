package repository

import (
	"context"

	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/modules/enrollment/dto"

	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	FindByID(ctx context.Context, id uint) (*entity.Enrollment, error)
	SetStatus(ctx context.Context, id uint, status string) error
	FindCoursesByStudent(ctx context.Context, studentID uint) ([]dto.EnrolledCourse, error)
	FindCoursesByInstructor(ctx context.Context, instructorID uint) ([]dto.TaughtCourse, error)
	FindStudentsByCourse(ctx context.Context, courseID uint) ([]dto.RosterEntry, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) FindByID(ctx context.Context, id uint) (*entity.Enrollment, error) {
	var enrollment entity.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) SetStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Enrollment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *enrollmentRepository) FindCoursesByStudent(ctx context.Context, studentID uint) ([]dto.EnrolledCourse, error) {
	var courses []dto.EnrolledCourse
	if err := r.db.WithContext(ctx).
		Table("enrollments e").
		Select("c.id, c.title, c.description, c.instructor_id, c.status, c.created_at, u.first_name || ' ' || u.last_name AS instructor_name, e.enrolled_at").
		Joins("JOIN courses c ON e.course_id = c.id").
		Joins("JOIN users u ON c.instructor_id = u.id").
		Where("e.student_id = ? AND e.status = ?", studentID, entity.EnrollmentActive).
		Order("e.enrolled_at").
		Scan(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *enrollmentRepository) FindCoursesByInstructor(ctx context.Context, instructorID uint) ([]dto.TaughtCourse, error) {
	var courses []dto.TaughtCourse
	if err := r.db.WithContext(ctx).
		Table("courses c").
		Select("c.id, c.title, c.description, c.instructor_id, c.status, c.created_at, COUNT(e.id) AS enrolled_students").
		Joins("LEFT JOIN enrollments e ON c.id = e.course_id AND e.status = ?", entity.EnrollmentActive).
		Where("c.instructor_id = ? AND c.status = ?", instructorID, entity.CourseActive).
		Group("c.id").
		Order("c.id").
		Scan(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *enrollmentRepository) FindStudentsByCourse(ctx context.Context, courseID uint) ([]dto.RosterEntry, error) {
	var students []dto.RosterEntry
	if err := r.db.WithContext(ctx).
		Table("enrollments e").
		Select("u.id, u.email, u.first_name, u.last_name, e.enrolled_at").
		Joins("JOIN users u ON e.student_id = u.id").
		Where("e.course_id = ? AND e.status = ?", courseID, entity.EnrollmentActive).
		Order("e.enrolled_at").
		Scan(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

package repository

import (
	"context"

	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/modules/course/dto"

	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id uint) (*entity.Course, error)
	FindActiveByID(ctx context.Context, id uint) (*entity.Course, error)
	FindAllActive(ctx context.Context) ([]dto.CourseResponse, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) error
	SetStatus(ctx context.Context, id uint, status string) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (*entity.Course, error) {
	var course entity.Course
	if err := r.db.WithContext(ctx).
		Preload("Instructor").
		First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindActiveByID(ctx context.Context, id uint) (*entity.Course, error) {
	var course entity.Course
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, entity.CourseActive).
		First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAllActive(ctx context.Context) ([]dto.CourseResponse, error) {
	var courses []dto.CourseResponse
	if err := r.db.WithContext(ctx).
		Table("courses c").
		Select("c.id, c.title, c.description, c.instructor_id, c.status, c.created_at, u.first_name || ' ' || u.last_name AS instructor_name").
		Joins("JOIN users u ON c.instructor_id = u.id").
		Where("c.status = ?", entity.CourseActive).
		Order("c.id").
		Scan(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Course{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *courseRepository) SetStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Course{}).
		Where("id = ?", id).
		Update("status", status).Error
}

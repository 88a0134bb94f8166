package repository

import (
	"context"

	"rosalia.com/connect/internal/entity"

	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	FindByID(ctx context.Context, id uint) (*entity.Assignment, error)
	FindByCourse(ctx context.Context, courseID uint) ([]*entity.Assignment, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// FindByID preloads the parent course so callers can check instructor
// ownership without a second round-trip.
func (r *assignmentRepository) FindByID(ctx context.Context, id uint) (*entity.Assignment, error) {
	var assignment entity.Assignment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindByCourse(ctx context.Context, courseID uint) ([]*entity.Assignment, error) {
	var assignments []*entity.Assignment
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Assignment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Assignment{}, "id = ?", id).Error
}

package assignment

import (
	"context"
	"errors"
	"fmt"

	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/modules/assignment/dto"
	"rosalia.com/connect/internal/modules/assignment/repository"
	courseRepo "rosalia.com/connect/internal/modules/course/repository"
	"rosalia.com/connect/pkg/apperror"
	"rosalia.com/connect/pkg/token"

	"gorm.io/gorm"
)

const defaultPoints = 100

type AssignmentService interface {
	ListByCourse(ctx context.Context, courseID uint) ([]*entity.Assignment, error)
	Get(ctx context.Context, id uint) (*entity.Assignment, error)
	Create(ctx context.Context, actor *token.Claims, req dto.CreateAssignmentRequest) (uint, error)
	Update(ctx context.Context, actor *token.Claims, id uint, req dto.UpdateAssignmentRequest) error
	Delete(ctx context.Context, actor *token.Claims, id uint) error
}

type assignmentService struct {
	repo    repository.AssignmentRepository
	courses courseRepo.CourseRepository
}

func NewAssignmentService(repo repository.AssignmentRepository, courses courseRepo.CourseRepository) AssignmentService {
	return &assignmentService{repo: repo, courses: courses}
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseID uint) ([]*entity.Assignment, error) {
	return s.repo.FindByCourse(ctx, courseID)
}

func (s *assignmentService) Get(ctx context.Context, id uint) (*entity.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assignment not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return assignment, nil
}

// Create verifies the parent course exists, then that the caller owns it (or
// is admin), before inserting. Points default to 100 when unset or zero.
func (s *assignmentService) Create(ctx context.Context, actor *token.Claims, req dto.CreateAssignmentRequest) (uint, error) {
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("course not found: %w", apperror.ErrNotFound)
		}
		return 0, err
	}

	if course.InstructorID != actor.UserID && actor.Role != entity.RoleAdmin {
		return 0, fmt.Errorf("you do not have permission to create assignments in this course: %w", apperror.ErrForbidden)
	}

	points := req.Points
	if points == 0 {
		points = defaultPoints
	}

	assignment := &entity.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		Points:      points,
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		return 0, err
	}

	return assignment.ID, nil
}

func (s *assignmentService) Update(ctx context.Context, actor *token.Claims, id uint, req dto.UpdateAssignmentRequest) error {
	assignment, err := s.findOwned(ctx, actor, id, "edit")
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.DueAt != nil {
		fields["due_at"] = *req.DueAt
	}
	// A zero points value is treated as absent and the stored value kept.
	if req.Points != 0 {
		fields["points"] = req.Points
	}

	return s.repo.Updates(ctx, assignment.ID, fields)
}

func (s *assignmentService) Delete(ctx context.Context, actor *token.Claims, id uint) error {
	assignment, err := s.findOwned(ctx, actor, id, "delete")
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, assignment.ID)
}

// findOwned resolves the assignment and enforces existence before ownership:
// a missing assignment is 404 regardless of caller, and only the owning
// course's instructor or an admin proceeds to the mutation.
func (s *assignmentService) findOwned(ctx context.Context, actor *token.Claims, id uint, action string) (*entity.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assignment not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if assignment.Course.InstructorID != actor.UserID && actor.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("you do not have permission to %s this assignment: %w", action, apperror.ErrForbidden)
	}

	return assignment, nil
}

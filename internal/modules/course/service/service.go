package course

import (
	"context"
	"errors"
	"fmt"

	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/modules/course/dto"
	"rosalia.com/connect/internal/modules/course/repository"
	"rosalia.com/connect/pkg/apperror"
	"rosalia.com/connect/pkg/token"

	"gorm.io/gorm"
)

type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (*dto.CourseResponse, error)
	Create(ctx context.Context, actor *token.Claims, req dto.CreateCourseRequest) (uint, error)
	Update(ctx context.Context, actor *token.Claims, id uint, req dto.UpdateCourseRequest) error
	SoftDelete(ctx context.Context, id uint) error
}

type courseService struct {
	repo repository.CourseRepository
}

func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	return s.repo.FindAllActive(ctx)
}

func (s *courseService) Get(ctx context.Context, id uint) (*dto.CourseResponse, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	resp := buildCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Create(ctx context.Context, actor *token.Claims, req dto.CreateCourseRequest) (uint, error) {
	course := &entity.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: actor.UserID,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return 0, err
	}

	return course.ID, nil
}

// Update enforces existence before ownership before the write: a missing
// course is 404 even for strangers, and a non-owner never reaches the
// UPDATE. Only fields present in the request are merged.
func (s *courseService) Update(ctx context.Context, actor *token.Claims, id uint, req dto.UpdateCourseRequest) error {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("course not found: %w", apperror.ErrNotFound)
		}
		return err
	}

	if course.InstructorID != actor.UserID && actor.Role != entity.RoleAdmin {
		return fmt.Errorf("you do not have permission to edit this course: %w", apperror.ErrForbidden)
	}

	fields := map[string]interface{}{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}

	return s.repo.Updates(ctx, id, fields)
}

// SoftDelete flips status to inactive without checking existence first; the
// route succeeds even for ids that were never created.
func (s *courseService) SoftDelete(ctx context.Context, id uint) error {
	return s.repo.SetStatus(ctx, id, entity.CourseInactive)
}

func buildCourseResponse(course *entity.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:             course.ID,
		Title:          course.Title,
		Description:    course.Description,
		InstructorID:   course.InstructorID,
		InstructorName: course.Instructor.FirstName + " " + course.Instructor.LastName,
		Status:         course.Status,
		CreatedAt:      course.CreatedAt,
	}
}

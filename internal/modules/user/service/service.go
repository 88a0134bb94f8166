package user

import (
	"context"
	"errors"
	"fmt"

	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/modules/user/dto"
	"rosalia.com/connect/internal/modules/user/repository"
	"rosalia.com/connect/pkg/apperror"
	"rosalia.com/connect/pkg/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (uint, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	tokens *token.Service
}

func NewAuthService(repo repository.UserRepository, tokens *token.Service) AuthService {
	return &authService{repo: repo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (uint, error) {
	role := req.Role
	if role == "" {
		role = entity.RoleStudent
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, fmt.Errorf("email already registered: %w", apperror.ErrConflict)
		}
		return 0, err
	}

	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}

	signed, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{Token: signed, User: user}, nil
}

type UserService interface {
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, actor *token.Claims, id uint) (*entity.User, error)
	Update(ctx context.Context, actor *token.Claims, id uint, req dto.UpdateUserRequest) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context) ([]*entity.User, error) {
	return s.repo.FindAll(ctx)
}

// Get allows the user themselves plus admins and instructors. The access
// check runs before the lookup, so a stranger's probe for a missing id gets
// 403 rather than 404.
func (s *userService) Get(ctx context.Context, actor *token.Claims, id uint) (*entity.User, error) {
	if actor.UserID != id && actor.Role != entity.RoleAdmin && actor.Role != entity.RoleInstructor {
		return nil, fmt.Errorf("access denied: %w", apperror.ErrForbidden)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, actor *token.Claims, id uint, req dto.UpdateUserRequest) error {
	if actor.UserID != id {
		return fmt.Errorf("access denied: %w", apperror.ErrForbidden)
	}

	return s.repo.UpdateName(ctx, id, req.FirstName, req.LastName)
}

package user

import (
	"context"
	"testing"
	"time"

	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/modules/user/dto"
	"rosalia.com/connect/pkg/apperror"
	"rosalia.com/connect/pkg/token"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users  map[uint]*entity.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uint]*entity.User{}, nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *stubUserRepo) UpdateName(_ context.Context, id uint, firstName, lastName string) error {
	user, ok := r.users[id]
	if !ok {
		return nil
	}
	user.FirstName = firstName
	user.LastName = lastName
	return nil
}

func claimsFor(id uint, role string) *token.Claims {
	return &token.Claims{UserID: id, Email: "actor@example.com", Role: role}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults role to student", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := NewAuthService(repo, token.New("testsecret", time.Hour))

		id, err := svc.Register(ctx, dto.RegisterRequest{
			Email: "s@example.com", Password: "pw", FirstName: "Sol", LastName: "Vega",
		})
		require.NoError(t, err)
		require.Equal(t, entity.RoleStudent, repo.users[id].Role)
	})

	t.Run("keeps the requested role", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := NewAuthService(repo, token.New("testsecret", time.Hour))

		id, err := svc.Register(ctx, dto.RegisterRequest{
			Email: "i@example.com", Password: "pw", FirstName: "Ivo", LastName: "Lema", Role: entity.RoleInstructor,
		})
		require.NoError(t, err)
		require.Equal(t, entity.RoleInstructor, repo.users[id].Role)
	})

	t.Run("hashes the password", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := NewAuthService(repo, token.New("testsecret", time.Hour))

		id, err := svc.Register(ctx, dto.RegisterRequest{
			Email: "h@example.com", Password: "pw", FirstName: "A", LastName: "B",
		})
		require.NoError(t, err)
		require.NotEqual(t, "pw", repo.users[id].PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[id].PasswordHash), []byte("pw")))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := NewAuthService(repo, token.New("testsecret", time.Hour))

		req := dto.RegisterRequest{Email: "dup@example.com", Password: "pw", FirstName: "A", LastName: "B"}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		require.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := token.New("testsecret", time.Hour)

	register := func(t *testing.T) (*stubUserRepo, AuthService, uint) {
		repo := newStubUserRepo()
		svc := NewAuthService(repo, tokens)
		id, err := svc.Register(ctx, dto.RegisterRequest{
			Email: "ana@example.com", Password: "hunter2", FirstName: "Ana", LastName: "Ruiz", Role: entity.RoleInstructor,
		})
		require.NoError(t, err)
		return repo, svc, id
	}

	t.Run("issues a token carrying the identity claims", func(t *testing.T) {
		_, svc, id := register(t)

		auth, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter2"})
		require.NoError(t, err)
		require.Equal(t, "ana@example.com", auth.User.Email)
		require.Empty(t, auth.User.PasswordHash)

		claims, err := tokens.Verify(auth.Token)
		require.NoError(t, err)
		require.Equal(t, id, claims.UserID)
		require.Equal(t, "ana@example.com", claims.Email)
		require.Equal(t, entity.RoleInstructor, claims.Role)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, svc, _ := register(t)

		_, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown email is unauthorized, not 404", func(t *testing.T) {
		_, svc, _ := register(t)

		_, err := svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "hunter2"})
		require.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestUserGet(t *testing.T) {
	ctx := context.Background()
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	target := &entity.User{Email: "t@example.com", FirstName: "T", LastName: "U"}
	require.NoError(t, repo.Create(ctx, target))

	t.Run("self access allowed", func(t *testing.T) {
		found, err := svc.Get(ctx, claimsFor(target.ID, entity.RoleStudent), target.ID)
		require.NoError(t, err)
		require.Equal(t, target.Email, found.Email)
	})

	t.Run("students cannot read other profiles", func(t *testing.T) {
		_, err := svc.Get(ctx, claimsFor(99, entity.RoleStudent), target.ID)
		require.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("instructors and admins can read any profile", func(t *testing.T) {
		_, err := svc.Get(ctx, claimsFor(99, entity.RoleInstructor), target.ID)
		require.NoError(t, err)
		_, err = svc.Get(ctx, claimsFor(99, entity.RoleAdmin), target.ID)
		require.NoError(t, err)
	})

	t.Run("missing user is 404 for permitted callers", func(t *testing.T) {
		_, err := svc.Get(ctx, claimsFor(99, entity.RoleAdmin), 1234)
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("access check runs before the lookup", func(t *testing.T) {
		_, err := svc.Get(ctx, claimsFor(99, entity.RoleStudent), 1234)
		require.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestUserUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	target := &entity.User{Email: "t@example.com", FirstName: "Old", LastName: "Name"}
	require.NoError(t, repo.Create(ctx, target))

	t.Run("only the user themselves may update", func(t *testing.T) {
		err := svc.Update(ctx, claimsFor(99, entity.RoleAdmin), target.ID, dto.UpdateUserRequest{FirstName: "X"})
		require.ErrorIs(t, err, apperror.ErrForbidden)
		require.Equal(t, "Old", repo.users[target.ID].FirstName)
	})

	t.Run("self update overwrites both fields", func(t *testing.T) {
		err := svc.Update(ctx, claimsFor(target.ID, entity.RoleStudent), target.ID, dto.UpdateUserRequest{
			FirstName: "New", LastName: "Surname",
		})
		require.NoError(t, err)
		require.Equal(t, "New", repo.users[target.ID].FirstName)
		require.Equal(t, "Surname", repo.users[target.ID].LastName)
	})
}

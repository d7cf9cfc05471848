package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/temucosoft-api/internal/application/auth"
	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/pkg/jwt"
)

const secret = "test-secret"

type userRepo struct{ users []*entity.User }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	return r.users, nil
}

func newRepo(t *testing.T) *userRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	return &userRepo{users: []*entity.User{
		{ID: "u1", CompanyID: "co-a", Username: "gerente", PasswordHash: string(hash), Role: entity.RoleManager, IsActive: true, CreatedAt: now},
		{ID: "u2", CompanyID: "co-a", Username: "baja", PasswordHash: string(hash), Role: entity.RoleClerk, IsActive: false, CreatedAt: now},
	}}
}

func TestLogin(t *testing.T) {
	uc := auth.NewAuthUseCase(newRepo(t), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "temucosoft"})
	ctx := context.Background()

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "gerente", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.User.Role)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "co-a", claims.CompanyID)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "gerente", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "baja", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResolveActor(t *testing.T) {
	repo := newRepo(t)
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret})
	ctx := context.Background()

	a, err := uc.ResolveActor(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, a.Authenticated)
	assert.True(t, a.Active)
	assert.Equal(t, entity.RoleManager, a.Role)

	a, err = uc.ResolveActor(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, a.Active)

	a, err = uc.ResolveActor(ctx, "borrado")
	require.NoError(t, err)
	assert.False(t, a.Authenticated)
}

func TestRefresh(t *testing.T) {
	repo := newRepo(t)
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "temucosoft", RefreshWindowMinutes: 30})
	ctx := context.Background()

	t.Run("vencido dentro de la ventana usa el rol vigente", func(t *testing.T) {
		old, err := jwt.Generate(secret, "u1", "co-a", "clerk", "temucosoft", -10)
		require.NoError(t, err)

		resp, err := uc.Refresh(ctx, dto.RefreshRequest{Token: old})
		require.NoError(t, err)
		claims, err := jwt.Parse(secret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "manager", claims.Role)
		assert.Equal(t, "gerente", resp.User.Username)
	})

	t.Run("fuera de la ventana", func(t *testing.T) {
		old, err := jwt.Generate(secret, "u1", "co-a", "manager", "temucosoft", -45)
		require.NoError(t, err)
		_, err = uc.Refresh(ctx, dto.RefreshRequest{Token: old})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("cuenta inactiva o borrada", func(t *testing.T) {
		for _, id := range []string{"u2", "borrado"} {
			tok, err := jwt.Generate(secret, id, "co-a", "clerk", "temucosoft", 60)
			require.NoError(t, err)
			_, err = uc.Refresh(ctx, dto.RefreshRequest{Token: tok})
			assert.ErrorIs(t, err, domain.ErrUnauthorized, id)
		}
	})

	t.Run("firma ajena", func(t *testing.T) {
		tok, err := jwt.Generate("otro", "u1", "co-a", "manager", "temucosoft", 60)
		require.NoError(t, err)
		_, err = uc.Refresh(ctx, dto.RefreshRequest{Token: tok})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

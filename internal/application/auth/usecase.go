package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/application/usecase"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
	"github.com/jhoicas/temucosoft-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
// RefreshWindowMinutes es cuánto tiempo después de vencer un token todavía puede renovarse.
type JWTConfig struct {
	Secret               string
	ExpMinutes           int
	Issuer               string
	RefreshWindowMinutes int
}

// AuthUseCase login y resolución del actor de cada request.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user)
}

// Refresh emite un token nuevo a partir de uno vigente o vencido dentro de la ventana.
// Rol y empresa salen de la cuenta actual; una cuenta borrada o inactiva no renueva.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.LoginResponse, error) {
	window := time.Duration(uc.jwtCfg.RefreshWindowMinutes) * time.Minute
	claims, err := jwt.ParseRefreshable(uc.jwtCfg.Secret, strings.TrimSpace(in.Token), window)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// ResolveActor carga la cuenta desde la base para que rol, empresa y estado sean los vigentes
// y no los del token. Una cuenta borrada resuelve a un actor no autenticado.
func (uc *AuthUseCase) ResolveActor(ctx context.Context, userID string) (access.Actor, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return access.Actor{}, err
	}
	return access.ActorFromUser(user), nil
}

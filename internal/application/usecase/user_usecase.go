package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// UserUseCase alta y consulta de cuentas.
type UserUseCase struct {
	repo      repository.UserRepository
	companies repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, companies repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{repo: repo, companies: companies}
}

// Create da de alta una cuenta según quién la crea: el operador sólo crea dueños de
// empresa; el dueño sólo crea gerentes y vendedores de su empresa.
func (uc *UserUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	targetCompany := in.CompanyID
	if targetCompany == "" && actor.Role == entity.RoleTenantOwner {
		targetCompany = actor.CompanyID
	}
	role := entity.Role(in.Role)
	if err := access.CheckAccountCreation(actor, role, targetCompany); err != nil {
		return nil, err
	}

	canonical, err := cleanRUT(in.RUT)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, targetCompany)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa", targetCompany)
	}

	user, err := newUser(in.Username, in.Email, in.Password, &canonical, role, company.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.insert(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// RegisterCustomer autorregistro público de un cliente final en la tienda de una empresa activa.
// El RUT es opcional para clientes finales.
func (uc *UserUseCase) RegisterCustomer(ctx context.Context, in dto.RegisterCustomerRequest) (*dto.UserResponse, error) {
	var rutValue *string
	if strings.TrimSpace(in.RUT) != "" {
		canonical, err := cleanRUT(in.RUT)
		if err != nil {
			return nil, err
		}
		rutValue = &canonical
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.IsActive {
		return nil, domain.NotFound("empresa", in.CompanyID)
	}
	user, err := newUser(in.Username, in.Email, in.Password, rutValue, entity.RoleEndCustomer, company.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.insert(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Me devuelve la cuenta del actor.
func (uc *UserUseCase) Me(ctx context.Context, actor access.Actor) (*dto.UserResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	u, err := uc.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("usuario", actor.UserID)
	}
	return ToUserResponse(u), nil
}

// List cuentas de la empresa del actor (todas para el operador). Dueño y gerente.
func (uc *UserUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := access.AuthorizeRead(actor, access.OpCreateStaff, access.OpManageCatalog); err != nil {
		return nil, err
	}
	page.DefaultPage()
	resp := &dto.UserListResponse{Items: []dto.UserResponse{}, Page: pageOf(page)}
	companyID, _, ok := access.ListScope(actor)
	if !ok {
		return resp, nil
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		resp.Items = append(resp.Items, *ToUserResponse(u))
	}
	return resp, nil
}

func (uc *UserUseCase) insert(ctx context.Context, user *entity.User) error {
	existing, err := uc.repo.GetByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	return uc.repo.Create(ctx, user)
}

// newUser arma la cuenta activa con la contraseña hasheada con bcrypt.
func newUser(username, email, password string, rutValue *string, role entity.Role, companyID string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	verr := &domain.ValidationError{}
	if username == "" {
		verr.Add("username", "El nombre de usuario es obligatorio.")
	}
	if len(password) < 8 {
		verr.Add("password", "La contraseña debe tener al menos 8 caracteres.")
	}
	if !role.Valid() {
		verr.Add("role", "Rol inválido.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Username:     username,
		Email:        strings.TrimSpace(email),
		RUT:          rutValue,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ToUserResponse mapea la cuenta sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Username:  u.Username,
		Email:     u.Email,
		RUT:       u.RUT,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// seed deja la base lista para una demo: planes, operador del sistema y empresas de prueba con
// su dueño y casa matriz. Puede ejecutarse varias veces; lo que ya existe no se toca.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
	"github.com/jhoicas/temucosoft-api/internal/infrastructure/postgres"
	"github.com/jhoicas/temucosoft-api/pkg/config"
	"github.com/jhoicas/temucosoft-api/pkg/logger"
	"github.com/jhoicas/temucosoft-api/pkg/rut"
)

type demoTenant struct {
	name     string
	rut      string
	plan     string
	owner    string
	email    string
	branch   string
	location string
}

var plans = []entity.SubscriptionPlan{
	{Name: entity.PlanBasic, MaxUsers: 3, Price: decimal.RequireFromString("9.99"), Description: "Una sucursal y equipo pequeño."},
	{Name: entity.PlanStandard, MaxUsers: 10, Price: decimal.RequireFromString("29.99"), Description: "Varias sucursales y reportes."},
	{Name: entity.PlanPremium, MaxUsers: 999, Price: decimal.RequireFromString("99.99"), Description: "Sin límite práctico de cuentas."},
}

var tenants = []demoTenant{
	{name: "Almacén Los Aromos", rut: "99776655-5", plan: entity.PlanBasic, owner: "aromos", email: "dueno@aromos.cl", branch: "Casa Matriz", location: "Av. Alemania 0450, Temuco"},
	{name: "Ferretería Cautín", rut: "88554433-9", plan: entity.PlanStandard, owner: "cautin", email: "dueno@ferrecautin.cl", branch: "Casa Matriz", location: "Manuel Montt 1020, Temuco"},
	{name: "Panadería La Frontera", rut: "11223344-K", plan: entity.PlanPremium, owner: "frontera", email: "dueno@lafrontera.cl", branch: "Casa Matriz", location: "Caupolicán 310, Padre Las Casas"},
}

type seeder struct {
	companies repository.CompanyRepository
	plans     repository.PlanRepository
	users     repository.UserRepository
	branches  repository.BranchRepository
	log       *logger.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	s := &seeder{
		companies: postgres.NewCompanyRepository(pool),
		plans:     postgres.NewPlanRepository(pool),
		users:     postgres.NewUserRepository(pool),
		branches:  postgres.NewBranchRepository(pool),
		log:       log.Named("seed"),
	}
	if err := s.run(ctx, cfg.Seed); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Msg("seed completado")
}

func (s *seeder) run(ctx context.Context, cfg config.SeedConfig) error {
	planIDs := make(map[string]string, len(plans))
	for _, p := range plans {
		id, err := s.ensurePlan(ctx, p)
		if err != nil {
			return err
		}
		planIDs[p.Name] = id
	}

	if _, err := s.ensureUser(ctx, cfg.OperatorUsername, cfg.OperatorEmail, cfg.OperatorPassword, entity.RoleSystemOperator, ""); err != nil {
		return err
	}

	for _, t := range tenants {
		company, err := s.ensureCompany(ctx, t, planIDs[t.plan])
		if err != nil {
			return err
		}
		if _, err := s.ensureUser(ctx, t.owner, t.email, cfg.DemoPassword, entity.RoleTenantOwner, company.ID); err != nil {
			return err
		}
		if err := s.ensureBranch(ctx, company.ID, t.branch, t.location); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) ensurePlan(ctx context.Context, p entity.SubscriptionPlan) (string, error) {
	existing, err := s.plans.GetByName(ctx, p.Name)
	if err != nil {
		return "", fmt.Errorf("plan %s: %w", p.Name, err)
	}
	if existing != nil {
		return existing.ID, nil
	}
	p.ID = uuid.New().String()
	if err := s.plans.Create(ctx, &p); err != nil {
		return "", fmt.Errorf("crear plan %s: %w", p.Name, err)
	}
	s.log.Info().Str("plan", p.Name).Msg("plan creado")
	return p.ID, nil
}

func (s *seeder) ensureUser(ctx context.Context, username, email, password string, role entity.Role, companyID string) (*entity.User, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("usuario %s: %w", username, err)
	}
	if existing != nil {
		return existing, nil
	}
	if password == "" {
		return nil, fmt.Errorf("usuario %s: falta contraseña (SEED_*_PASSWORD)", username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("crear usuario %s: %w", username, err)
	}
	s.log.Info().Str("username", username).Str("role", string(role)).Msg("usuario creado")
	return u, nil
}

func (s *seeder) ensureCompany(ctx context.Context, t demoTenant, planID string) (*entity.Company, error) {
	canonical, ok := rut.Normalize(t.rut)
	if !ok {
		return nil, fmt.Errorf("empresa %s: RUT inválido %q", t.name, t.rut)
	}
	existing, err := s.companies.GetByRUT(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("empresa %s: %w", t.name, err)
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	c := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               t.name,
		RUT:                canonical,
		IsActive:           true,
		SubscriptionStatus: entity.SubscriptionInactive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if planID != "" {
		c.Subscribe(planID, now)
	}
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear empresa %s: %w", t.name, err)
	}
	s.log.Info().Str("company", c.Name).Str("rut", c.RUT).Msg("empresa creada")
	return c, nil
}

func (s *seeder) ensureBranch(ctx context.Context, companyID, name, address string) error {
	list, err := s.branches.ListByCompany(ctx, companyID, 1, 0)
	if err != nil {
		return err
	}
	if len(list) > 0 {
		return nil
	}
	now := time.Now()
	return s.branches.Create(ctx, &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

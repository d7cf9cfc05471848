package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/temucosoft-api/docs"
	"github.com/jhoicas/temucosoft-api/internal/application/auth"
	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/application/usecase"
	"github.com/jhoicas/temucosoft-api/internal/infrastructure/cache"
	"github.com/jhoicas/temucosoft-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/temucosoft-api/internal/infrastructure/pdf"
	"github.com/jhoicas/temucosoft-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/temucosoft-api/internal/interfaces/http"
	"github.com/jhoicas/temucosoft-api/pkg/config"
	"github.com/jhoicas/temucosoft-api/pkg/logger"
)

// @title						TemucoSoft API
// @version					1.0
// @description				Backend multiempresa para comercios: catálogo, inventario por sucursal, compras, ventas y pedidos.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	loc := cfg.App.Location()

	companyRepo := postgres.NewCompanyRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	builder := inventory.NewTransactionBuilder(productRepo, branchRepo, supplierRepo, loc)
	purchaseUC := inventory.NewPurchaseUseCase(builder, txRunner, purchaseRepo)
	saleUC := inventory.NewSaleUseCase(inventory.SaleDeps{
		Builder:   builder,
		TxRunner:  txRunner,
		Sales:     saleRepo,
		Companies: companyRepo,
		Branches:  branchRepo,
		Products:  productRepo,
		Users:     userRepo,
		Receipts:  infrapdf.NewReceiptRenderer(),
	})
	reportUC := inventory.NewReportUseCase(reportRepo, companyRepo, export.NewSalesBookXML(), loc)
	replenishmentUC := inventory.NewReplenishmentUseCase(reportRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:               cfg.JWT.Secret,
		ExpMinutes:           cfg.JWT.Expiration,
		Issuer:               cfg.JWT.Issuer,
		RefreshWindowMinutes: cfg.JWT.RefreshWindow,
	})

	deps := httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       usecase.NewCompanyUseCase(companyRepo),
		SubscriptionUC:  usecase.NewSubscriptionUseCase(companyRepo, planRepo),
		PlanUC:          usecase.NewPlanUseCase(planRepo),
		UserUC:          usecase.NewUserUseCase(userRepo, companyRepo),
		ProductUC:       usecase.NewProductUseCase(productRepo, companyRepo),
		BranchUC:        usecase.NewBranchUseCase(branchRepo, stockRepo, productRepo),
		SupplierUC:      usecase.NewSupplierUseCase(supplierRepo),
		OrderUC:         usecase.NewOrderUseCase(orderRepo, productRepo, companyRepo, txRunner),
		PurchaseUC:      purchaseUC,
		SaleUC:          saleUC,
		ReportUC:        reportUC,
		ReplenishmentUC: replenishmentUC,
		TenantStatus:    usecase.NewTenantStatusService(companyRepo),
		JWTSecret:       cfg.JWT.Secret,
	}

	// Redis es opcional: sin REDIS_URL no hay Idempotency-Key.
	if cfg.Redis.Enabled() {
		rdb, err := cache.New(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		deps.Idempotency = cache.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	} else {
		log.Warn().Msg("REDIS_URL vacío: Idempotency-Key deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TemucoSoft API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-api/internal/application/auth"
	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/application/usecase"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	SubscriptionUC  *usecase.SubscriptionUseCase
	PlanUC          *usecase.PlanUseCase
	UserUC          *usecase.UserUseCase
	ProductUC       *usecase.ProductUseCase
	BranchUC        *usecase.BranchUseCase
	SupplierUC      *usecase.SupplierUseCase
	OrderUC         *usecase.OrderUseCase
	PurchaseUC      *inventory.PurchaseUseCase
	SaleUC          *inventory.SaleUseCase
	ReportUC        *inventory.ReportUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	TenantStatus    *usecase.TenantStatusService
	// Idempotency nil desactiva Idempotency-Key (sin Redis configurado).
	Idempotency IdempotencyStore
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Tienda (público)
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/shop/:company_id/products", productHandler.Catalog)
	api.Get("/shop/:company_id/products/:id", productHandler.CatalogItem)

	// Rutas protegidas (Bearer Token + empresa activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC), RequireActiveTenant(deps.TenantStatus))

	idem := func(c *fiber.Ctx) error { return c.Next() }
	if deps.Idempotency != nil {
		idem = Idempotency(deps.Idempotency)
	}

	planHandler := NewPlanHandler(deps.PlanUC)
	protected.Get("/plans", planHandler.List)
	protected.Post("/plans", planHandler.Create)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.SubscriptionUC)
	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/:id/deactivate", companyHandler.Deactivate)
	companies.Post("/:id/subscribe", companyHandler.Subscribe)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)

	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	branchHandler := NewBranchHandler(deps.BranchUC)
	branches := protected.Group("/branches")
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Delete("/:id", branchHandler.Delete)
	branches.Get("/:id/inventory", branchHandler.Inventory)
	branches.Put("/:id/inventory/:product_id", branchHandler.SetReorderPoint)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	txHandler := NewTransactionHandler(deps.PurchaseUC, deps.SaleUC)
	purchases := protected.Group("/purchases")
	purchases.Post("/", idem, txHandler.CreatePurchase)
	purchases.Get("/", txHandler.ListPurchases)
	purchases.Get("/:id", txHandler.GetPurchase)

	sales := protected.Group("/sales")
	sales.Post("/", idem, txHandler.CreateSale)
	sales.Get("/", txHandler.ListSales)
	sales.Get("/:id", txHandler.GetSale)
	sales.Get("/:id/receipt", txHandler.Receipt)

	reportHandler := NewReportHandler(deps.ReportUC, deps.ReplenishmentUC)
	reports := protected.Group("/reports", RequireOperation(access.OpViewReports))
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/sales/book", reportHandler.SalesBook)
	reports.Get("/reorder", reportHandler.Reorder)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := protected.Group("/orders")
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.List)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
}

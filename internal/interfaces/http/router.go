package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/joachez17/bodega-api/internal/application/analytics"
	"github.com/joachez17/bodega-api/internal/application/audit"
	"github.com/joachez17/bodega-api/internal/application/inventory"
	"github.com/joachez17/bodega-api/internal/application/usecase"
	"github.com/joachez17/bodega-api/internal/infrastructure/notify"
	"github.com/joachez17/bodega-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC      *inventory.MovementUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	ProductUC       *usecase.ProductUseCase
	CatalogUC       *usecase.CatalogUseCase
	AuditRecorder   *audit.Recorder
	DashboardUC     *appanalytics.DashboardUseCase
	// Hub opcional; sin hub no se expone /ws/alerts.
	Hub       *notify.Hub
	JWTSecret string
	JWTIssuer string // vacío = no se valida el emisor
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	verifier := jwt.NewVerifier(deps.JWTSecret, deps.JWTIssuer)

	if deps.Hub != nil {
		stream := NewAlertStream(deps.Hub, verifier)
		app.Get("/ws/alerts", stream.Upgrade, stream.Handle())
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(verifier))
	writers := RequireRole(RoleAdmin, RoleBodeguero)
	adminOnly := RequireRole(RoleAdmin)

	// Inventario: recepciones, despachos y Kardex
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.ReplenishmentUC)
	inv.Post("/receptions", writers, inventoryHandler.SubmitReception)
	inv.Post("/dispatches", writers, inventoryHandler.SubmitDispatch)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/:id", inventoryHandler.GetMovement)
	inv.Get("/products/:code/kardex", inventoryHandler.GetKardex)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", writers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", writers, productHandler.Update)
	products.Delete("/:code", adminOnly, productHandler.Delete)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)

	suppliers := api.Group("/suppliers")
	suppliers.Post("/", writers, catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Get("/:id", catalogHandler.GetSupplier)
	suppliers.Put("/:id", writers, catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", adminOnly, catalogHandler.DeleteSupplier)

	areas := api.Group("/areas")
	areas.Post("/", writers, catalogHandler.CreateArea)
	areas.Get("/", catalogHandler.ListAreas)
	areas.Get("/:id", catalogHandler.GetArea)
	areas.Put("/:id", writers, catalogHandler.UpdateArea)
	areas.Delete("/:id", adminOnly, catalogHandler.DeleteArea)

	racks := api.Group("/racks")
	racks.Post("/", writers, catalogHandler.CreateRack)
	racks.Get("/", catalogHandler.ListRacks)
	racks.Get("/:code", catalogHandler.GetRack)
	racks.Put("/:code", writers, catalogHandler.UpdateRack)
	racks.Delete("/:code", adminOnly, catalogHandler.DeleteRack)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Auditoría (solo admin)
	auditHandler := NewAuditHandler(deps.AuditRecorder)
	api.Get("/audit", adminOnly, auditHandler.List)
}

// @title           Bodega API
// @version         1.0
// @description     Inventario de bodega: recepciones, despachos, Kardex, alertas de stock mínimo y auditoría.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
// @description     Bearer <token>
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
	"github.com/joachez17/bodega-api/docs"
	appanalytics "github.com/joachez17/bodega-api/internal/application/analytics"
	"github.com/joachez17/bodega-api/internal/application/audit"
	"github.com/joachez17/bodega-api/internal/application/inventory"
	"github.com/joachez17/bodega-api/internal/application/notification"
	"github.com/joachez17/bodega-api/internal/application/usecase"
	"github.com/joachez17/bodega-api/internal/domain/repository"
	"github.com/joachez17/bodega-api/internal/infrastructure/memory"
	"github.com/joachez17/bodega-api/internal/infrastructure/notify"
	"github.com/joachez17/bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/joachez17/bodega-api/internal/interfaces/http"
	"github.com/joachez17/bodega-api/pkg/config"
	"github.com/joachez17/bodega-api/pkg/logger"
)

// storage repositorios y runner de transacciones del driver elegido.
type storage struct {
	tx        inventory.TxRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
	ledger    repository.LedgerRepository
	audit     repository.AuditRepository
	suppliers repository.SupplierRepository
	areas     repository.AreaRepository
	racks     repository.RackRepository
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			tx: s, products: s.Products(), movements: s.Movements(), ledger: s.Ledger(), audit: s.Audit(),
			suppliers: s.Suppliers(), areas: s.Areas(), racks: s.Racks(),
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool, cfg.Inventory.LockTimeout),
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		ledger:    postgres.NewLedgerRepository(pool),
		audit:     postgres.NewAuditRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		areas:     postgres.NewAreaRepository(pool),
		racks:     postgres.NewRackRepository(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: todas las rutas /api responderán 401")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Alertas: log + WebSocket siempre; Redis solo si NOTIFY_REDIS_ADDR está definido.
	notifyLog := log.Component("notify")
	hub := notify.NewHub(notifyLog)
	go hub.Run(ctx)
	senders := []notify.Sender{notify.NewLogSender(notifyLog), hub}
	if cfg.Notify.RedisAddr != "" {
		rdb, err := notify.NewRedisClient(ctx, cfg.Notify.RedisAddr, cfg.Notify.RedisPassword, cfg.Notify.RedisDB)
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.Notify.RedisAddr).Msg("redis no disponible, alertas sin publicar")
		} else {
			defer rdb.Close()
			senders = append(senders, notify.NewRedisPublisher(rdb, cfg.Notify.RedisChannel))
		}
	}
	dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
		QueueSize:  cfg.Notify.QueueSize,
		RatePerSec: cfg.Notify.RatePerSec,
		Burst:      cfg.Notify.Burst,
	}, notifyLog, senders...)
	dispatcher.Start(ctx)

	recorder := audit.NewRecorder(store.audit, log.Component("audit"))
	engineLog := log.Component("engine")
	movementUC := inventory.NewMovementUseCase(
		store.tx, store.products, store.movements, store.ledger, store.suppliers, store.areas,
		notification.NewNotifier(dispatcher, engineLog), recorder, engineLog,
		inventory.MovementConfig{TxTimeout: cfg.Inventory.TxTimeout},
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.products)
	productUC := usecase.NewProductUseCase(store.products, store.ledger, store.racks, store.suppliers, recorder)
	catalogUC := usecase.NewCatalogUseCase(store.suppliers, store.areas, store.racks, recorder)
	dashboardUC := appanalytics.NewDashboardUseCase(store.products, store.movements)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_clients": hub.Clients()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:      movementUC,
		ReplenishmentUC: replenishmentUC,
		ProductUC:       productUC,
		CatalogUC:       catalogUC,
		AuditRecorder:   recorder,
		DashboardUC:     dashboardUC,
		Hub:             hub,
		JWTSecret:       cfg.JWT.Secret,
		JWTIssuer:       cfg.JWT.Issuer,
	})

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
	// Primero se drenan las alertas pendientes; después se cierran hub y conexiones.
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("alertas pendientes sin entregar")
	}
	stop()

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/order"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/application/usecase"
	domainorder "github.com/jhoicas/wms-api/internal/domain/order"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/internal/infrastructure/notification"
	infrapdf "github.com/jhoicas/wms-api/internal/infrastructure/pdf"
	"github.com/jhoicas/wms-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/wms-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/wms-api/internal/interfaces/http"
	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		URLPath:        cfg.Telemetry.URLPath,
		AuthHeader:     cfg.Telemetry.AuthHeader,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas OTLP")
	}

	// Persistencia: PostgreSQL o memoria (demo)
	var (
		tx    ports.TxRunner
		repos ports.Repos
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		tx, repos = store, store.Repos()
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		tx, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	// Notificaciones de cambio de estado: Kafka si hay brokers, si no solo log
	var sink notification.Sink
	if cfg.Kafka.Enabled() {
		sink = notification.NewKafkaSink(notification.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.ClientID))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("notificaciones vía Kafka")
	} else {
		sink = notification.NewLogSink(log.Component("notification"))
	}
	dispatcher := notification.NewDispatcher(sink, cfg.Kafka.BufferSize, cfg.Kafka.SendTimeout, log.Component("dispatcher"))

	// Idempotencia: Redis si está configurado, si no en proceso
	var idem ports.IdempotencyStore = memory.NewIdempotencyStore()
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, idempotencia en memoria")
		} else {
			defer rdb.Close()
			idem = infraredis.NewIdempotencyStore(rdb)
		}
	}

	productUC := usecase.NewProductUseCase(tx, repos, log.Component("products"))
	locationUC := usecase.NewLocationUseCase(repos.Locations)
	inventoryUC := inventory.NewUseCase(tx, repos, log.Component("inventory"))
	historyUC := inventory.NewHistoryUseCase(repos.History, repos.Products)
	orderUC := order.NewUseCase(tx, repos, dispatcher,
		domainorder.Policy{AllowCancelShipped: cfg.Orders.AllowCancelShipped}, log.Component("orders"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "version": cfg.App.Version})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		LocationUC:     locationUC,
		InventoryUC:    inventoryUC,
		HistoryUC:      historyUC,
		OrderUC:        orderUC,
		PickingPDF:     infrapdf.NewPickingListRenderer(),
		JWTSecret:      cfg.JWT.Secret,
		Idempotency:    idem,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		Log:            log.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	// El dispatcher termina con Close, después de que el servidor deja de atender peticiones.
	g.Go(func() error {
		return dispatcher.Run(context.WithoutCancel(gctx))
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var errs []error
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := dispatcher.Close(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("apagado con errores")
	}
	log.Info().Msg("aplicación detenida")
}

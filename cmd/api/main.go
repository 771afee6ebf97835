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

	"github.com/jhoicas/inventario-pedidos/docs"
	"github.com/jhoicas/inventario-pedidos/internal/application/auth"
	"github.com/jhoicas/inventario-pedidos/internal/application/barcode"
	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
	"github.com/jhoicas/inventario-pedidos/internal/application/usecase"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
	"github.com/jhoicas/inventario-pedidos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-pedidos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-pedidos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-pedidos/internal/interfaces/http"
	"github.com/jhoicas/inventario-pedidos/internal/plugins"
	"github.com/jhoicas/inventario-pedidos/internal/version"
	"github.com/jhoicas/inventario-pedidos/pkg/config"
	"github.com/jhoicas/inventario-pedidos/pkg/logger"
)

// @title        Inventario Pedidos API
// @version      1
// @description  Pedidos de venta, asignación de existencias y despacho.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization

// txRunner transacciones del libro de asignaciones y de existencias.
type txRunner interface {
	order.TxRunner
	stock.TxRunner
}

// stores repositorios de la capa de persistencia elegida con STORAGE.
type stores struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	parts     repository.PartRepository
	locations repository.LocationRepository
	stock     repository.StockItemRepository
	tracking  repository.StockTrackingRepository
	orders    repository.SalesOrderRepository
	allocs    repository.AllocationRepository
	tx        txRunner
	db        httpRouter.Pinger
	close     func()
}

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
		Str("version", version.Version).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	docs.SwaggerInfo.Version = version.Version

	registry := plugins.NewRegistry()
	if err := plugins.RegisterBuiltins(registry); err != nil {
		log.Fatal().Err(err).Msg("registrar plugins")
	}
	log.Info().Strs("barcode", registry.Names(plugins.CapabilityBarcode)).Msg("plugins cargados")

	zl := log.Zerolog()
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Pedidos API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(st.users),
		CompanyUC:      usecase.NewCompanyUseCase(st.companies),
		PartUC:         usecase.NewPartUseCase(st.parts),
		LocationUC:     usecase.NewLocationUseCase(st.locations),
		StockUC:        stock.NewStockUseCase(st.tx, st.stock, st.tracking, st.allocs, st.parts, st.locations),
		SalesOrderUC:   order.NewSalesOrderUseCase(st.orders, st.allocs, st.stock, st.companies, st.parts),
		LedgerUC:       order.NewLedgerUseCase(st.tx, st.orders, st.allocs, st.stock, zl),
		PackingSlipUC:  order.NewPackingSlipUseCase(st.orders, st.allocs, st.stock, st.companies, st.parts, infrapdf.NewMarotoPackingSlipGenerator()),
		ScanUC:         barcode.NewScanUseCase(registry, st.stock, st.locations, st.parts, zl),
		DB:             st.db,
		JWTSecret:      cfg.JWT.Secret,
		InstanceName:   cfg.App.InstanceName,
		MatchThreshold: cfg.Matching.Threshold,
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

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			users:     memory.NewUserRepository(s),
			companies: memory.NewCompanyRepository(s),
			parts:     memory.NewPartRepository(s),
			locations: memory.NewLocationRepository(s),
			stock:     memory.NewStockItemRepository(s),
			tracking:  memory.NewTrackingRepository(s),
			orders:    memory.NewSalesOrderRepository(s),
			allocs:    memory.NewAllocationRepository(s),
			tx:        memory.NewTxRunner(s),
			close:     func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
		if err != nil {
			return nil, err
		}
		err = mg.Up()
		_ = mg.Close()
		if err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		users:     postgres.NewUserRepository(pool),
		companies: postgres.NewCompanyRepository(pool),
		parts:     postgres.NewPartRepository(pool),
		locations: postgres.NewLocationRepository(pool),
		stock:     postgres.NewStockItemRepository(pool),
		tracking:  postgres.NewTrackingRepository(pool),
		orders:    postgres.NewSalesOrderRepository(pool),
		allocs:    postgres.NewAllocationRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		db:        pool,
		close:     pool.Close,
	}, nil
}

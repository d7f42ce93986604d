package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	importerapp "github.com/opticore/backend/internal/application/importer"
	reconapp "github.com/opticore/backend/internal/application/reconciliation"
	stockapp "github.com/opticore/backend/internal/application/stock"
	"github.com/opticore/backend/internal/infrastructure/config"
	"github.com/opticore/backend/internal/infrastructure/event"
	"github.com/opticore/backend/internal/infrastructure/logger"
	"github.com/opticore/backend/internal/infrastructure/persistence"
	"github.com/opticore/backend/internal/interfaces/http/handler"
	"github.com/opticore/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting opticore backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	snapshotRepo := persistence.NewGormStockSnapshotRepository(db.DB)
	approvalScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	aggregator := stockapp.NewAggregatorService(orderRepo, movementRepo, log)
	movementService := stockapp.NewMovementService(movementRepo, log)
	comparator := reconapp.NewComparatorService(inventoryRepo, productRepo, aggregator, log)
	approvalService := reconapp.NewApprovalService(inventoryRepo, comparator, approvalScope, eventBus, log)
	snapshotService := reconapp.NewSnapshotService(snapshotRepo, log)
	importService := importerapp.NewOrderImportService(orderRepo, productRepo, cfg.Import.ChunkSize, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(logger.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db))
	r.Register(handler.NewStockHandler(aggregator, movementService, snapshotService))
	r.Register(handler.NewReconciliationHandler(comparator, approvalService))
	r.Register(handler.NewImportHandler(importService, cfg.Import.MaxRowsPerCall))
	r.Setup()

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

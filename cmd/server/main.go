package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PLZ-test/wms/internal/application/collection"
	"github.com/PLZ-test/wms/internal/application/fulfillment"
	channelclient "github.com/PLZ-test/wms/internal/infrastructure/channel"
	"github.com/PLZ-test/wms/internal/infrastructure/config"
	"github.com/PLZ-test/wms/internal/infrastructure/logger"
	"github.com/PLZ-test/wms/internal/infrastructure/persistence"
	"github.com/PLZ-test/wms/internal/infrastructure/scheduler"
	"github.com/PLZ-test/wms/internal/interfaces/http/handler"
	"github.com/PLZ-test/wms/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting WMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	centerRepo := persistence.NewGormCenterRepository(db.DB)
	shipperRepo := persistence.NewGormShipperRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	salesChannelRepo := persistence.NewGormSalesChannelRepository(db.DB)
	credentialRepo := persistence.NewGormChannelCredentialRepository(db.DB)
	courierRepo := persistence.NewGormCourierRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	collectionLogRepo := persistence.NewGormCollectionLogRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)

	// Initialize application services
	registry := channelclient.DefaultRegistry()
	resolver := collection.NewCatalogResolver(shipperRepo, productRepo, salesChannelRepo)
	materializer := collection.NewMaterializer(resolver, orderRepo, log)

	policy := collection.DuplicatePolicySkip
	if cfg.Collector.ForceAccept {
		policy = collection.DuplicatePolicyForceAccept
	}
	collectionService := collection.NewService(
		credentialRepo,
		registry,
		materializer,
		orderRepo,
		collectionLogRepo,
		log,
		collection.Options{
			Window:       cfg.Collector.Window,
			FetchTimeout: cfg.Collector.FetchTimeout,
			Policy:       policy,
		},
	)
	shippingService := fulfillment.NewShippingService(shipmentRepo, movementRepo, log)

	// Start the periodic collection scheduler
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(collectionService, cfg.Scheduler.Interval, log)
		sched.Start(context.Background())
		defer sched.Stop()
	}

	// Initialize handlers
	collectionHandler := handler.NewCollectionHandler(collectionService, collectionLogRepo)
	orderHandler := handler.NewOrderHandler(collectionService, shippingService, orderRepo)
	masterDataHandler := handler.NewMasterDataHandler(
		centerRepo,
		shipperRepo,
		productRepo,
		salesChannelRepo,
		credentialRepo,
		courierRepo,
		shippingService,
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(log, router.WithTrustedProxies(cfg.HTTP.TrustedProxies)).
		Register(collectionHandler).
		Register(orderHandler).
		Register(masterDataHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

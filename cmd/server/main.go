package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	applivestock "github.com/dombastis/backend/internal/application/livestock"
	appsales "github.com/dombastis/backend/internal/application/sales"
	"github.com/dombastis/backend/internal/infrastructure/auth"
	"github.com/dombastis/backend/internal/infrastructure/config"
	"github.com/dombastis/backend/internal/infrastructure/logger"
	"github.com/dombastis/backend/internal/infrastructure/persistence"
	"github.com/dombastis/backend/internal/infrastructure/storage"
	"github.com/dombastis/backend/internal/interfaces/http/handler"
	"github.com/dombastis/backend/internal/interfaces/http/middleware"
	"github.com/dombastis/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Dombastis Backend",
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
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Evidence photo store
	evidenceStore, err := buildEvidenceStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize evidence store", zap.Error(err))
	}

	// Repositories and unit of work
	livestockRepo := persistence.NewGormLivestockRepository(db.DB)
	mutationRepo := persistence.NewGormMutationLogRepository(db.DB)
	salesRepo := persistence.NewGormSalesRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Application services
	lifecycleService := applivestock.NewLifecycleService(livestockRepo, mutationRepo, uow, log)
	salesService := appsales.NewSalesService(salesRepo, log)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Handlers
	systemHandler := handler.NewSystemHandler(db)
	livestockHandler := handler.NewLivestockHandler(lifecycleService, evidenceStore, cfg.Storage.MaxUploadBytes)
	salesHandler := handler.NewSalesHandler(salesService)

	// Health endpoint outside API versioning and auth
	engine.GET("/health", systemHandler.Health)

	// Locally stored evidence photos are served as static content
	if cfg.Storage.Driver == "local" {
		engine.Static("/static/uploads", cfg.Storage.LocalDir)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/system/info",
		},
	}))

	livestockRoutes := router.NewDomainGroup("livestock", "/livestock")
	livestockRoutes.POST("", livestockHandler.Create)
	livestockRoutes.GET("", livestockHandler.List)
	livestockRoutes.GET("/counts", livestockHandler.Counts)
	livestockRoutes.GET("/:id", livestockHandler.Get)
	livestockRoutes.PUT("/:id", livestockHandler.Update)
	livestockRoutes.DELETE("/:id", livestockHandler.Delete)
	livestockRoutes.POST("/:id/retire", livestockHandler.Retire)
	livestockRoutes.GET("/:id/mutations", livestockHandler.History)

	mutationRoutes := router.NewDomainGroup("mutations", "/mutations")
	mutationRoutes.GET("", livestockHandler.RecentMutations)
	mutationRoutes.GET("/location/:location", livestockHandler.MutationsByLocation)

	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.POST("", salesHandler.Record)
	salesRoutes.GET("", salesHandler.List)
	salesRoutes.GET("/overview", salesHandler.Overview)
	salesRoutes.GET("/next-receipt", salesHandler.NextReceipt)
	salesRoutes.GET("/:id", salesHandler.Get)
	salesRoutes.DELETE("/:id", salesHandler.Delete)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(livestockRoutes).
		Register(mutationRoutes).
		Register(salesRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// buildEvidenceStore selects the photo store backend from configuration
func buildEvidenceStore(cfg *config.Config, log *zap.Logger) (applivestock.EvidenceStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		store, err := storage.NewS3EvidenceStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return storage.NewLocalEvidenceStore(cfg.Storage.LocalDir)
	}
}

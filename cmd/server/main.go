package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"darb_pms/internal/config"
	"darb_pms/internal/handler"
	"darb_pms/internal/middleware"
	"darb_pms/internal/repository"
	"darb_pms/internal/service"
	"darb_pms/internal/storage"
	"darb_pms/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const version = "1.0.0"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	setupLogger(cfg)

	ctx := context.Background()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer dbPool.Close()

	// --- Migrations ---
	if err := config.Migrate(ctx, dbPool); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// --- Attachment storage ---
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize attachment storage")
	}
	log.WithFields(log.Fields{"backend": cfg.Storage.Backend, "bucket": store.Bucket()}).Info("attachment storage ready")

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	projectRepo := repository.NewInvestmentProjectRepository(dbPool)
	stationRepo := repository.NewStationRepository(dbPool)
	tankRepo := repository.NewTankRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil, cfg.InitialAdminUsername)
	projectService := service.NewInvestmentProjectService(projectRepo, store)
	stationService := service.NewStationService(stationRepo)
	tankService := service.NewTankService(tankRepo)

	// --- Initialize Handlers ---
	production := cfg.IsProduction()
	authHandler := handler.NewAuthHandler(authService, production)
	userHandler := handler.NewUserHandler(authService, production)
	projectHandler := handler.NewInvestmentProjectHandler(projectService, production)
	stationHandler := handler.NewStationHandler(stationService, production)
	tankHandler := handler.NewTankHandler(tankService, production)
	systemHandler := handler.NewSystemHandler(dbPool, version)

	// --- Setup Gin Router ---
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics := middleware.NewMetrics("pms")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log.StandardLogger()),
		middleware.CORS(cfg.CORSAllowedOrigins),
		metrics.Middleware(),
	)

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil, authService)
	adminRoleMW := middleware.AdminMiddleware()
	authLimitMW := middleware.NewRateLimiter(cfg.AuthRateLimitPerMin).Middleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW, authLimitMW)
	userHandler.RegisterUserRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	projectHandler.RegisterInvestmentProjectRoutes(apiGroup, jwtAuthMW)
	stationHandler.RegisterStationRoutes(apiGroup, jwtAuthMW)
	tankHandler.RegisterTankRoutes(apiGroup, jwtAuthMW)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	systemHandler.RegisterSystemRoutes(router)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"port": cfg.ServerPort, "env": cfg.Env}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	log.Info("server exiting")
}

func setupLogger(cfg *config.AppConfig) {
	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geoexplorer/backend/config"
	"github.com/geoexplorer/backend/internal/handler"
	"github.com/geoexplorer/backend/internal/middleware"
	"github.com/geoexplorer/backend/internal/notifier"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/geoexplorer/backend/internal/router"
	"github.com/geoexplorer/backend/internal/service"
	"github.com/geoexplorer/backend/pkg/database"
	"github.com/geoexplorer/backend/pkg/logger"
	"github.com/geoexplorer/backend/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.GetLogger()

	log.Info("Starting service",
		zap.String("name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("port", cfg.App.Port),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	redisClient := redis.NewClient(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		Enabled:      cfg.Redis.Enabled,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	levelRepo := repository.NewLevelRepository(db)
	triviaRepo := repository.NewTriviaRepository(db)
	mistakeRepo := repository.NewMistakeRepository(db)
	geoRepo := repository.NewGeoFeatureRepository(db)
	arRepo := repository.NewARLandformRepository(db)

	// Services
	cacheService := service.NewCacheService(redisClient)
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.Auth.AccessTokenTTL)
	hasher := service.NewPasswordHasher()
	codeNotifier := notifier.NewLogNotifier(log)
	verificationService := service.NewVerificationService(codeRepo, codeNotifier, cfg.Auth.CodeTTL, cfg.Auth.CodeLength)
	authService := service.NewAuthService(userRepo, tokenRepo, verificationService, tokenService, hasher,
		redisClient, cfg.Auth.RefreshTokenTTL, cfg.RateLimit)
	userService := service.NewUserService(userRepo, levelRepo)
	levelService := service.NewLevelService(levelRepo, userRepo, cacheService)
	triviaService := service.NewTriviaService(triviaRepo, cacheService)
	mistakeService := service.NewMistakeService(mistakeRepo)
	geoService := service.NewGeoFeatureService(geoRepo)
	arService := service.NewARLandformService(arRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	levelHandler := handler.NewLevelHandler(levelService)
	triviaHandler := handler.NewTriviaHandler(triviaService)
	mistakeHandler := handler.NewMistakeHandler(mistakeService)
	geoHandler := handler.NewGeoFeatureHandler(geoService)
	arHandler := handler.NewARLandformHandler(arService)
	healthHandler := handler.NewHealthHandler(cfg, db, redisClient)

	jwtMiddleware := middleware.NewJWTMiddleware(tokenService, userRepo)

	r := router.NewRouter(cfg,
		authHandler, userHandler, levelHandler, triviaHandler,
		mistakeHandler, geoHandler, arHandler, healthHandler,
		jwtMiddleware,
	)
	engine := r.SetupRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
	}

	// Periodic sweep of expired verification codes and refresh tokens
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go func() {
		ticker := time.NewTicker(cfg.Auth.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				authService.CleanupExpired(cleanupCtx)
			}
		}
	}()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

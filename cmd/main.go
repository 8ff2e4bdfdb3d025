package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	configs "github.com/notely/notes-api/config"
	"github.com/notely/notes-api/internal/handler"
	"github.com/notely/notes-api/internal/middleware"
	"github.com/notely/notes-api/internal/repository"
	"github.com/notely/notes-api/internal/router"
	"github.com/notely/notes-api/internal/service"
	"github.com/notely/notes-api/pkg/database"
	"github.com/notely/notes-api/pkg/logger"
	"github.com/notely/notes-api/pkg/redis"
	"github.com/notely/notes-api/pkg/storage"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if err := database.Seed(db); err != nil {
		// Seed data may already exist
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	redisClient, err := redis.NewClient(redis.Config{
		Addr:         config.RedisAddress(),
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, logger.GetLogger())
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	avatarStore, err := storage.NewS3Store(startupCtx, storage.Config{
		Region:       config.Storage.Region,
		Bucket:       config.Storage.Bucket,
		AccessKey:    config.Storage.AccessKey,
		SecretKey:    config.Storage.SecretKey,
		BaseEndpoint: config.Storage.BaseEndpoint,
		PublicURL:    config.Storage.PublicURL,
	}, logger.GetLogger())
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize object storage", zap.Error(err))
	}

	var notifier service.Notifier
	if config.Mail.Enabled {
		notifier, err = service.NewSMTPNotifier(service.SMTPConfig{
			Host:     config.Mail.Host,
			Port:     config.Mail.Port,
			Username: config.Mail.Username,
			Password: config.Mail.Password,
			From:     config.Mail.From,
			BaseURL:  config.App.BaseURL,
		})
		if err != nil {
			logger.GetLogger().Fatal("Failed to initialize mail notifier", zap.Error(err))
		}
	} else {
		notifier = service.NewLogNotifier()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Services
	tokenService := service.NewTokenService(config.JWT.Secret)
	hasher := service.NewPasswordHasher()
	sessionCache := service.NewSessionCache(redisClient, config.Cache.SessionTTL)

	authService := service.NewAuthService(userRepo, sessionCache, tokenService, hasher, notifier, service.AuthTTLConfig{
		AccessTokenTTL:       config.JWT.AccessTokenTTL,
		RefreshTokenTTL:      config.JWT.RefreshTokenTTL,
		EmailVerificationTTL: config.JWT.EmailVerificationTTL,
	})
	userService := service.NewUserService(userRepo, sessionCache, avatarStore)
	noteService := service.NewNoteService(noteRepo, tagRepo)
	tagService := service.NewTagService(tagRepo)

	// Handlers and middleware
	authMw := middleware.NewAuthMiddleware(authService)
	r := router.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewNoteHandler(noteService),
		handler.NewTagHandler(tagService),
		handler.NewHealthHandler(db, redisClient),
		authMw,
		config,
	)

	srv := &http.Server{
		Addr:         ":" + config.App.Port,
		Handler:      r.SetupRoutes(),
		ReadTimeout:  config.App.Timeout,
		WriteTimeout: config.App.Timeout,
	}

	go func() {
		logger.GetLogger().Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.GetLogger().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Forced shutdown", zap.Error(err))
	}

	logger.GetLogger().Info("Server stopped")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/indievia/indievia-backend/internal/cache"
	"github.com/indievia/indievia-backend/internal/config"
	"github.com/indievia/indievia-backend/internal/db"
	"github.com/indievia/indievia-backend/internal/goroutine"
	httpHandlers "github.com/indievia/indievia-backend/internal/http/handlers"
	"github.com/indievia/indievia-backend/internal/http/middleware"
	httpRouter "github.com/indievia/indievia-backend/internal/http/router"
	"github.com/indievia/indievia-backend/internal/logger"
	"github.com/indievia/indievia-backend/internal/repository"
	"github.com/indievia/indievia-backend/internal/service"
	"github.com/indievia/indievia-backend/internal/storage"
	"github.com/indievia/indievia-backend/internal/validation"
	"github.com/indievia/indievia-backend/internal/ws"
	"github.com/indievia/indievia-backend/migrations"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}
	appLog := logger.WithComponent("main")

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		appLog.WithError(err).Fatal("ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, db.MigrationSource(cfg.MigrationsPath, migrations.FS)); err != nil {
		appLog.WithError(err).Fatal("ошибка миграций")
	}

	// Redis необязателен: без него кэш и лимитер работают в памяти процесса.
	var redisClient *redis.Client
	var cacheStore cache.Store
	if cfg.RedisURL != "" {
		redisClient, err = cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			appLog.WithError(err).Fatal("ошибка подключения к redis")
		}
		defer redisClient.Close()
		cacheStore = cache.NewRedisStore(redisClient, "indievia:cache")
	} else {
		memStore := cache.NewMemoryStore(time.Minute)
		defer memStore.Close()
		cacheStore = memStore
	}
	appCache := cache.New(cacheStore)

	limiterStore, err := middleware.NewLimiterStore(redisClient)
	if err != nil {
		appLog.WithError(err).Fatal("ошибка инициализации rate limiter")
	}

	if err := validation.RegisterBindingValidators(); err != nil {
		appLog.WithError(err).Fatal("ошибка регистрации валидаторов")
	}

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MediaPublicURL)
	if err != nil {
		appLog.WithError(err).Fatal("не удалось подготовить файловое хранилище")
	}

	schemas, err := service.CompileNotificationSchemas()
	if err != nil {
		appLog.WithError(err).Fatal("не удалось скомпилировать схемы уведомлений")
	}

	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	professionalRepo := repository.NewProfessionalRepository(dbConn)
	clientRepo := repository.NewClientRepository(dbConn)
	reviewRepo := repository.NewReviewRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	inboxRepo := repository.NewInboxRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)
	verificationRepo := repository.NewVerificationRepository(dbConn)
	adminRepo := repository.NewAdminRepository(dbConn)

	// Сервисы.
	mediaService := service.NewMediaService(mediaStorage, mediaRepo)
	notificationService := service.NewNotificationService(notificationRepo, hub, schemas)
	authService := service.NewAuthService(userRepo, professionalRepo, service.NewProfileReader(professionalRepo, clientRepo), tokenManager)
	verificationService := service.NewVerificationService(verificationRepo, userRepo, service.NewLogCodeSender(), cfg.VerificationTTL)
	professionalService := service.NewProfessionalService(professionalRepo, mediaService, appCache, cfg.ProfileCacheTTL)
	clientService := service.NewClientService(clientRepo, mediaService)
	reviewService := service.NewReviewService(reviewRepo, reportRepo, professionalRepo, clientRepo, mediaService, notificationService, appCache)
	moderationService := service.NewModerationService(reportRepo, notificationService, professionalService)
	inboxService := service.NewInboxService(inboxRepo)
	adminService := service.NewAdminService(userRepo, adminRepo, professionalService)
	sitemapService := service.NewSitemapService(professionalRepo, appCache, cfg.SiteURL, cfg.SitemapCacheTTL)

	if _, err := service.NewSeedService(userRepo).EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		appLog.WithError(err).Fatal("не удалось создать администратора")
	}

	healthChecks := map[string]httpHandlers.Pinger{"database": dbConn}
	if redisClient != nil {
		healthChecks["redis"] = httpHandlers.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Auth:          httpHandlers.NewAuthHandler(authService),
		Verification:  httpHandlers.NewVerificationHandler(verificationService),
		Professionals: httpHandlers.NewProfessionalHandler(professionalService),
		Clients:       httpHandlers.NewClientHandler(clientService),
		Reviews:       httpHandlers.NewReviewHandler(reviewService),
		Notifications: httpHandlers.NewNotificationHandler(notificationService),
		Moderation:    httpHandlers.NewModerationHandler(moderationService),
		Inbox:         httpHandlers.NewInboxHandler(inboxService),
		Admin:         httpHandlers.NewAdminHandler(adminService),
		Sitemap:       httpHandlers.NewSitemapHandler(sitemapService),
		Health:        httpHandlers.NewHealthHandler(healthChecks),
		WS:            httpHandlers.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins),
	}, tokenManager, limiterStore)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("ошибка остановки http сервера")
		}
	})

	appLog.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLog.WithError(err).Fatal("сервер завершился с ошибкой")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.WithComponent("main").WithError(err).Error("ошибка закрытия базы")
	}
}

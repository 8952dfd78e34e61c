package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iIonel/EventReport/internal/config"
	v1 "github.com/iIonel/EventReport/internal/handler/http/v1"
	"github.com/iIonel/EventReport/internal/metrics"
	"github.com/iIonel/EventReport/internal/realtime"
	"github.com/iIonel/EventReport/internal/repository"
	"github.com/iIonel/EventReport/internal/service"
	"github.com/iIonel/EventReport/internal/storage"
	"github.com/iIonel/EventReport/internal/webhook"
	"github.com/iIonel/EventReport/pkg/logger"
	"github.com/iIonel/EventReport/pkg/postgres"
	redisclient "github.com/iIonel/EventReport/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/iIonel/EventReport/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title EventReport API
// @version 1.0
// @description Citizen event reporting API: events, images, live feed, analytics and admin notifications.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	log.Info("Running database migrations...")
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Info("Database migrations applied successfully")

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Хранилище изображений
	images, err := storage.NewImageStore(storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to create MinIO client: %v", err)
	}
	if err := images.Ping(ctx); err != nil {
		// Сервер работает и без фото, загрузка вернет ошибку
		log.WithError(err).Warn("MinIO is not reachable")
	}

	m := metrics.New()

	// WebSocket-хаб слушает Redis pub/sub, чтобы события доходили до клиентов всех инстансов
	hub := realtime.NewHub(redisClient, log)
	hub.SetClientObserver(m.SetWebsocketClients)
	if err := hub.Start(ctx); err != nil {
		log.Fatalf("Failed to start realtime hub: %v", err)
	}

	// Инициализация издателя вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)

	// Инициализация репозиториев
	eventRepo := repository.NewEventRepository(dbpool, redisClient, cfg.CacheTTL)
	notificationRepo := repository.NewNotificationRepository(dbpool)
	adminRepo := repository.NewAdminRepository(dbpool)

	// Инициализация и запуск воркера уведомлений
	if cfg.WebhookURL == "" {
		log.Warn("WEBHOOK_URL is not set, webhook delivery is disabled")
	}
	if cfg.SendGridAPIKey == "" || cfg.TwilioAccountSID == "" {
		log.Warn("SendGrid or Twilio credentials are missing, admin email/SMS will be recorded as failed")
	}
	webhookWorker := webhook.NewWebhookWorker(redisClient, notificationRepo, log, cfg)
	webhookWorker.SetObserver(m.ObserveWebhookDelivery)
	webhookWorker.SetAdminChannels(adminRepo,
		webhook.NewSendGridEmailChannel(cfg),
		webhook.NewTwilioSMSChannel(cfg),
	)
	webhookWorker.Start(ctx)

	// Инициализация сервисов
	eventService := service.NewEventService(eventRepo, images, hub, webhookPublisher, log, cfg,
		service.WithCreatedObserver(m.ObserveEventCreated),
		service.WithCacheObserver(m.ObserveCache),
	)

	adminService := service.NewAdminService(adminRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(eventService, adminService, hub, log, cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), m.Middleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики Prometheus
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Останавливаем хаб и воркер вместе с контекстом приложения
	cancel()
	select {
	case <-webhookWorker.Done():
	case <-shutdownCtx.Done():
		log.Warn("Webhook worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/crowd_safety_system/internal/archive"
	"github.com/shenikar/crowd_safety_system/internal/config"
	"github.com/shenikar/crowd_safety_system/internal/dispatch"
	v1 "github.com/shenikar/crowd_safety_system/internal/handler/http/v1"
	"github.com/shenikar/crowd_safety_system/internal/registry"
	"github.com/shenikar/crowd_safety_system/internal/service"
	"github.com/shenikar/crowd_safety_system/internal/webhook"
	"github.com/shenikar/crowd_safety_system/pkg/logger"
	"github.com/shenikar/crowd_safety_system/pkg/postgres"
	redisclient "github.com/shenikar/crowd_safety_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/crowd_safety_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Crowd Safety System API
// @version 1.0
// @description Risk scoring and dispatch coordination engine for large public events.
// @host localhost:8080
// @BasePath /api/v1
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL (только асинхронный архив)
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
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

	// Издатель дельт и воркер доставки
	deltaPublisher := webhook.NewRedisPublisher(redisClient)
	deliveryWorker := webhook.NewDeliveryWorker(redisClient, log, cfg)
	deliveryWorker.Start(ctx)

	// Асинхронный архиватор завершенных инцидентов
	archiver := archive.NewArchiver(archive.NewPostgresStore(dbpool), log, cfg.ArchiveQueueSize)
	archiver.Start(ctx)

	// Реестры: зоны и ростер загружаются при старте и живут весь сеанс
	zones := registry.NewZoneRegistry(cfg.DensityWindow, cfg.TrendThreshold)
	zoneList, err := config.LoadZones(cfg.ZonesFile)
	if err != nil {
		log.Fatalf("Failed to load zones: %v", err)
	}
	for _, z := range zoneList {
		if err := zones.Register(z); err != nil {
			log.Fatalf("Failed to register zone %s: %v", z.ID, err)
		}
	}
	log.Infof("Registered %d zones", len(zoneList))

	incidents := registry.NewIncidentRegistry(cfg.RetentionWindow, archiver.Enqueue)
	defer incidents.Stop()

	units := registry.NewUnitRegistry()
	roster, err := config.LoadRoster(cfg.RosterFile)
	if err != nil {
		log.Fatalf("Failed to load unit roster: %v", err)
	}
	for _, u := range roster {
		if err := units.Register(u); err != nil {
			log.Fatalf("Failed to register unit %s: %v", u.ID, err)
		}
	}
	log.Infof("Registered %d units", len(roster))

	// Диспетчер назначений
	engine := dispatch.NewEngine(zones, incidents, units, deltaPublisher, log, dispatch.Options{
		MatchInterval:  cfg.MatchInterval,
		StaleETAFactor: cfg.StaleETAFactor,
		SurgeUnitCount: cfg.SurgeUnitCount,
	})
	engine.StartWithContext(ctx)

	// Инициализация сервисов
	telemetryService := service.NewTelemetryService(zones, incidents, units, engine, deltaPublisher, log)
	queryService := service.NewQueryService(zones, incidents, units, engine)

	// Инициализация хэндлеров
	handler := v1.NewHandler(telemetryService, queryService, log)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики и Swagger UI
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := engine.StopWithContext(shutdownCtx); err != nil {
		log.Warnf("Dispatcher stop: %v", err)
	}
	cancel()
	archiver.Wait()

	log.Info("Server gracefully stopped")
}

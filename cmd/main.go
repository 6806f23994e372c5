package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api"
	"github.com/m04kA/SMC-NotificationScheduler/internal/config"
	"github.com/m04kA/SMC-NotificationScheduler/internal/dispatch/cron"
	"github.com/m04kA/SMC-NotificationScheduler/internal/infra/storage/delivered"
	"github.com/m04kA/SMC-NotificationScheduler/internal/integrations/broker"
	"github.com/m04kA/SMC-NotificationScheduler/internal/integrations/webhook"
	deliveredSvc "github.com/m04kA/SMC-NotificationScheduler/internal/service/delivered"
	"github.com/m04kA/SMC-NotificationScheduler/internal/service/scheduler"
	"github.com/m04kA/SMC-NotificationScheduler/internal/service/telegram"
	"github.com/m04kA/SMC-NotificationScheduler/internal/worker"
	"github.com/m04kA/SMC-NotificationScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-NotificationScheduler/pkg/logger"
	"github.com/m04kA/SMC-NotificationScheduler/pkg/metrics"
	"github.com/m04kA/SMC-NotificationScheduler/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-NotificationScheduler...")

	// Метрики (если включены). Интерфейсы остаются nil при выключенных метриках.
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
		deliveryMetrics  cron.Metrics
		schedulerMetrics scheduler.Metrics
		routerOptions    api.Options
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		deliveryMetrics = metricsCollector
		schedulerMetrics = metricsCollector
		routerOptions = api.Options{
			Metrics:        metricsCollector,
			MetricsPath:    cfg.Metrics.Path,
			MetricsHandler: promhttp.Handler(),
		}
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txManager := txmanager.New(wrappedDB)

	// Журнал доставленных уведомлений
	deliveryLog := delivered.NewRepository(wrappedDB, txManager, cfg.Scheduler.DeliveredRetention)

	// Каналы доставки
	var deliverers cron.Deliverers

	if cfg.Telegram.Enabled {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			log.Fatal("Failed to initialize Telegram Bot API: %v", err)
		}
		deliverers = append(deliverers, telegram.NewService(bot, cfg.Telegram.DefaultChatID))
		log.Info("Telegram delivery enabled (@%s)", bot.Self.UserName)
	}

	if cfg.Broker.Enabled {
		publisher, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, cfg.Broker.RoutingKeyPrefix, log)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer publisher.Close()
		deliverers = append(deliverers, publisher)
		log.Info("Broker delivery enabled (exchange=%s)", cfg.Broker.Exchange)
	}

	if cfg.Webhook.URL != "" {
		deliverers = append(deliverers, webhook.NewClient(cfg.Webhook.URL, cfg.Webhook.TimeoutDuration()))
		log.Info("Webhook delivery enabled (url=%s)", cfg.Webhook.URL)
	}

	// Система доставки на gocron
	authority := cron.NewAuthority(deliverers, deliveryLog, log, deliveryMetrics, cfg.Scheduler.DeliveryTimeoutDuration())
	authority.Start()

	// Планировщик уведомлений
	schedulerSvc := scheduler.NewService(authority, scheduler.Settings{
		MaximumAllowedNotifications: cfg.Scheduler.MaxNotifications,
		MinimumInterval:             cfg.Scheduler.MinimumIntervalDuration(),
		AllowSilent:                 cfg.Scheduler.AllowSilent,
	}, log, schedulerMetrics)
	log.Info("Notification scheduler initialized (capacity=%d)", schedulerSvc.Settings().MaximumAllowedNotifications)

	reconciler := worker.NewReconciler(schedulerSvc, log, cfg.Scheduler.ReconcileIntervalDuration())
	reconciler.Start()

	deliveredService := deliveredSvc.NewService(authority, log)

	// Настраиваем роутер
	router := api.NewRouter(schedulerSvc, deliveredService, log, routerOptions)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем HTTP сервер
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown HTTP сервера: новые запросы на планирование не принимаются
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	reconciler.Stop()
	authority.Stop()
	log.Info("Worker components stopped")

	// Останавливаем сбор метрик
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

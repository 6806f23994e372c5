package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// minimumIntervalLimit минимальный интервал повторения, который принимает платформа (в секундах)
const minimumIntervalLimit = 60

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs      LogsConfig      `toml:"logs"`
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Broker    BrokerConfig    `toml:"broker"`
	Webhook   WebhookConfig   `toml:"webhook"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulerConfig содержит настройки планировщика и системы доставки
type SchedulerConfig struct {
	MaxNotifications   int  `toml:"max_notifications"`
	MinimumInterval    int  `toml:"minimum_interval"` // в секундах
	AllowSilent        bool `toml:"allow_silent"`
	DeliveryTimeout    int  `toml:"delivery_timeout"` // в секундах
	DeliveredRetention int  `toml:"delivered_retention"`
	ReconcileInterval  int  `toml:"reconcile_interval"` // в секундах
}

// TelegramConfig содержит настройки доставки в Telegram
type TelegramConfig struct {
	Enabled       bool   `toml:"enabled"`
	BotToken      string `toml:"bot_token"`
	DefaultChatID int64  `toml:"default_chat_id"`
}

// BrokerConfig содержит настройки публикации в RabbitMQ
type BrokerConfig struct {
	Enabled          bool   `toml:"enabled"`
	URL              string `toml:"url"`
	Exchange         string `toml:"exchange"`
	RoutingKeyPrefix string `toml:"routing_key_prefix"`
}

// WebhookConfig содержит настройки доставки во внешний HTTP сервис
type WebhookConfig struct {
	URL     string `toml:"url"`     // пустой URL отключает доставку
	Timeout int    `toml:"timeout"` // в секундах
}

// DSN формирует строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (s SchedulerConfig) MinimumIntervalDuration() time.Duration {
	return time.Duration(s.MinimumInterval) * time.Second
}

func (s SchedulerConfig) DeliveryTimeoutDuration() time.Duration {
	return time.Duration(s.DeliveryTimeout) * time.Second
}

func (s SchedulerConfig) ReconcileIntervalDuration() time.Duration {
	return time.Duration(s.ReconcileInterval) * time.Second
}

func (w WebhookConfig) TimeoutDuration() time.Duration {
	return time.Duration(w.Timeout) * time.Second
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения.
// Переменные из .env подхватываются, если файл существует, и не перекрывают уже заданные.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	// Читаем TOML файл
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	// Переопределяем значения из переменных окружения (если они установлены)
	overrideFromEnv(&cfg)

	// Валидация конфигурации
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Database
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")

	// Server
	setInt(&cfg.Server.HTTPPort, "HTTP_PORT")

	// Logs
	setString(&cfg.Logs.Level, "LOG_LEVEL")
	setString(&cfg.Logs.File, "LOG_FILE")

	// Metrics
	setBool(&cfg.Metrics.Enabled, "METRICS_ENABLED")
	setString(&cfg.Metrics.Path, "METRICS_PATH")
	setString(&cfg.Metrics.ServiceName, "METRICS_SERVICE_NAME")

	// Scheduler
	setInt(&cfg.Scheduler.MaxNotifications, "SCHEDULER_MAX_NOTIFICATIONS")
	setInt(&cfg.Scheduler.MinimumInterval, "SCHEDULER_MINIMUM_INTERVAL")
	setBool(&cfg.Scheduler.AllowSilent, "SCHEDULER_ALLOW_SILENT")
	setInt(&cfg.Scheduler.DeliveryTimeout, "SCHEDULER_DELIVERY_TIMEOUT")
	setInt(&cfg.Scheduler.DeliveredRetention, "SCHEDULER_DELIVERED_RETENTION")
	setInt(&cfg.Scheduler.ReconcileInterval, "SCHEDULER_RECONCILE_INTERVAL")

	// Telegram
	setBool(&cfg.Telegram.Enabled, "TELEGRAM_ENABLED")
	setString(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setInt64(&cfg.Telegram.DefaultChatID, "TELEGRAM_DEFAULT_CHAT_ID")

	// Broker
	setBool(&cfg.Broker.Enabled, "BROKER_ENABLED")
	setString(&cfg.Broker.URL, "BROKER_URL")
	setString(&cfg.Broker.Exchange, "BROKER_EXCHANGE")
	setString(&cfg.Broker.RoutingKeyPrefix, "BROKER_ROUTING_KEY_PREFIX")

	// Webhook
	setString(&cfg.Webhook.URL, "WEBHOOK_URL")
	setInt(&cfg.Webhook.Timeout, "WEBHOOK_TIMEOUT")
}

// validate проверяет корректность конфигурации
func validate(cfg *Config) error {
	// Database validation
	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	// Server validation
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	// Logs validation
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "./logs/app.log"
	}

	// Set defaults for timeouts if not specified
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	// Set defaults for database connection pool
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "notificationscheduler"
	}

	// Scheduler validation and defaults
	if cfg.Scheduler.MaxNotifications < 0 {
		return fmt.Errorf("scheduler max_notifications cannot be negative")
	}
	if cfg.Scheduler.MaxNotifications == 0 {
		cfg.Scheduler.MaxNotifications = 64
	}
	if cfg.Scheduler.MinimumInterval == 0 {
		cfg.Scheduler.MinimumInterval = minimumIntervalLimit
	}
	if cfg.Scheduler.MinimumInterval < minimumIntervalLimit {
		return fmt.Errorf("scheduler minimum_interval must be at least %d seconds", minimumIntervalLimit)
	}
	if cfg.Scheduler.DeliveryTimeout == 0 {
		cfg.Scheduler.DeliveryTimeout = 30
	}
	if cfg.Scheduler.DeliveredRetention == 0 {
		cfg.Scheduler.DeliveredRetention = 1000
	}
	if cfg.Scheduler.ReconcileInterval == 0 {
		cfg.Scheduler.ReconcileInterval = 60
	}

	// Telegram validation
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required when telegram delivery is enabled")
	}

	// Broker validation and defaults
	if cfg.Broker.Enabled && cfg.Broker.URL == "" {
		return fmt.Errorf("broker url is required when broker delivery is enabled")
	}
	if cfg.Broker.Exchange == "" {
		cfg.Broker.Exchange = "notifications"
	}
	if cfg.Broker.RoutingKeyPrefix == "" {
		cfg.Broker.RoutingKeyPrefix = "notification"
	}

	// Webhook defaults
	if cfg.Webhook.Timeout == 0 {
		cfg.Webhook.Timeout = 10
	}

	if !cfg.Telegram.Enabled && !cfg.Broker.Enabled && cfg.Webhook.URL == "" {
		return fmt.Errorf("at least one delivery channel (telegram, broker, webhook) must be configured")
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string
	HTTPPort    string
	LogLevel    string

	// Redis Config
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Webhook Config
	WebhookURL        string
	WebhookSecret     string
	WebhookTimeout    time.Duration
	WebhookMaxRetries int
	WebhookBaseDelay  time.Duration

	// Файлы зон и ростера юнитов, загружаются при старте
	ZonesFile  string
	RosterFile string

	// Параметры движка
	DensityWindow    int           // окно истории плотности на зону
	TrendThreshold   float64       // порог отрицательного тренда для понижения риска
	MatchInterval    time.Duration // период фонового прохода диспетчера
	StaleETAFactor   float64       // множитель ETA для пометки назначения просроченным
	RetentionWindow  time.Duration // окно удержания завершенных инцидентов до архивации
	SurgeUnitCount   int           // сколько юнитов охраны запрашивает crowd_surge
	ArchiveQueueSize int           // емкость очереди асинхронной архивации
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		ZonesFile:         getEnv("ZONES_FILE", "fixtures/zones.json"),
		RosterFile:        getEnv("ROSTER_FILE", "fixtures/roster.json"),
		DensityWindow:     getEnvAsInt("DENSITY_WINDOW", 5),
		TrendThreshold:    getEnvAsFloat("TREND_THRESHOLD", 10),
		MatchInterval:     getEnvAsDuration("MATCH_INTERVAL", time.Second),
		StaleETAFactor:    getEnvAsFloat("STALE_ETA_FACTOR", 1.5),
		RetentionWindow:   getEnvAsDuration("RETENTION_WINDOW", 10*time.Minute),
		SurgeUnitCount:    getEnvAsInt("SURGE_UNIT_COUNT", 3),
		ArchiveQueueSize:  getEnvAsInt("ARCHIVE_QUEUE_SIZE", 256),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	StoreBackend string
	DB           DBConfig
	TGtoken      string
	OwnerChatID  int64
	HTTPAddr     string
	UndoWindow   time.Duration
	ReportCron   string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func Load(log *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system env")
	}

	cfg := &Config{
		StoreBackend: getEnvDefault("STORE_BACKEND", BackendPostgres),
		TGtoken:      os.Getenv("TG_TOKEN"),
		OwnerChatID:  parseChatID(os.Getenv("OWNER_CHAT_ID"), log),
		HTTPAddr:     getEnvDefault("HTTP_ADDR", ":8080"),
		UndoWindow:   parseDuration(getEnvDefault("UNDO_WINDOW", "8s"), 8*time.Second, log),
		ReportCron:   getEnvDefault("WEEKLY_REPORT_CRON", "0 7 * * 1"),
	}
	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		cfg.DB = DBConfig{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
		}
	default:
		log.Error("Неизвестный STORE_BACKEND", zap.String("value", cfg.StoreBackend))
		panic("unknown STORE_BACKEND: " + cfg.StoreBackend)
	}
	if cfg.TGtoken == "" {
		log.Warn("TG_TOKEN не задан, бот отключён")
	}
	return cfg
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func parseDuration(s string, def time.Duration, log *zap.Logger) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Warn("Ошибка парсинга UNDO_WINDOW, используется значение по умолчанию", zap.String("value", s), zap.Error(err))
		return def
	}
	return d
}

func parseChatID(s string, log *zap.Logger) int64 {
	if s == "" {
		return 0
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Warn("OWNER_CHAT_ID не число, отправка отчётов отключена", zap.String("value", s))
		return 0
	}
	return id
}

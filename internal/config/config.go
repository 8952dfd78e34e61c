package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AnonymousReporter - автор событий, созданных ключом без явного имени
const AnonymousReporter = "anonymous"

// Config - конфигурация сервера
type Config struct {
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis Config
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// MinIO Config
	MinioEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"event-images"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MaxImageSize   int64  `env:"MAX_IMAGE_SIZE" envDefault:"10485760"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Email (SendGrid) и SMS (Twilio) для администраторов
	SendGridAPIKey   string `env:"SENDGRID_API_KEY"`
	MailFrom         string `env:"MAIL_FROM" envDefault:"noreply@eventreport.com"`
	MailFromName     string `env:"MAIL_FROM_NAME" envDefault:"EventReport"`
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `env:"TWILIO_PHONE_NUMBER"`

	// Analytics Config
	AnalyticsTimezone string `env:"ANALYTICS_TIMEZONE" envDefault:"Local"`

	// API Keys: "reporter:key" или просто "key"
	APIKeys map[string]string `env:"API_KEYS"`
}

// ClientConfig - конфигурация CLI аналитики
type ClientConfig struct {
	BaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api/v1"`
	Token       string        `env:"API_TOKEN"`
	Range       string        `env:"ANALYTICS_RANGE" envDefault:"30d"`
	Timezone    string        `env:"ANALYTICS_TIMEZONE" envDefault:"Local"`
	Schedule    string        `env:"ANALYTICS_SCHEDULE"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"text"`
}

// ImporterConfig - конфигурация импорта катастроф FEMA
type ImporterConfig struct {
	DatabaseURL string        `env:"DATABASE_URL"`
	FemaURL     string        `env:"FEMA_API_URL" envDefault:"https://www.fema.gov/api/open/v1/FemaWebDisasterDeclarations"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"text"`
}

// DefaultFemaURL - открытый API деклараций катастроф FEMA
const DefaultFemaURL = "https://www.fema.gov/api/open/v1/FemaWebDisasterDeclarations"

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		CacheTTL:          getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		MinioEndpoint:     getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:    os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:       getEnv("MINIO_BUCKET", "event-images"),
		MinioUseSSL:       getEnvAsBool("MINIO_USE_SSL", false),
		MaxImageSize:      int64(getEnvAsInt("MAX_IMAGE_SIZE", 10<<20)),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		MailFrom:          getEnv("MAIL_FROM", "noreply@eventreport.com"),
		MailFromName:      getEnv("MAIL_FROM_NAME", "EventReport"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:  os.Getenv("TWILIO_PHONE_NUMBER"),
		AnalyticsTimezone: getEnv("ANALYTICS_TIMEZONE", "Local"),
		APIKeys:           ParseAPIKeys(os.Getenv("API_KEYS")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// LoadClientConfig загружает конфигурацию CLI; флаги командной строки применяются поверх
func LoadClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	return &ClientConfig{
		BaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
		Token:       os.Getenv("API_TOKEN"),
		Range:       getEnv("ANALYTICS_RANGE", "30d"),
		Timezone:    getEnv("ANALYTICS_TIMEZONE", "Local"),
		Schedule:    os.Getenv("ANALYTICS_SCHEDULE"),
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}, nil
}

// LoadImporterConfig загружает конфигурацию импорта
func LoadImporterConfig() (*ImporterConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ImporterConfig{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		FemaURL:     getEnv("FEMA_API_URL", DefaultFemaURL),
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return cfg, nil
}

// ParseAPIKeys разбирает список ключей через запятую. Ключ возвращается вместе с
// именем автора, которому он выдан.
func ParseAPIKeys(raw string) map[string]string {
	keys := make(map[string]string)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		reporter, key, found := strings.Cut(item, ":")
		if !found {
			keys[item] = AnonymousReporter
			continue
		}
		reporter, key = strings.TrimSpace(reporter), strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if reporter == "" {
			reporter = AnonymousReporter
		}
		keys[key] = reporter
	}
	return keys
}

// LoadLocation возвращает часовой пояс для группировки аналитики
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func loadDotEnv() error {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}
	return nil
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

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/yungbote/automate-backend/internal/data/db"
)

// Config is read from CONFIG_PATH (default ./config.yaml) when that file
// exists, otherwise from the environment alone. Environment variables always
// override values from the file.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Admin     AdminConfig     `yaml:"admin"`
	Data      DataConfig      `yaml:"data"`
	Redis     RedisConfig     `yaml:"redis"`
	Mail      MailConfig      `yaml:"mail"`
	SMS       SMSConfig       `yaml:"sms"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Reminders ReminderConfig  `yaml:"reminders"`
	Charts    ChartConfig     `yaml:"charts"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	Environment     string        `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	LogMode         string        `yaml:"log_mode" env:"LOG_MODE" env-default:"development"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:","`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type DatabaseConfig struct {
	Driver        string        `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	Path          string        `yaml:"path" env:"DB_PATH" env-default:"data/automate.db"`
	DSN           string        `yaml:"dsn" env:"DB_DSN"`
	SlowThreshold time.Duration `yaml:"slow_threshold" env:"DB_SLOW_THRESHOLD" env-default:"200ms"`
}

type AuthConfig struct {
	JWTSecretKey    string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-default:"defaultsecret"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"24h"`
}

// AdminConfig seeds the default administrator on first start.
type AdminConfig struct {
	Name     string `yaml:"name" env:"ADMIN_NAME" env-default:"Administrator"`
	Email    string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@example.com"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-default:"admin123"`
	AdminKey string `yaml:"admin_key" env:"ADMIN_KEY" env-default:"supersecretkey"`
}

type DataConfig struct {
	ModelDatasetPath string `yaml:"model_dataset_path" env:"MODEL_DATASET_PATH" env-default:"data/car_maintenance.csv"`
	FAQPath          string `yaml:"faq_path" env:"FAQ_PATH" env-default:"data/faq.json"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Channel  string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"notifications"`
}

type MailConfig struct {
	APIKey      string        `yaml:"api_key" env:"SENDGRID_API_KEY"`
	BaseURL     string        `yaml:"base_url" env:"SENDGRID_BASE_URL" env-default:"https://api.sendgrid.com"`
	FromEmail   string        `yaml:"from_email" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@automate.local"`
	FromName    string        `yaml:"from_name" env:"SENDGRID_FROM_NAME" env-default:"AutoMate"`
	Timeout     time.Duration `yaml:"timeout" env:"SENDGRID_TIMEOUT" env-default:"30s"`
	MaxRetries  int           `yaml:"max_retries" env:"SENDGRID_MAX_RETRIES" env-default:"2"`
	BreakerTrip uint32        `yaml:"breaker_failures" env:"SENDGRID_BREAKER_FAILURES" env-default:"5"`
}

// SMSConfig enables Twilio delivery when AccountSID is set.
type SMSConfig struct {
	AccountSID          string        `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken           string        `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	APIKey              string        `yaml:"api_key" env:"TWILIO_API_KEY"`
	APIKeySecret        string        `yaml:"api_key_secret" env:"TWILIO_API_KEY_SECRET"`
	BaseURL             string        `yaml:"base_url" env:"TWILIO_BASE_URL"`
	FromNumber          string        `yaml:"from_number" env:"TWILIO_FROM_NUMBER"`
	MessagingServiceSID string        `yaml:"messaging_service_sid" env:"TWILIO_MESSAGING_SERVICE_SID"`
	Timeout             time.Duration `yaml:"timeout" env:"TWILIO_TIMEOUT" env-default:"30s"`
	MaxRetries          int           `yaml:"max_retries" env:"TWILIO_MAX_RETRIES" env-default:"2"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"automate-api"`
	Version     string  `yaml:"version" env:"OTEL_SERVICE_VERSION"`
	Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     string  `yaml:"headers" env:"OTEL_EXPORTER_OTLP_HEADERS"`
	Insecure    bool    `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE" env-default:"false"`
	SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLE_RATIO" env-default:"1"`
}

type ReminderConfig struct {
	// Schedule is a five-field cron expression. Empty disables reminders.
	Schedule string `yaml:"schedule" env:"REMINDER_SCHEDULE" env-default:"0 8 * * *"`
}

type ChartConfig struct {
	FontPath string `yaml:"font_path" env:"CHART_FONT_PATH"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case db.DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case db.DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return errors.New("DB_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Auth.JWTSecretKey) == "" {
		return errors.New("JWT_SECRET_KEY must not be empty")
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if strings.TrimSpace(c.Data.ModelDatasetPath) == "" {
		return errors.New("MODEL_DATASET_PATH is required")
	}
	origins := c.Server.CORSOrigins[:0]
	for _, o := range c.Server.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.Server.CORSOrigins = origins
	return nil
}

// Addr is the listen address derived from PORT.
func (c *Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Server.Port), ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

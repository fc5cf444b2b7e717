package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Intima"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"intima"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://*,https://*"`
	}

	Auth struct {
		// Shared secret of the identity provider that signs bearer tokens.
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
		Issuer    string `envconfig:"JWT_ISSUER"`
	}

	Retry struct {
		MaxTries uint          `envconfig:"RETRY_MAX_TRIES" default:"3"`
		Initial  time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"50ms"`
		Max      time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"500ms"`
	}

	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	OpenAI struct {
		APIKey     string  `envconfig:"OPENAI_API_KEY"`
		Model      string  `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
		RatePerMin float64 `envconfig:"OPENAI_RATE_PER_MINUTE" default:"6"`
		Burst      int     `envconfig:"OPENAI_BURST" default:"3"`
	}

	Storage struct {
		Bucket          string `envconfig:"MEDIA_BUCKET"`
		CredentialsFile string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Unknown levels fall back to info.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.App.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

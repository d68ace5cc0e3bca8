package cmd

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/application/usecases/queries"
	"logistica/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string

	PresenceTTL           time.Duration
	PresenceSweepSchedule string
	HistoryLimit          int

	AMQPURL      string
	AMQPExchange string
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.HTTPPort = cast.ToString(getOrReturnDefault("HTTP_PORT", "3000"))
	cfg.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", "info"))

	cfg.DatabaseURL = cast.ToString(getOrReturnDefault("DATABASE_URL", ""))
	cfg.DBHost = cast.ToString(getOrReturnDefault("DB_HOST", "localhost"))
	cfg.DBPort = cast.ToString(getOrReturnDefault("DB_PORT", "5432"))
	cfg.DBUser = cast.ToString(getOrReturnDefault("DB_USER", "postgres"))
	cfg.DBPassword = cast.ToString(getOrReturnDefault("DB_PASSWORD", ""))
	cfg.DBName = cast.ToString(getOrReturnDefault("DB_NAME", "logistica"))
	cfg.DBSslMode = cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable"))

	cfg.PresenceTTL = cast.ToDuration(getOrReturnDefault("PRESENCE_TTL", commands.DefaultPresenceTTL))
	cfg.PresenceSweepSchedule = cast.ToString(
		getOrReturnDefault("PRESENCE_SWEEP_SCHEDULE", jobs.DefaultPresenceSweepSchedule),
	)
	cfg.HistoryLimit = cast.ToInt(getOrReturnDefault("HISTORY_LIMIT", queries.DefaultHistoryLimit))

	cfg.AMQPURL = cast.ToString(getOrReturnDefault("AMQP_URL", ""))
	cfg.AMQPExchange = cast.ToString(getOrReturnDefault("AMQP_EXCHANGE", "dispatch.events"))

	return cfg
}

// DSN returns DATABASE_URL when set, otherwise a URL built from the DB_*
// keys.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSslMode),
	}
	return u.String()
}

func getOrReturnDefault(key string, defaultValue any) any {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

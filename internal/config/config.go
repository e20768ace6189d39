package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/constants"
)

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverRedis    = "redis"
	DriverBolt     = "bolt"
)

type Config struct {
	Environment  string
	LogLevel     string
	GinMode      string
	ListenAddr   string
	Timezone     string
	Location     *time.Location
	PollInterval time.Duration

	StoreDriver string
	SQLitePath  string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBMaxConns  int
	RedisURL    string
	RedisPrefix string
	BoltPath    string

	PhoneRegion  string
	OpenAIAPIKey string
}

// Load reads the configuration from the environment. Outside production a
// .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	if env != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: .env file could not be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:  env,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		GinMode:      getEnv("GIN_MODE", "release"),
		ListenAddr:   getEnv("LISTEN_ADDR", "127.0.0.1:8080"),
		Timezone:     getEnv("TIMEZONE", "America/Sao_Paulo"),
		PollInterval: getEnvAsDuration("POLL_INTERVAL", constants.DefaultPollInterval),
		StoreDriver:  getEnv("STORE_DRIVER", DriverSQLite),
		SQLitePath:   getEnv("SQLITE_PATH", "evento.db"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "evento"),
		DBPassword:   getEnv("DB_PASSWORD", "evento"),
		DBName:       getEnv("DB_NAME", "evento"),
		DBMaxConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 5),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:  getEnv("REDIS_PREFIX", "evento:"),
		BoltPath:     getEnv("BOLT_PATH", "evento.bolt"),
		PhoneRegion:  getEnv("PHONE_REGION", "BR"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverMySQL, DriverRedis, DriverBolt:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = constants.DefaultPollInterval
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

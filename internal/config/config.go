package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendGORM   = "gorm"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

// Config is read once at startup and passed by value afterwards.
type Config struct {
	AppPort         string
	DatabaseURL     string
	DatabaseDriver  string
	StorageBackend  string
	CORSAllowOrigin string
	RedisAddr       string
	RedisPassword   string
	CacheTTL        time.Duration
	RabbitMQURL     string
}

// New returns a viper instance with every default set and environment
// lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":6001")
	v.SetDefault("DATABASE_URL", "host=127.0.0.1 user=postgres password=postgres dbname=laptops port=5432 sslmode=disable")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("STORAGE_BACKEND", BackendGORM)
	v.SetDefault("CORS_ALLOW_ORIGIN", "http://localhost:5173")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()
	return v
}

// LoadEnvFile loads path into the process environment if it exists.
// Variables already set in the environment win.
func LoadEnvFile(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Warning: could not load %s: %v", path, err)
		return
	}
	log.Printf("Loaded environment from %s", path)
}

// Load reads the env file named by ENV_FILE (default .env), then builds the Config.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	LoadEnvFile(envFile)
	return FromViper(New())
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:         v.GetString("APP_PORT"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		DatabaseDriver:  v.GetString("DATABASE_DRIVER"),
		StorageBackend:  v.GetString("STORAGE_BACKEND"),
		CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		CacheTTL:        v.GetDuration("CACHE_TTL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.AppPort == "" {
		return errors.New("config: APP_PORT is required")
	}
	switch cfg.StorageBackend {
	case BackendGORM, BackendSQL:
		if cfg.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required")
		}
		if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
			return fmt.Errorf("config: DATABASE_DRIVER must be postgres or sqlite, got %q", cfg.DatabaseDriver)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: STORAGE_BACKEND must be gorm, sql or memory, got %q", cfg.StorageBackend)
	}
	if cfg.RedisAddr != "" && cfg.CacheTTL <= 0 {
		return errors.New("config: CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by a seeding run.
type Config struct {
	AppName    string
	Relational RelationalConfig
	Document   DocumentConfig
	Seed       SeedConfig
	Context    ContextConfig
	Logger     LoggerConfig
	Migrations MigrationsConfig
	Monitor    MonitorConfig
}

type RelationalConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
}

type DocumentConfig struct {
	URL        string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	AuthSource string
}

type SeedConfig struct {
	Customers   int
	Products    int
	Sales       int
	BatchSize   int
	Concurrency int
}

type ContextConfig struct {
	ConnectTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
}

type MonitorConfig struct {
	Interval time.Duration
}

// Load reads configuration from environment variables (optionally .env)
// and applies the defaults of the local docker setup.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName: getString("APP_NAME", "dualseed"),
		Relational: RelationalConfig{
			URL:      os.Getenv("POSTGRES_URL"),
			Host:     getString("POSTGRES_HOSTNAME", "localhost"),
			Port:     getString("POSTGRES_PORT", "40001"),
			Name:     getString("POSTGRES_DATABASE", "postgres"),
			User:     getString("POSTGRES_USERNAME", "postgres"),
			Password: getString("POSTGRES_PASSWORD", "postgres"),
			SSLMode:  getString("POSTGRES_SSLMODE", "disable"),
			MaxConns: getInt("POSTGRES_MAX_CONNS", 4),
		},
		Document: DocumentConfig{
			URL:        os.Getenv("MONGO_URL"),
			Host:       getString("MONGO_HOSTNAME", "localhost"),
			Port:       getString("MONGO_PORT", "40000"),
			Name:       getString("MONGO_DATABASE", "mongo"),
			User:       getString("MONGO_USERNAME", "mongo"),
			Password:   getString("MONGO_PASSWORD", "mongo"),
			AuthSource: getString("MONGO_AUTH_SOURCE", "admin"),
		},
		Seed: SeedConfig{
			Customers:   getInt("SEED_CUSTOMERS", 500),
			Products:    getInt("SEED_PRODUCTS", 500),
			Sales:       getInt("SEED_SALES", 500),
			BatchSize:   getInt("SEED_BATCH_SIZE", 50),
			Concurrency: getInt("SEED_CONCURRENCY", 0),
		},
		Context: ContextConfig{
			ConnectTimeout:  getDuration("CONNECT_TIMEOUT_SECONDS", 10*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL_SECONDS", 10*time.Second),
		},
	}

	if cfg.Relational.URL == "" {
		cfg.Relational.URL = buildPostgresURL(cfg.Relational)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings no run can satisfy.
func (c *Config) Validate() error {
	var errs []error
	if c.Seed.Customers < 0 || c.Seed.Products < 0 || c.Seed.Sales < 0 {
		errs = append(errs, errors.New("seed counts must not be negative"))
	}
	if c.Seed.Sales > 0 && (c.Seed.Customers == 0 || c.Seed.Products == 0) {
		errs = append(errs, errors.New("sales need at least one customer and one product"))
	}
	if c.Seed.BatchSize <= 0 {
		errs = append(errs, errors.New("SEED_BATCH_SIZE must be positive"))
	}
	if c.Seed.Concurrency < 0 {
		errs = append(errs, errors.New("SEED_CONCURRENCY must not be negative"))
	}
	return errors.Join(errs...)
}

// URI returns the MongoDB connection string.
func (c DocumentConfig) URI() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.AuthSource,
	)
}

func buildPostgresURL(cfg RelationalConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogPostgres = "postgres"
	CatalogSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Route    RouteConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"SERVER_HOST"`
	Port         int           `mapstructure:"SERVER_PORT"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `mapstructure:"SERVER_IDLE_TIMEOUT"`
}

// CatalogConfig selects where the city list is loaded from.
type CatalogConfig struct {
	Source     string `mapstructure:"CATALOG_SOURCE"`
	SQLitePath string `mapstructure:"CATALOG_SQLITE_PATH"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     int    `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	DBName   string `mapstructure:"POSTGRES_DB"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MinConns int32  `mapstructure:"POSTGRES_MIN_CONNS"`
}

// RedisConfig holds Redis connection settings. Redis only carries the live
// renderer feed, so it is off unless enabled.
type RedisConfig struct {
	Enabled       bool   `mapstructure:"REDIS_ENABLED"`
	Host          string `mapstructure:"REDIS_HOST"`
	Port          int    `mapstructure:"REDIS_PORT"`
	Password      string `mapstructure:"REDIS_PASSWORD"`
	DB            int    `mapstructure:"REDIS_DB"`
	PoolSize      int    `mapstructure:"REDIS_POOL_SIZE"`
	ChannelPrefix string `mapstructure:"REDIS_SNAPSHOT_CHANNEL_PREFIX"`
}

// RouteConfig holds search and cost parameters.
type RouteConfig struct {
	NeighborCount     int           `mapstructure:"ROUTE_NEIGHBOR_COUNT"`
	StepDelay         time.Duration `mapstructure:"ROUTE_STEP_DELAY"`
	AverageSpeedKmh   float64       `mapstructure:"ROUTE_AVERAGE_SPEED_KMH"`
	MaxFuelEfficiency float64       `mapstructure:"ROUTE_MAX_FUEL_EFFICIENCY"`
	MaxFuelPrice      float64       `mapstructure:"ROUTE_MAX_FUEL_PRICE"`
	Currency          string        `mapstructure:"ROUTE_CURRENCY"`
	LogSteps          bool          `mapstructure:"ROUTE_LOG_STEPS"`
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerAddr returns the HTTP listen address in host:port format.
func (s *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// A missing .env is fine; the environment alone is enough.
	_ = v.ReadInConfig()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	// ── Server ──────────────────────────────────────────
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "5s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	// ── Catalog ─────────────────────────────────────────
	v.SetDefault("CATALOG_SOURCE", CatalogEmbedded)
	v.SetDefault("CATALOG_SQLITE_PATH", "data/cities.db")

	// ── Postgres ────────────────────────────────────────
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "cityroute")
	v.SetDefault("POSTGRES_PASSWORD", "cityroute_secret")
	v.SetDefault("POSTGRES_DB", "cityroute_db")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_CONNS", 10)
	v.SetDefault("POSTGRES_MIN_CONNS", 1)

	// ── Redis ───────────────────────────────────────────
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 20)
	v.SetDefault("REDIS_SNAPSHOT_CHANNEL_PREFIX", "route:journey:")

	// ── Route ───────────────────────────────────────────
	v.SetDefault("ROUTE_NEIGHBOR_COUNT", 3)
	v.SetDefault("ROUTE_STEP_DELAY", "0s")
	v.SetDefault("ROUTE_AVERAGE_SPEED_KMH", 75.0)
	v.SetDefault("ROUTE_MAX_FUEL_EFFICIENCY", 100.0)
	v.SetDefault("ROUTE_MAX_FUEL_PRICE", 1000.0)
	v.SetDefault("ROUTE_CURRENCY", "UAH")
	v.SetDefault("ROUTE_LOG_STEPS", false)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Server = ServerConfig{
		Host:         v.GetString("SERVER_HOST"),
		Port:         v.GetInt("SERVER_PORT"),
		ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		IdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
	}

	cfg.Catalog = CatalogConfig{
		Source:     v.GetString("CATALOG_SOURCE"),
		SQLitePath: v.GetString("CATALOG_SQLITE_PATH"),
	}

	cfg.Postgres = PostgresConfig{
		Host:     v.GetString("POSTGRES_HOST"),
		Port:     v.GetInt("POSTGRES_PORT"),
		User:     v.GetString("POSTGRES_USER"),
		Password: v.GetString("POSTGRES_PASSWORD"),
		DBName:   v.GetString("POSTGRES_DB"),
		SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		MaxConns: v.GetInt32("POSTGRES_MAX_CONNS"),
		MinConns: v.GetInt32("POSTGRES_MIN_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:       v.GetBool("REDIS_ENABLED"),
		Host:          v.GetString("REDIS_HOST"),
		Port:          v.GetInt("REDIS_PORT"),
		Password:      v.GetString("REDIS_PASSWORD"),
		DB:            v.GetInt("REDIS_DB"),
		PoolSize:      v.GetInt("REDIS_POOL_SIZE"),
		ChannelPrefix: v.GetString("REDIS_SNAPSHOT_CHANNEL_PREFIX"),
	}

	cfg.Route = RouteConfig{
		NeighborCount:     v.GetInt("ROUTE_NEIGHBOR_COUNT"),
		StepDelay:         v.GetDuration("ROUTE_STEP_DELAY"),
		AverageSpeedKmh:   v.GetFloat64("ROUTE_AVERAGE_SPEED_KMH"),
		MaxFuelEfficiency: v.GetFloat64("ROUTE_MAX_FUEL_EFFICIENCY"),
		MaxFuelPrice:      v.GetFloat64("ROUTE_MAX_FUEL_PRICE"),
		Currency:          v.GetString("ROUTE_CURRENCY"),
		LogSteps:          v.GetBool("ROUTE_LOG_STEPS"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogEmbedded, CatalogPostgres, CatalogSQLite:
	default:
		return fmt.Errorf("config: unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}
	if c.Route.NeighborCount < 0 {
		return fmt.Errorf("config: ROUTE_NEIGHBOR_COUNT must be >= 0, got %d", c.Route.NeighborCount)
	}
	if c.Route.AverageSpeedKmh <= 0 {
		return fmt.Errorf("config: ROUTE_AVERAGE_SPEED_KMH must be > 0, got %v", c.Route.AverageSpeedKmh)
	}
	if c.Route.StepDelay < 0 {
		return fmt.Errorf("config: ROUTE_STEP_DELAY must be >= 0, got %s", c.Route.StepDelay)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "TILLWORKS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names used by tests and tooling.
const (
	EnvAppEnv         = "TILLWORKS_APP_ENV"
	EnvPort           = "TILLWORKS_APP_PORT"
	EnvRedisURL       = "TILLWORKS_REDIS_URL"
	EnvJWTSecret      = "TILLWORKS_JWT_SECRET"
	EnvJWTIssuer      = "TILLWORKS_JWT_ISSUER"
	EnvCatalogBaseURL = "TILLWORKS_CATALOG_BASE_URL"
	EnvSalesBaseURL   = "TILLWORKS_SALES_BASE_URL"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Catalog CatalogConfig
	Sales   SalesConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TILLWORKS_APP_ENV" required:"true"`
	Port         string `envconfig:"TILLWORKS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TILLWORKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TILLWORKS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"TILLWORKS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TILLWORKS_REDIS_ADDR"`
	Password     string        `envconfig:"TILLWORKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"TILLWORKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TILLWORKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TILLWORKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TILLWORKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TILLWORKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TILLWORKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"TILLWORKS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"TILLWORKS_JWT_ISSUER" required:"true"`
}

// CatalogConfig points the terminal at the remote catalog service.
type CatalogConfig struct {
	BaseURL  string        `envconfig:"TILLWORKS_CATALOG_BASE_URL" required:"true"`
	Timeout  time.Duration `envconfig:"TILLWORKS_CATALOG_TIMEOUT" default:"5s"`
	CacheTTL time.Duration `envconfig:"TILLWORKS_CATALOG_CACHE_TTL" default:"30s"`
}

// SalesConfig points the terminal at the remote sales/till service.
type SalesConfig struct {
	BaseURL string        `envconfig:"TILLWORKS_SALES_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"TILLWORKS_SALES_TIMEOUT" default:"10s"`
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is applied by envconfig when resolving variables.
	EnvPrefix = "shopwindow"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Theme   ThemeConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPWINDOW_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPWINDOW_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPWINDOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPWINDOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPWINDOW_REDIS_URL"`
	Address      string        `envconfig:"SHOPWINDOW_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"SHOPWINDOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPWINDOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPWINDOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPWINDOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPWINDOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPWINDOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPWINDOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	BaseURL     string        `envconfig:"SHOPWINDOW_CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	HTTPTimeout time.Duration `envconfig:"SHOPWINDOW_CATALOG_HTTP_TIMEOUT" default:"10s"`
	CacheTTL    time.Duration `envconfig:"SHOPWINDOW_CATALOG_CACHE_TTL" default:"5m"`
}

type CartConfig struct {
	RateLimitWindow time.Duration `envconfig:"SHOPWINDOW_CART_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int           `envconfig:"SHOPWINDOW_CART_RATE_LIMIT_MAX" default:"120"`
}

type ThemeConfig struct {
	// TTL bounds how long an idle session keeps its persisted preference.
	TTL time.Duration `envconfig:"SHOPWINDOW_THEME_TTL" default:"720h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPWINDOW_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

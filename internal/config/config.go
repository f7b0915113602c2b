package config

import "github.com/caarlos0/env/v10"

// Config centralizes the service settings.
type Config struct {
	HTTPPort              string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL           string `env:"DATABASE_URL,required"`
	SchemaBootstrap       bool   `env:"SCHEMA_BOOTSTRAP" envDefault:"false"`
	JWTSecret             string `env:"JWT_SECRET"`
	JWTTTLMinutes         int    `env:"JWT_TTL_MINUTES" envDefault:"120"`
	RedisAddr             string `env:"REDIS_ADDR"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB" envDefault:"0"`
	ResultCacheTTLMinutes int    `env:"RESULT_CACHE_TTL_MINUTES" envDefault:"60"`
	SubmitWindowSeconds   int    `env:"SUBMIT_RATE_WINDOW_SECONDS" envDefault:"60"`
	SubmitMax             int    `env:"SUBMIT_RATE_MAX" envDefault:"10"`
	CatalogDir            string `env:"CATALOG_DIR"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

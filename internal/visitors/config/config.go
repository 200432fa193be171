// Package config содержит конфигурацию сервиса журнала посетителей.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "visitlog/pkg/config"
	"visitlog/pkg/logger"
)

// Константы для загрузки конфигурации.
const (
	ServiceName    = "visitors"
	DefaultEnvPath = "deploy/.env"

	LogConfigLoaded     = "visitors configuration loaded"
	ErrFailedLoadConfig = "failed to load visitors configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Logging  LoggingConfig  `yaml:"logging"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Seed     SeedConfig     `yaml:"seed"`
}

// Load загружает конфигурацию из файла envPath, если он есть, и из переменных окружения.
func Load(ctx context.Context, envPath string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("redis_addr", cfg.Redis.ClientConfig().Address()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Bool("seed_enabled", cfg.Seed.Enabled))

	return cfg, nil
}

// Package main реализует служебную команду журнала посетителей: миграции, заполнение и прогрев справочника.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"visitlog/internal/visitors/adapters/cache"
	"visitlog/internal/visitors/adapters/postgres"
	"visitlog/internal/visitors/adapters/services"
	"visitlog/internal/visitors/app"
	"visitlog/internal/visitors/config"
	"visitlog/internal/visitors/db"
	"visitlog/internal/visitors/ports/repositories"
	pkgredis "visitlog/pkg/db/redis"
	"visitlog/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "VISITORS_LOGGER_MODE"
	EnvLoggerLevel = "VISITORS_LOGGER_LEVEL"
	EnvConfigPath  = "VISITORS_CONFIG_PATH"
)

const migrationsDir = "migrations/visitors"

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrResolveSeedActor     = "failed to resolve seed actor"
	ErrSeed                 = "failed to seed database"
	ErrWarmDirectory        = "failed to warm department directory"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted   = "visitors maintenance started"
	LogServiceDone      = "visitors maintenance complete"
	LogClosingDB        = "closing database connections"
	LogInitRepo         = "initializing repositories"
	LogSeedSkipped      = "seeding disabled"
	LogRedisUnavailable = "redis unavailable, department directory warm-up skipped"
	LogDirectoryWarmed  = "department directory warmed"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		configPath := os.Getenv(EnvConfigPath)
		if configPath == "" {
			configPath = config.DefaultEnvPath
		}

		cfg, err := config.Load(ctx, configPath)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		database, err := db.New(ctx, &cfg.Postgres, migrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}
		defer func() {
			log.Info(ctx, LogClosingDB)
			database.Close(ctx)
		}()

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		departments := repoFactory.DepartmentRepository()

		if err := seed(ctx, cfg, departments, app.NewVisitCoordinator(repoFactory.Transactor())); err != nil {
			log.Error(ctx, ErrSeed, zap.Error(err))
			exitCode = 1
			return
		}

		if err := warmDirectory(ctx, cfg, departments); err != nil {
			log.Error(ctx, ErrWarmDirectory, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func seed(
	ctx context.Context,
	cfg *config.Config,
	departments repositories.DepartmentRepository,
	coordinator *app.VisitCoordinator,
) error {
	if !cfg.Seed.Enabled {
		logger.Log(ctx).Info(ctx, LogSeedSkipped)
		return nil
	}

	actorID := cfg.Seed.ActorID
	if cfg.Seed.Token != "" {
		id, err := services.NewJWT(cfg.JWT.SecretKey).ValidateAccessToken(ctx, cfg.Seed.Token)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrResolveSeedActor, err)
		}
		actorID = id
	}

	seeder := app.NewSeeder(departments, coordinator, cfg.Seed.RandomSeed)
	_, err := seeder.Seed(ctx, actorID, cfg.Seed.Departments, cfg.Seed.VisitorsPerType)
	return err
}

func warmDirectory(ctx context.Context, cfg *config.Config, departments repositories.DepartmentRepository) error {
	log := logger.Log(ctx)

	client, err := pkgredis.NewClient(ctx, cfg.Redis.ClientConfig())
	if err != nil {
		log.Warn(ctx, LogRedisUnavailable, zap.Error(err))
		return nil
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Warn(ctx, "failed to close redis client", zap.Error(err))
		}
	}()

	directory := cache.NewDepartmentDirectory(departments, cache.NewRedisDepartmentCache(client, cfg.Redis.DepartmentTTL))

	list, err := departments.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range list {
		if _, err := directory.LookupDepartment(ctx, d.ID); err != nil {
			return err
		}
	}

	log.Info(ctx, LogDirectoryWarmed, zap.Int("departments", len(list)))
	return nil
}

package main

import (
	"context"

	"github.com/mufasadev/finance-analytics/internal/app"
	"github.com/mufasadev/finance-analytics/internal/config"
	"github.com/mufasadev/finance-analytics/internal/di"
	"github.com/mufasadev/finance-analytics/internal/errors"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/api/routers"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/broker/rabbitmq"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/db_client"
	"github.com/mufasadev/finance-analytics/internal/infrastructure/database/memory"
	"github.com/mufasadev/finance-analytics/internal/usecases/interactor"
	"github.com/mufasadev/finance-analytics/pkg/log"
)

const (
	appName = "finance-analytics"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	opts := []log.LoggerOption{log.WithConsoleLogger(), log.WithLogLevel(cfg.Log.Level)}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFileLogger(cfg.Log.File))
	}
	log.Init(appName, opts...)
	logger := log.GetLogger()

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorInvalidConfiguration)
	}

	service := app.NewService(cfg)

	var stores di.Stores
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		stores = di.MemoryStores(memory.NewStore())
	default:
		pgClient := db_client.NewPGClient(cfg.PostgreSQL)
		db, err := pgClient.Connect()
		if err != nil {
			logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheDatabase)
		}
		if cfg.PostgreSQL.MigrateOnStart() {
			if err = pgClient.Migrate(); err != nil {
				logger.Fatal().Err(err).Msg(errors.ErrorFailedToRunMigrations)
			}
		}
		service.OnShutdown(db.Close)
		stores = di.PostgresStores(db)
	}

	var publisher interactor.DecisionPublisher = interactor.NopDecisionPublisher{}
	if cfg.Broker.Enabled() {
		p, err := rabbitmq.NewPublisher(cfg.Broker)
		if err != nil {
			logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheBroker)
		}
		service.OnShutdown(func() {
			if err := p.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close broker connection")
			}
		})
		publisher = p
	}

	container := di.NewContainer(stores, publisher)
	router := routers.NewRouter(container)
	service.Run(ctx, router)
}

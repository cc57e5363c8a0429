package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/domain"
	"github.com/fastygo/homeplanner/internal/config"
	mongoInfra "github.com/fastygo/homeplanner/internal/infrastructure/mongo"
	"github.com/fastygo/homeplanner/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/homeplanner/internal/infrastructure/postgres"
	"github.com/fastygo/homeplanner/internal/services/lifecycle"
	"github.com/fastygo/homeplanner/repository"
	"github.com/fastygo/homeplanner/repository/memory"
	mongoRepo "github.com/fastygo/homeplanner/repository/mongo"
	pgRepo "github.com/fastygo/homeplanner/repository/postgres"
)

type stores struct {
	areas       repository.AreaRepository
	weeklyTasks repository.WeeklyTaskRepository
	contacts    repository.ContactRepository
	probe       monitor.Probe
}

// openStores connects the configured driver and registers its teardown.
func openStores(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongoInfra.Connect(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		manager.Register("mongo", client.Disconnect)
		if cfg.Mongo.EnsureIndexes {
			if err := mongoInfra.EnsureIndexes(ctx, db, logger); err != nil {
				return nil, fmt.Errorf("mongo indexes: %w", err)
			}
		}
		return &stores{
			areas:       mongoRepo.NewAreaRepository(db),
			weeklyTasks: mongoRepo.NewWeeklyTaskRepository(db),
			contacts:    mongoRepo.NewContactRepository(db),
			probe:       mongoInfra.Pinger{Client: client},
		}, nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		manager.Register("postgres", func(context.Context) error {
			pool.Close()
			return nil
		})
		return &stores{
			areas:       pgRepo.NewAreaRepository(pool),
			weeklyTasks: pgRepo.NewWeeklyTaskRepository(pool),
			contacts:    pgRepo.NewContactRepository(pool),
			probe:       pgInfra.Pinger{Pool: pool},
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		areas := memory.NewStore[domain.Area, domain.AreaCreation]()
		return &stores{
			areas:       areas,
			weeklyTasks: memory.NewWeeklyTaskRepository(),
			contacts:    memory.NewContactRepository(),
			probe:       monitor.NewProbe("memory", areas.Ping),
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

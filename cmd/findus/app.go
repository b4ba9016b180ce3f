package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	postgresRepo "github.com/theCalcaholic/findus/internal/adapter/repository/postgres"
	redisRepo "github.com/theCalcaholic/findus/internal/adapter/repository/redis"
	"github.com/theCalcaholic/findus/internal/infrastructure/config"
	"github.com/theCalcaholic/findus/internal/infrastructure/logger"
	"github.com/theCalcaholic/findus/internal/infrastructure/metrics"
	"github.com/theCalcaholic/findus/internal/infrastructure/postgres"
	"github.com/theCalcaholic/findus/internal/infrastructure/redis"
	"github.com/theCalcaholic/findus/internal/usecase"
)

// app bundles the wired infrastructure shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	pool        *pgxpool.Pool
	redisClient *goredis.Client

	txManager       *postgresRepo.TxManager
	accountRepo     *postgresRepo.AccountRepository
	transactionRepo *postgresRepo.TransactionRepository
	idGen           *postgresRepo.ULIDGenerator
	retrier         *postgresRepo.Retrier
	cache           usecase.Cache
	metrics         *metrics.Metrics
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	log.Debug().Msg("connected to postgres")

	a := &app{
		cfg:             cfg,
		logger:          log,
		pool:            pool,
		txManager:       postgresRepo.NewTxManager(pool),
		accountRepo:     postgresRepo.NewAccountRepository(pool),
		transactionRepo: postgresRepo.NewTransactionRepository(pool),
		idGen:           postgresRepo.NewULIDGenerator(),
		retrier:         postgresRepo.NewRetrier(log),
		metrics:         metrics.New(),
	}

	// The series cache is optional. Without Redis every plot recomputes
	// from storage, which is fine for small histories.
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(connectCtx, cfg.RedisURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		a.redisClient = redisClient
		a.cache = redisRepo.NewCache(redisClient)
		log.Debug().Msg("connected to redis")
	}

	return a, nil
}

func (a *app) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("closing redis client")
		}
	}
	a.pool.Close()
}

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-arena/internal/config"
	"github.com/gokatarajesh/trivia-arena/internal/db/repository"
	"github.com/gokatarajesh/trivia-arena/internal/question"
	"github.com/gokatarajesh/trivia-arena/internal/question/external"
)

// LoadBank wires the configured bank sources, loads the question bank once
// and releases the connections it opened. The bank is an in-memory snapshot
// after this; nothing reads Postgres or Redis again.
//
// A load where no source yields a usable bank is contained: the caller gets
// an empty bank and every game ends immediately.
func LoadBank(ctx context.Context, cfg *config.App, logger zerolog.Logger) ([]question.Question, error) {
	var curated question.CuratedSource
	if cfg.Postgres.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		curated = repository.NewQuestionRepository(pool)
	} else {
		logger.Info().Msg("postgres not configured; curated bank source disabled")
	}

	var bankCache question.BankCache
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn().Err(err).Msg("redis close error")
			}
		}()
		bankCache = question.NewCache(redisClient, cfg.Bank.CacheKey, cfg.Bank.CacheTTL)
	} else {
		logger.Info().Msg("redis not configured; bank cache disabled")
	}

	var remote question.RemoteSource
	if cfg.Bank.RemoteURL != "" {
		remote = external.NewBankClient(cfg.Bank.RemoteURL, nil)
	}

	var local *question.FileSource
	if cfg.Bank.File != "" {
		local = question.NewFileSource(cfg.Bank.File)
	}

	store := question.NewStore(curated, remote, local, bankCache, logger)
	bank, err := store.LoadBank(ctx)
	if err != nil {
		var loadErr *question.BankLoadError
		if !errors.As(err, &loadErr) {
			return nil, fmt.Errorf("load question bank: %w", err)
		}
		logger.Error().Err(loadErr).Msg("question bank unavailable; continuing with empty bank")
		return nil, nil
	}
	return bank, nil
}

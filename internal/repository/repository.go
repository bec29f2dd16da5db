package repository

import (
	"btc-signal-bot/config"
	"btc-signal-bot/pkg/cache"
	"btc-signal-bot/pkg/logger"
)

type Repository struct {
	MarketRepo MarketRepository
}

func NewRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) *Repository {
	return &Repository{
		MarketRepo: NewCoinGeckoRepository(cfg, log, inmemoryCache),
	}
}

package service

import (
	"btc-signal-bot/config"
	"btc-signal-bot/internal/repository"
	"btc-signal-bot/pkg/logger"
)

type Service struct {
	SignalService SignalService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	notifier Notifier,
) *Service {
	return &Service{
		SignalService: NewSignalService(cfg, log, repo.MarketRepo, notifier),
	}
}

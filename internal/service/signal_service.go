package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"btc-signal-bot/config"
	"btc-signal-bot/internal/indicator"
	"btc-signal-bot/internal/model"
	"btc-signal-bot/internal/repository"
	"btc-signal-bot/pkg/logger"
	"btc-signal-bot/pkg/telegram"
)

var (
	// ErrMissingCredentials means the telegram secrets are absent. The
	// scheduler disables future runs but the process stays up.
	ErrMissingCredentials = errors.New("telegram bot token and chat id must be set")

	// ErrDataUnavailable means the price provider was unreachable or
	// returned unusable data. The cycle is abandoned; the next scheduled
	// run retries naturally.
	ErrDataUnavailable = errors.New("could not retrieve price data")
)

// Notifier is the alert sink consumed by the evaluator.
type Notifier interface {
	Configured() bool
	Send(ctx context.Context, text string) error
}

type SignalService interface {
	// CheckAndNotify runs exactly one fetch, compute, decide, notify cycle.
	CheckAndNotify(ctx context.Context) error
	// LastEvaluation returns the most recent completed evaluation, or nil.
	LastEvaluation() *model.Evaluation
}

type signalService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketRepo repository.MarketRepository
	notifier   Notifier

	mu   sync.RWMutex
	last *model.Evaluation
}

func NewSignalService(cfg *config.Config, log *logger.Logger, marketRepo repository.MarketRepository, notifier Notifier) SignalService {
	return &signalService{
		cfg:        cfg,
		log:        log,
		marketRepo: marketRepo,
		notifier:   notifier,
	}
}

func (s *signalService) CheckAndNotify(ctx context.Context) error {
	s.log.InfoContext(ctx, "Running daily bitcoin check")

	if !s.notifier.Configured() {
		return ErrMissingCredentials
	}

	period := s.cfg.Signal.RSIPeriod
	prices, err := s.marketRepo.GetDailyCloses(ctx, period+1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	rsi, err := indicator.RSI(prices, period)
	if err != nil {
		if errors.Is(err, indicator.ErrInsufficientData) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	threshold := s.cfg.Signal.OversoldThreshold
	eval := &model.Evaluation{
		RSI:       rsi,
		Threshold: threshold,
		Triggered: rsi < threshold,
		CheckedAt: time.Now(),
	}
	defer s.storeEvaluation(eval)

	if !eval.Triggered {
		s.log.InfoContext(ctx, "No buy signal",
			logger.Float64Field("rsi", rsi),
			logger.Float64Field("threshold", threshold))
		return nil
	}

	message := telegram.FormatBuySignalMessage(rsi, threshold, eval.CheckedAt)
	if err := s.notifier.Send(ctx, message); err != nil {
		// The opportunity is lost until the next cycle; a failed send does
		// not fail the cycle.
		s.log.ErrorContext(ctx, "Failed to deliver buy signal alert",
			logger.ErrorField(err),
			logger.Float64Field("rsi", rsi))
		return nil
	}

	eval.Notified = true
	s.log.InfoContext(ctx, "Buy signal alert sent",
		logger.Float64Field("rsi", rsi),
		logger.Float64Field("threshold", threshold))
	return nil
}

func (s *signalService) LastEvaluation() *model.Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *signalService) storeEvaluation(eval *model.Evaluation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = eval
}

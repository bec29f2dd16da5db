package cmd

import (
	"context"

	"btc-signal-bot/config"
	"btc-signal-bot/pkg/cache"
	"btc-signal-bot/pkg/logger"
	"btc-signal-bot/pkg/telegram"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
)

type AppDependency struct {
	cfg         *config.Config
	log         *logger.Logger
	echo        *echo.Echo
	cache       cache.Cache
	notifier    *telegram.Notifier
	telegramBot *telebot.Bot
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	// A missing token is not fatal: the notifier stays unconfigured and the
	// scheduler disables itself after the first check.
	var bot *telebot.Bot
	if cfg.Telegram.BotToken != "" {
		bot, err = telebot.NewBot(telebot.Settings{
			Token:  cfg.Telegram.BotToken,
			Poller: &telebot.LongPoller{Timeout: cfg.Telegram.Timeout},
			OnError: func(err error, c telebot.Context) {
				log.Error("Telegram bot error", zap.Error(err))
			},
		})
		if err != nil {
			log.Error("Failed to create telegram bot", zap.Error(err))
			bot = nil
		}
	}

	var sender telegram.Sender
	if bot != nil {
		sender = bot
	}

	return &AppDependency{
		cfg:         cfg,
		log:         log,
		echo:        echo.New(),
		cache:       cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		notifier:    telegram.NewNotifier(&cfg.Telegram, log, sender),
		telegramBot: bot,
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	return d.log.Sync()
}

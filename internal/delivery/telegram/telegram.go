package telegram

import (
	"context"
	"time"

	"btc-signal-bot/config"
	"btc-signal-bot/internal/service"
	"btc-signal-bot/pkg/logger"
	"btc-signal-bot/pkg/telegram"
	"btc-signal-bot/pkg/utils"

	"gopkg.in/telebot.v3"
)

// TelegramBotHandler serves the interactive bot commands. The bot may be
// nil when credentials are missing; the handler then stays idle.
type TelegramBotHandler struct {
	ctx     context.Context
	cfg     *config.Config
	log     *logger.Logger
	bot     *telebot.Bot
	service *service.Service
}

func NewTelegramBotHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	service *service.Service,
) *TelegramBotHandler {
	return &TelegramBotHandler{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		bot:     bot,
		service: service,
	}
}

func (t *TelegramBotHandler) Start() {
	if t.bot == nil {
		t.log.Info("Telegram bot commands disabled: no credentials")
		return
	}

	t.log.Info("Starting Telegram bot...")
	t.RegisterHandlers()
	t.bot.Start()
}

func (t *TelegramBotHandler) Stop() {
	if t.bot == nil {
		return
	}
	t.log.Info("Stopping Telegram bot...")

	ctx, cancel := context.WithTimeout(t.ctx, 10*time.Second)
	defer cancel()

	stopDone := make(chan struct{}, 1)
	go func() {
		t.bot.Stop()
		stopDone <- struct{}{}
	}()

	select {
	case <-stopDone:
		t.log.Info("Telegram bot stopped successfully")
	case <-ctx.Done():
		t.log.Warn("Timeout while stopping bot, forcing shutdown")
	}
}

func (t *TelegramBotHandler) RegisterHandlers() {
	t.bot.Handle("/check", t.handleCheck)
	t.bot.Handle("/rsi", t.handleRSI)
}

func (t *TelegramBotHandler) handleCheck(c telebot.Context) error {
	utils.GoSafe(func() {
		_ = t.service.SignalService.CheckAndNotify(t.ctx)
	})
	return c.Send("Running a bitcoin check now, you will get an alert if the RSI is oversold.")
}

func (t *TelegramBotHandler) handleRSI(c telebot.Context) error {
	eval := t.service.SignalService.LastEvaluation()
	if eval == nil {
		return c.Send("No check has completed yet, try /check first.")
	}
	return c.Send(telegram.FormatStatusMessage(eval.RSI, eval.Threshold, eval.CheckedAt), telebot.ModeMarkdown)
}

package telegram

import (
	"context"
	"fmt"
	"strconv"

	"btc-signal-bot/config"
	"btc-signal-bot/pkg/logger"

	"gopkg.in/telebot.v3"
)

// Sender is the subset of telebot.Bot used by the notifier. Kept narrow so
// tests can substitute a fake.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Notifier delivers alert messages to a single configured chat.
type Notifier struct {
	cfg    *config.TelegramConfig
	log    *logger.Logger
	sender Sender
	chat   telebot.Recipient
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger, sender Sender) *Notifier {
	n := &Notifier{
		cfg:    cfg,
		log:    log,
		sender: sender,
	}
	if cfg.ChatID != "" {
		if id, err := strconv.ParseInt(cfg.ChatID, 10, 64); err == nil {
			n.chat = telebot.ChatID(id)
		} else {
			log.Warn("Invalid telegram chat id", logger.StringField("chat_id", cfg.ChatID))
		}
	}
	return n
}

// Configured reports whether both credentials resolved to a usable
// destination. When false the scheduler disables itself.
func (n *Notifier) Configured() bool {
	return n.sender != nil && n.cfg.BotToken != "" && n.chat != nil
}

// Send delivers a Markdown-formatted message to the configured chat.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Configured() {
		return fmt.Errorf("telegram notifier is not configured")
	}

	_, err := n.sender.Send(n.chat, text, telebot.ModeMarkdown)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram message", logger.ErrorField(err))
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

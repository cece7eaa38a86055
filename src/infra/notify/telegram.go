package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contre95/rattlesnake/src/features/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends scan summaries to a single Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier from config. It returns nil without
// error when Telegram is disabled; callers must skip wiring it in that case.
func NewTelegramNotifier(cfg *config.Telegram) (*TelegramNotifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Token == "" || cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram notifications need both token and chat_id")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	slog.Info("Telegram notifier ready", "account", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: cfg.ChatID}, nil
}

// Notify sends one message to the configured chat.
func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

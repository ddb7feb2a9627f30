package notifier

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"

	"surgewatch/internal/logging"
	"surgewatch/internal/utils"
)

// TelegramSender pushes alert texts to a fixed operations chat. One message
// per second keeps us well inside the Bot API limits.
type TelegramSender struct {
	bot     *bot.Bot
	chatID  int64
	limiter *rate.Limiter
	logger  *logging.Logger
}

func NewTelegramSender(token, chatID string, logger *logging.Logger) (*TelegramSender, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatID, err)
	}
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	return &TelegramSender{
		bot:     b,
		chatID:  id,
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		logger:  logger,
	}, nil
}

// Send delivers the message with retry.
func (t *TelegramSender) Send(ctx context.Context, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit: %w", err)
	}
	return utils.Retry(t.logger, 3, time.Second, func() error {
		_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    t.chatID,
			Text:      text,
			ParseMode: "Markdown",
		})
		if err != nil {
			return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", t.chatID, err)
		}
		return nil
	})
}

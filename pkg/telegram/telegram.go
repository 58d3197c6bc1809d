package telegram

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"

	"sentiment-trading/config"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/ratelimit"
)

// Sender is the part of *telebot.Bot the notifier needs.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Notifier pushes messages to Telegram chats, honouring a global rate and a
// one-message-per-second limit per chat.
type Notifier struct {
	sender        Sender
	log           *logger.Logger
	globalLimiter *rate.Limiter
	chatLimiters  *ratelimit.LimiterStore
}

// NewBot creates a bot used only for outgoing messages; it is never started.
func NewBot(cfg config.Telegram) (*telebot.Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: cfg.TimeoutDuration},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return bot, nil
}

func NewNotifier(cfg config.Telegram, sender Sender, log *logger.Logger) *Notifier {
	perSecond := cfg.MaxGlobalRequestPerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Notifier{
		sender:        sender,
		log:           log,
		globalLimiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
		chatLimiters:  ratelimit.NewLimiterStore(rate.Limit(1), 1),
	}
}

// SendMessage waits for both limiters and sends a MarkdownV2 message to chatID.
func (n *Notifier) SendMessage(ctx context.Context, chatID int64, message string) error {
	if err := n.globalLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for global telegram limit: %w", err)
	}
	if err := n.chatLimiters.Wait(ctx, strconv.FormatInt(chatID, 10)); err != nil {
		return fmt.Errorf("wait for chat telegram limit: %w", err)
	}

	if _, err := n.sender.Send(&telebot.Chat{ID: chatID}, message, telebot.ModeMarkdownV2); err != nil {
		n.log.ErrorContext(ctx, "failed to send telegram message",
			logger.Field("chat_id", chatID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

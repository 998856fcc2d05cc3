package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends operator alerts.
type Notifier interface {
	SendMessage(text string) error
}

// Option configures the bot notifier.
type Option func(*botNotifier)

// WithSource prefixes every message with the emitting service name so alerts
// from several services can share one chat.
func WithSource(name string) Option {
	return func(n *botNotifier) { n.source = name }
}

type botNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	source string
}

// NewClient creates a Telegram notifier posting to chatID. An empty bot token
// yields a NopNotifier so alerting stays optional.
func NewClient(botToken string, chatID int64, opts ...Option) (Notifier, error) {
	if botToken == "" {
		return NopNotifier{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	n := &botNotifier{bot: bot, chatID: chatID}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *botNotifier) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, withSource(n.source, text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := n.bot.Send(msg)
	return err
}

func withSource(source, text string) string {
	if source == "" {
		return text
	}
	return "[" + source + "] " + text
}

// NopNotifier discards messages.
type NopNotifier struct{}

// SendMessage implements Notifier.
func (NopNotifier) SendMessage(string) error { return nil }

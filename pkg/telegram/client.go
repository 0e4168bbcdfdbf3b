package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(text string) error
}

// sender is the part of tgbotapi.BotAPI used by client.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// client is an implementation of Notifier.
type client struct {
	bot    sender
	chatID int64
}

// NewClient creates a new Telegram notifier client.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends a message to the configured Telegram chat.
func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}

// SendMessages sends every part in order and stops at the first failure.
func SendMessages(n Notifier, parts []string) error {
	for _, part := range parts {
		if err := n.SendMessage(part); err != nil {
			return err
		}
	}
	return nil
}

type nopNotifier struct{}

// NewNopNotifier returns a Notifier that drops every message. Used when Telegram is disabled.
func NewNopNotifier() Notifier { return nopNotifier{} }

func (nopNotifier) SendMessage(string) error { return nil }

package notifier

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramDispatcher implements Dispatcher on a Telegram bot chat
type TelegramDispatcher struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramDispatcher authenticates the bot and targets one chat
func NewTelegramDispatcher(token string, chatID int64) (*TelegramDispatcher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramDispatcher{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Send delivers the alert as one chat message
func (t *TelegramDispatcher) Send(subject, body string) error {
	msg := tgbotapi.NewMessage(t.chatID, subject+"\n\n"+body)
	_, err := t.bot.Send(msg)
	return err
}

package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// reply sends a plain text message
func (b *Bot) reply(chatID int64, text string) {
	if b.api == nil {
		return // For testing
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// replyWithMarkup sends a text message with a reply markup attached
func (b *Bot) replyWithMarkup(chatID int64, text string, markup interface{}) {
	if b.api == nil {
		return // For testing
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendDocument sends a file attachment
func (b *Bot) sendDocument(doc tgbotapi.DocumentConfig) error {
	if b.api == nil {
		return nil // For testing
	}

	_, err := b.api.Send(doc)
	return err
}

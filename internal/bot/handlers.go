package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			if message.Chat != nil {
				b.reply(message.Chat.ID, msgInternalError)
			}
		}
	}()

	ctx := context.Background()

	// Handle commands
	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(message)
		case "cancel":
			b.handleCancel(message)
		case "export":
			b.handleExport(ctx, message)
		case "status":
			b.handleStatus(message)
		default:
			b.reply(message.Chat.ID, msgUnknownCommand)
		}
		return
	}

	// Not a command: continue the user's conversation, if any
	sess, ok := b.sessions.Get(message.From.ID)
	if !ok {
		b.reply(message.Chat.ID, msgNoIntake)
		return
	}
	b.handleConversation(ctx, message, sess)
}

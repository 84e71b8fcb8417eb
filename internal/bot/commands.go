package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"locustbot/internal/intake"
)

// User-facing replies. The bot serves Russian-speaking reporters.
const (
	msgStart          = "Привет! Пришли фото или видео саранчи."
	msgPhotoReprompt  = "Пожалуйста, пришли фото или видео саранчи."
	msgLocationPrompt = "Теперь отправь геолокацию."
	msgCommentPrompt  = "Теперь напиши комментарий."
	msgSaved          = "Готово! Спасибо за сообщение."
	msgSaveFailed     = "Не удалось сохранить сообщение. Попробуй ещё раз позже."
	msgCancelled      = "Отменено."
	msgAccessDenied   = "Эта команда доступна только администратору."
	msgNoReports      = "Пока нет ни одного сообщения."
	msgExportFailed   = "Не удалось выгрузить сообщения."
	msgUnknownCommand = "Неизвестная команда. Отправь /start, чтобы сообщить о саранче."
	msgNoIntake       = "Чтобы сообщить о саранче, отправь /start."
	msgInternalError  = "Произошла ошибка. Попробуй ещё раз."

	locationButtonText = "📍 Отправить локацию"
)

// handleStart begins a report intake. A /start while an intake is already
// in flight discards the previous session entirely, it is never merged.
func (b *Bot) handleStart(message *tgbotapi.Message) {
	userID := message.From.ID

	if old, ok := b.sessions.Get(userID); ok {
		b.removeMedia(old)
	}
	b.sessions.Put(intake.NewSession(userID, message.Chat.ID))

	b.reply(message.Chat.ID, msgStart)
}

// handleCancel aborts an active intake without touching the backend
func (b *Bot) handleCancel(message *tgbotapi.Message) {
	userID := message.From.ID

	if sess, ok := b.sessions.Get(userID); ok {
		if _, action := intake.Next(sess.State, intake.Event{Kind: intake.EventCancel}); action == intake.ActionCancel {
			b.removeMedia(sess)
			b.sessions.Delete(userID)
		}
	}

	b.replyWithMarkup(message.Chat.ID, msgCancelled, tgbotapi.NewRemoveKeyboard(false))
}

// handleStatus replies with a liveness confirmation to the administrator
func (b *Bot) handleStatus(message *tgbotapi.Message) {
	if !b.admins[message.From.ID] {
		b.reply(message.Chat.ID, msgAccessDenied)
		return
	}

	uptime := time.Since(b.started).Round(time.Second)
	b.reply(message.Chat.ID, fmt.Sprintf("Бот работает. Аптайм: %s.", uptime))
}

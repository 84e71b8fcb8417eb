package bot

import (
	"context"
	"fmt"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"locustbot/internal/intake"
)

// classifyMessage maps a Telegram message onto a conversation event
func classifyMessage(message *tgbotapi.Message) intake.Event {
	switch {
	case len(message.Photo) > 0:
		// Telegram lists photo variants smallest first
		ph := message.Photo[len(message.Photo)-1]
		return intake.Event{Kind: intake.EventPhoto, FileID: ph.FileID, FileUniqueID: ph.FileUniqueID}
	case message.Video != nil:
		return intake.Event{Kind: intake.EventVideo, FileID: message.Video.FileID, FileUniqueID: message.Video.FileUniqueID}
	case message.Location != nil:
		return intake.Event{Kind: intake.EventLocation, Latitude: message.Location.Latitude, Longitude: message.Location.Longitude}
	case message.Text != "":
		return intake.Event{Kind: intake.EventText, Text: message.Text}
	default:
		return intake.Event{Kind: intake.EventOther}
	}
}

// handleConversation advances a user's intake by one step
func (b *Bot) handleConversation(ctx context.Context, message *tgbotapi.Message, sess *intake.Session) {
	ev := classifyMessage(message)
	next, action := intake.Next(sess.State, ev)

	switch action {
	case intake.ActionAcceptMedia:
		kind := intake.MediaPhoto
		if ev.Kind == intake.EventVideo {
			kind = intake.MediaVideo
		}

		path := filepath.Join(b.mediaDir, fmt.Sprintf("%d_%s%s", sess.UserID, ev.FileUniqueID, kind.Ext()))
		if err := b.files.Download(ctx, ev.FileID, path); err != nil {
			b.logger.Error("Failed to download media",
				zap.Error(err),
				zap.Int64("user_id", sess.UserID),
				zap.String("file_id", ev.FileID),
			)
			// Treat like bad input: stay in the photo state and re-prompt
			b.reply(message.Chat.ID, msgPhotoReprompt)
			return
		}

		sess.MediaPath = path
		sess.MediaKind = kind
		sess.State = next
		b.replyWithMarkup(message.Chat.ID, msgLocationPrompt, locationKeyboard())

	case intake.ActionRepromptPhoto:
		b.reply(message.Chat.ID, msgPhotoReprompt)

	case intake.ActionAcceptLocation:
		sess.Latitude = ev.Latitude
		sess.Longitude = ev.Longitude
		sess.HasLocation = true
		sess.State = next
		b.replyWithMarkup(message.Chat.ID, msgCommentPrompt, tgbotapi.NewRemoveKeyboard(false))

	case intake.ActionRepromptLocation:
		b.replyWithMarkup(message.Chat.ID, msgLocationPrompt, locationKeyboard())

	case intake.ActionAcceptComment:
		sess.Comment = ev.Text
		sess.State = next
		b.finishIntake(ctx, message.Chat.ID, sess)

	case intake.ActionRepromptComment:
		b.reply(message.Chat.ID, msgCommentPrompt)
	}
}

// locationKeyboard builds the one-shot "share my location" reply keyboard
func locationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(locationButtonText),
		),
	)
}

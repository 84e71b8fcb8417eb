package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"locustbot/internal/intake"
	"locustbot/internal/models"
)

// finishIntake persists the completed session and terminates the
// conversation. The local media file and the session are discarded
// whether persistence succeeds or not; there is no retry path.
func (b *Bot) finishIntake(ctx context.Context, chatID int64, sess *intake.Session) {
	defer func() {
		b.removeMedia(sess)
		b.sessions.Delete(sess.UserID)
	}()

	if !sess.Complete() {
		b.logger.Error("Session reached persistence with missing fields", zap.Int64("user_id", sess.UserID))
		b.reply(chatID, msgSaveFailed)
		return
	}

	if err := b.persistReport(ctx, sess); err != nil {
		b.logger.Error("Failed to persist report",
			zap.Error(err),
			zap.Int64("user_id", sess.UserID),
		)
		b.reply(chatID, msgSaveFailed)
		return
	}

	b.reply(chatID, msgSaved)
}

// persistReport uploads the media and inserts one report row.
// At most one upload and one insert happen per session. An upload that
// succeeds before a failing insert leaves the object behind; the bucket
// is append-only and the orphan is accepted.
func (b *Bot) persistReport(ctx context.Context, sess *intake.Session) error {
	data, err := os.ReadFile(sess.MediaPath)
	if err != nil {
		return fmt.Errorf("read media file: %w", err)
	}

	// Object name is {userId}_{fileUniqueId}.{ext}, same as the local file
	objectName := filepath.Base(sess.MediaPath)

	url, err := b.objects.Upload(ctx, objectName, data, sess.MediaKind.ContentType())
	if err != nil {
		return fmt.Errorf("upload media: %w", err)
	}

	report := &models.Report{
		CreatedAt: time.Now().UTC(),
		UserID:    strconv.FormatInt(sess.UserID, 10),
		Latitude:  sess.Latitude,
		Longitude: sess.Longitude,
		Comment:   sess.Comment,
		PhotoURL:  url,
	}
	if _, err := b.db.SaveReport(ctx, report); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"locustbot/internal/intake"
)

// FileDownloader fetches a Telegram file to a local path.
// It is an interface so conversation tests can run without a live API.
type FileDownloader interface {
	Download(ctx context.Context, fileID, destPath string) error
}

type telegramDownloader struct {
	api *tgbotapi.BotAPI
}

// Download resolves the file's temporary URL via getFile and streams it to
// destPath, creating the parent directory if needed.
func (d *telegramDownloader) Download(ctx context.Context, fileID, destPath string) error {
	file, err := d.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("get file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(d.api.Token), nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file %s: unexpected status %s", fileID, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

// removeMedia deletes the session's downloaded media file, best-effort
func (b *Bot) removeMedia(sess *intake.Session) {
	if sess.MediaPath == "" {
		return
	}
	if err := os.Remove(sess.MediaPath); err != nil && !os.IsNotExist(err) {
		b.logger.Warn("Failed to remove media file",
			zap.String("path", sess.MediaPath),
			zap.Error(err),
		)
	}
}

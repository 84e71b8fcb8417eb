package bot

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"locustbot/internal/models"
)

// handleExport sends all reports to the administrator as a CSV document
func (b *Bot) handleExport(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	if !b.admins[userID] {
		b.logger.Warn("Unauthorized export attempt",
			zap.Int64("user_id", userID),
			zap.String("username", message.From.UserName),
		)
		b.reply(message.Chat.ID, msgAccessDenied)
		return
	}

	reports, err := b.db.ListReports(ctx)
	if err != nil {
		b.logger.Error("Failed to list reports for export", zap.Error(err))
		b.reply(message.Chat.ID, msgExportFailed)
		return
	}

	if len(reports) == 0 {
		b.reply(message.Chat.ID, msgNoReports)
		return
	}

	data, err := buildReportsCSV(reports)
	if err != nil {
		b.logger.Error("Failed to build export CSV", zap.Error(err))
		b.reply(message.Chat.ID, msgExportFailed)
		return
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("reports_%s.csv", uuid.New()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		b.logger.Error("Failed to write export file", zap.Error(err))
		b.reply(message.Chat.ID, msgExportFailed)
		return
	}
	// Remove the temp file even when sending fails
	defer os.Remove(path)

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FilePath(path))
	if err := b.sendDocument(doc); err != nil {
		b.logger.Error("Failed to send export document", zap.Error(err))
		b.reply(message.Chat.ID, msgExportFailed)
	}
}

// buildReportsCSV serializes reports with the fixed column order.
// encoding/csv quotes fields containing delimiters, quotes or newlines,
// so free-text comments cannot break the row structure.
func buildReportsCSV(reports []models.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "createdAt", "latitude", "longitude", "comment", "photoUrl"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range reports {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.UTC().Format(time.RFC3339),
			strconv.FormatFloat(r.Latitude, 'f', -1, 64),
			strconv.FormatFloat(r.Longitude, 'f', -1, 64),
			r.Comment,
			r.PhotoURL,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

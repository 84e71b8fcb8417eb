package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"locustbot/internal/intake"
	"locustbot/internal/objstore"
	"locustbot/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api      *tgbotapi.BotAPI
	db       storage.Storage
	objects  objstore.ObjectStore
	sessions *intake.SessionStore
	admins   map[int64]bool
	files    FileDownloader
	mediaDir string
	logger   *zap.Logger
	started  time.Time
}

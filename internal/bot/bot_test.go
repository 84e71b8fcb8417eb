package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"locustbot/internal/intake"
	objstubs "locustbot/internal/objstore/stubs"
	"locustbot/internal/storage/stubs"
)

// Note: We can't easily mock tgbotapi.BotAPI, so tests focus on internal logic
// without actually sending messages to Telegram

const (
	testBaseURL = "https://example.supabase.co"
	testBucket  = "photos"
	adminID     = int64(42)
)

// stubDownloader writes canned bytes instead of fetching from Telegram
type stubDownloader struct {
	data []byte
	err  error
}

func (d *stubDownloader) Download(ctx context.Context, fileID, destPath string) error {
	if d.err != nil {
		return d.err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(destPath, d.data, 0o600)
}

func newTestBot(t *testing.T) (*Bot, *stubs.MockDB, *objstubs.MockStore) {
	t.Helper()

	db := stubs.NewMockDB()
	objects := objstubs.NewMockStore(testBaseURL, testBucket)

	b := &Bot{
		api:      nil, // Not needed for internal logic tests
		db:       db,
		objects:  objects,
		sessions: intake.NewSessionStore(),
		admins:   map[int64]bool{adminID: true},
		files:    &stubDownloader{data: []byte("fake-jpeg-bytes")},
		mediaDir: t.TempDir(),
		logger:   zap.NewNop(), // Use nop logger for tests
		started:  time.Now(),
	}
	return b, db, objects
}

func commandMessage(userID, chatID int64, text string) *tgbotapi.Message {
	length := len(text)
	if i := strings.Index(text, " "); i != -1 {
		length = i
	}
	return &tgbotapi.Message{
		From:     &tgbotapi.User{ID: userID},
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func photoMessage(userID, chatID int64, fileID, fileUniqueID string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Photo: []tgbotapi.PhotoSize{
			{FileID: fileID + "_small", FileUniqueID: fileUniqueID + "_small", Width: 90, Height: 90},
			{FileID: fileID, FileUniqueID: fileUniqueID, Width: 1280, Height: 960},
		},
	}
}

func videoMessage(userID, chatID int64, fileID, fileUniqueID string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From:  &tgbotapi.User{ID: userID},
		Chat:  &tgbotapi.Chat{ID: chatID},
		Video: &tgbotapi.Video{FileID: fileID, FileUniqueID: fileUniqueID},
	}
}

func locationMessage(userID, chatID int64, lat, lon float64) *tgbotapi.Message {
	return &tgbotapi.Message{
		From:     &tgbotapi.User{ID: userID},
		Chat:     &tgbotapi.Chat{ID: chatID},
		Location: &tgbotapi.Location{Latitude: lat, Longitude: lon},
	}
}

func TestBot_HappyPath(t *testing.T) {
	b, db, objects := newTestBot(t)
	ctx := context.Background()
	userID := int64(123)
	chatID := int64(456)

	b.handleMessage(commandMessage(userID, chatID, "/start"))

	sess, ok := b.sessions.Get(userID)
	if !ok {
		t.Fatal("Expected session to be created by /start")
	}
	if sess.State != intake.StatePhoto {
		t.Errorf("Expected photo state, got %v", sess.State)
	}

	// Photo: the highest-resolution variant is downloaded
	b.handleMessage(photoMessage(userID, chatID, "file42", "uniq42"))

	if sess.State != intake.StateLocation {
		t.Fatalf("Expected location state after photo, got %v", sess.State)
	}
	wantPath := filepath.Join(b.mediaDir, "123_uniq42.jpg")
	if sess.MediaPath != wantPath {
		t.Errorf("Expected media path %q, got %q", wantPath, sess.MediaPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("Expected downloaded media file to exist: %v", err)
	}

	b.handleMessage(locationMessage(userID, chatID, 51.1, 71.4))

	if sess.State != intake.StateComment {
		t.Fatalf("Expected comment state after location, got %v", sess.State)
	}

	b.handleMessage(textMessage(userID, chatID, "Swarm near field edge"))

	reports, err := db.ListReports(ctx)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("Expected exactly one report, got %d", len(reports))
	}

	r := reports[0]
	if r.UserID != "123" {
		t.Errorf("Expected user ID \"123\", got %q", r.UserID)
	}
	if r.Latitude != 51.1 || r.Longitude != 71.4 {
		t.Errorf("Expected coordinates (51.1, 71.4), got (%v, %v)", r.Latitude, r.Longitude)
	}
	if r.Comment != "Swarm near field edge" {
		t.Errorf("Unexpected comment: %q", r.Comment)
	}
	wantURL := testBaseURL + "/storage/v1/object/public/photos/123_uniq42.jpg"
	if r.PhotoURL != wantURL {
		t.Errorf("Expected photo URL %q, got %q", wantURL, r.PhotoURL)
	}

	data, contentType, ok := objects.Object("123_uniq42.jpg")
	if !ok {
		t.Fatal("Expected media object to be uploaded")
	}
	if string(data) != "fake-jpeg-bytes" {
		t.Errorf("Unexpected uploaded bytes: %q", data)
	}
	if contentType != "image/jpeg" {
		t.Errorf("Expected content type image/jpeg, got %q", contentType)
	}

	// Local media file and session are discarded after persistence
	if _, err := os.Stat(wantPath); !os.IsNotExist(err) {
		t.Error("Expected local media file to be removed after persistence")
	}
	if _, ok := b.sessions.Get(userID); ok {
		t.Error("Expected session to be destroyed after persistence")
	}
}

func TestBot_VideoReport(t *testing.T) {
	b, db, objects := newTestBot(t)
	ctx := context.Background()
	userID := int64(123)
	chatID := int64(456)

	b.handleMessage(commandMessage(userID, chatID, "/start"))
	b.handleMessage(videoMessage(userID, chatID, "vid7", "uniq7"))

	sess, ok := b.sessions.Get(userID)
	if !ok {
		t.Fatal("Expected session to exist")
	}
	if sess.MediaKind != intake.MediaVideo {
		t.Errorf("Expected video media kind, got %v", sess.MediaKind)
	}
	if filepath.Ext(sess.MediaPath) != ".mp4" {
		t.Errorf("Expected .mp4 extension, got %q", sess.MediaPath)
	}

	b.handleMessage(locationMessage(userID, chatID, 43.2, 76.9))
	b.handleMessage(textMessage(userID, chatID, "видео роя"))

	reports, err := db.ListReports(ctx)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("Expected one report, got %d", len(reports))
	}

	_, contentType, ok := objects.Object("123_uniq7.mp4")
	if !ok {
		t.Fatal("Expected video object to be uploaded")
	}
	if contentType != "video/mp4" {
		t.Errorf("Expected content type video/mp4, got %q", contentType)
	}
}

func TestBot_WrongInputReprompts(t *testing.T) {
	b, db, _ := newTestBot(t)
	ctx := context.Background()
	userID := int64(123)
	chatID := int64(456)

	b.handleMessage(commandMessage(userID, chatID, "/start"))
	sess, _ := b.sessions.Get(userID)

	// Plain text in the photo state never advances and never mutates
	b.handleMessage(textMessage(userID, chatID, "вот саранча"))
	if sess.State != intake.StatePhoto {
		t.Errorf("Expected to stay in photo state, got %v", sess.State)
	}
	if sess.MediaPath != "" {
		t.Errorf("Expected no media recorded, got %q", sess.MediaPath)
	}

	b.handleMessage(photoMessage(userID, chatID, "file1", "uniq1"))
	savedPath := sess.MediaPath

	// A second photo in the location state is rejected and must not
	// overwrite the already recorded media
	b.handleMessage(photoMessage(userID, chatID, "file2", "uniq2"))
	if sess.State != intake.StateLocation {
		t.Errorf("Expected to stay in location state, got %v", sess.State)
	}
	if sess.MediaPath != savedPath {
		t.Errorf("Expected media path unchanged, got %q", sess.MediaPath)
	}
	if sess.HasLocation {
		t.Error("Expected no location recorded")
	}

	reports, err := db.ListReports(ctx)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("Expected no reports persisted, got %d", len(reports))
	}
}

func TestBot_DownloadFailureRepromptsPhoto(t *testing.T) {
	b, _, _ := newTestBot(t)
	userID := int64(123)
	chatID := int64(456)

	b.files = &stubDownloader{err: fmt.Errorf("telegram file server unavailable")}

	b.handleMessage(commandMessage(userID, chatID, "/start"))
	b.handleMessage(photoMessage(userID, chatID, "file1", "uniq1"))

	sess, ok := b.sessions.Get(userID)
	if !ok {
		t.Fatal("Expected session to survive a failed download")
	}
	if sess.State != intake.StatePhoto {
		t.Errorf("Expected to stay in photo state after failed download, got %v", sess.State)
	}
	if sess.MediaPath != "" {
		t.Errorf("Expected no media recorded, got %q", sess.MediaPath)
	}
}

func TestBot_CancelDiscardsSession(t *testing.T) {
	b, db, objects := newTestBot(t)
	ctx := context.Background()
	userID := int64(123)
	chatID := int64(456)

	b.handleMessage(commandMessage(userID, chatID, "/start"))
	b.handleMessage(photoMessage(userID, chatID, "file1", "uniq1"))

	sess, _ := b.sessions.Get(userID)
	mediaPath := sess.MediaPath

	b.handleMessage(commandMessage(userID, chatID, "/cancel"))

	if _, ok := b.sessions.Get(userID); ok {
		t.Error("Expected session to be discarded by /cancel")
	}
	if _, err := os.Stat(mediaPath); !os.IsNotExist(err) {
		t.Error("Expected downloaded media to be removed by /cancel")
	}

	// No backend calls happen on cancel
	reports, err := db.ListReports(ctx)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("Expected no reports after cancel, got %d", len(reports))
	}
	if objects.Len() != 0 {
		t.Errorf("Expected no uploads after cancel, got %d", objects.Len())
	}
}

func TestBot_StartRestartsIntake(t *testing.T) {
	b, db, _ := newTestBot(t)
	ctx := context.Background()
	userID := int64(123)
	chatID := int64(456)

	b.handleMessage(commandMessage(userID, chatID, "/start"))
	b.handleMessage(photoMessage(userID, chatID, "file1", "uniq1"))
	b.handleMessage(locationMessage(userID, chatID, 51.1, 71.4))

	old, _ := b.sessions.Get(userID)
	oldMedia := old.MediaPath

	// A second /start discards the partial session entirely
	b.handleMessage(commandMessage(userID, chatID, "/start"))

	sess, ok := b.sessions.Get(userID)
	if !ok {
		t.Fatal("Expected a fresh session after /start")
	}
	if sess.State != intake.StatePhoto {
		t.Errorf("Expected fresh session in photo state, got %v", sess.State)
	}
	if sess.MediaPath != "" || sess.HasLocation {
		t.Error("Expected fresh session without carried-over fields")
	}
	if _, err := os.Stat(oldMedia); !os.IsNotExist(err) {
		t.Error("Expected abandoned media file to be removed")
	}

	// Completing the new intake persists exactly one report
	b.handleMessage(photoMessage(userID, chatID, "file2", "uniq2"))
	b.handleMessage(locationMessage(userID, chatID, 43.2, 76.9))
	b.handleMessage(textMessage(userID, chatID, "second try"))

	reports, err := db.ListReports(ctx)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("Expected exactly one report, got %d", len(reports))
	}
	if reports[0].Comment != "second try" {
		t.Errorf("Expected report from the second intake, got %q", reports[0].Comment)
	}
}

func TestBot_PersistenceFailureStillEndsConversation(t *testing.T) {
	b, db, objects := newTestBot(t)
	ctx := context.Background()
	userID := int64(123)
	chatID := int64(456)

	objects.UploadErr = fmt.Errorf("bucket unavailable")

	b.handleMessage(commandMessage(userID, chatID, "/start"))
	b.handleMessage(photoMessage(userID, chatID, "file1", "uniq1"))
	sess, _ := b.sessions.Get(userID)
	mediaPath := sess.MediaPath
	b.handleMessage(locationMessage(userID, chatID, 51.1, 71.4))
	b.handleMessage(textMessage(userID, chatID, "swarm"))

	// The conversation terminates and cleans up even though nothing was saved
	if _, ok := b.sessions.Get(userID); ok {
		t.Error("Expected session to be destroyed despite persistence failure")
	}
	if _, err := os.Stat(mediaPath); !os.IsNotExist(err) {
		t.Error("Expected media file to be removed despite persistence failure")
	}

	reports, err := db.ListReports(ctx)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("Expected no reports after failed upload, got %d", len(reports))
	}
}

func TestBot_MessageWithoutIntake(t *testing.T) {
	b, db, _ := newTestBot(t)
	ctx := context.Background()

	// A message from a user with no active session must not create state
	b.handleMessage(textMessage(123, 456, "просто сообщение"))

	if _, ok := b.sessions.Get(123); ok {
		t.Error("Expected no session to be created")
	}
	reports, _ := db.ListReports(ctx)
	if len(reports) != 0 {
		t.Errorf("Expected no reports, got %d", len(reports))
	}
}

func TestBot_PanicRecovery(t *testing.T) {
	b, _, _ := newTestBot(t)

	// A message without a sender would panic in the dispatch path
	message := &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 456},
		Text: "text",
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("handleMessage panicked: %v", r)
		}
	}()

	b.handleMessage(message)
}

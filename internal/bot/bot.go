package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"schedulebot/internal/auth"
	"schedulebot/internal/schedule"
	"schedulebot/internal/storage"
)

// Bot связывает Telegram с хранилищем и движком расписания
type Bot struct {
	api        *tgbotapi.BotAPI
	sessions   *storage.SessionRepository
	auth       *auth.Authenticator
	conv       *auth.ConversationTracker
	importer   *schedule.Importer
	schedule   *schedule.Service
	uploadsDir string
	log        *zap.Logger
	now        func() time.Time
	send       func(c tgbotapi.Chattable) (tgbotapi.Message, error)
	download   func(doc *tgbotapi.Document) (string, error)
}

func New(
	api *tgbotapi.BotAPI,
	sessions *storage.SessionRepository,
	authenticator *auth.Authenticator,
	importer *schedule.Importer,
	svc *schedule.Service,
	uploadsDir string,
	log *zap.Logger,
) *Bot {
	b := &Bot{
		api:        api,
		sessions:   sessions,
		auth:       authenticator,
		conv:       auth.NewConversationTracker(5 * time.Minute),
		importer:   importer,
		schedule:   svc,
		uploadsDir: uploadsDir,
		log:        log,
		now:        time.Now,
	}
	b.send = api.Send
	b.download = b.downloadDocument
	return b
}

// Run запускает long polling и обрабатывает обновления до закрытия канала
func (b *Bot) Run() error {
	if _, err := b.api.RemoveWebhook(); err != nil {
		return fmt.Errorf("ошибка при снятии вебхука: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("ошибка получения обновлений: %w", err)
	}

	b.log.Info("бот запущен")
	for update := range updates {
		// Обновления от разных чатов независимы
		go b.handleUpdate(update)
	}
	return nil
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("паника при обработке обновления", zap.Any("panic", r))
		}
	}()

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if msg.Document != nil {
		b.handleDocument(msg)
		return
	}
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}
	if msg.Text != "" {
		b.handleText(msg)
	}
}

// Отправка текстового сообщения
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	if _, err := b.send(msg); err != nil {
		b.log.Warn("ошибка отправки сообщения", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// Отправка сообщения с основной клавиатурой
func (b *Bot) replyWithMenu(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = mainKeyboard()
	if _, err := b.send(msg); err != nil {
		b.log.Warn("ошибка отправки сообщения", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

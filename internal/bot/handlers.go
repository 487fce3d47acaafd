package bot

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"schedulebot/internal/auth"
	"schedulebot/internal/entity"
	"schedulebot/internal/schedule"
)

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "login":
		b.conv.Begin(telegramID(msg))
		b.reply(msg.Chat.ID, "Введите ваш логин:")
	case "logout":
		b.handleLogout(msg)
	case "cancel":
		b.conv.Abort(telegramID(msg))
		b.reply(msg.Chat.ID, "Ввод отменён.")
	default:
		b.reply(msg.Chat.ID, "Команда не распознана. Используйте кнопки.")
	}
}

// Обработка команды /start
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	user, err := b.sessions.Resolve(telegramID(msg))
	if err != nil {
		b.log.Error("ошибка поиска сессии", zap.Error(err))
		b.reply(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if user != nil {
		b.replyWithMenu(msg.Chat.ID,
			fmt.Sprintf("Вы уже авторизованы как %s (%s)", user.DisplayName, user.Role))
		return
	}
	b.reply(msg.Chat.ID, "Привет. Чтобы продолжить, выполните /login")
}

func (b *Bot) handleLogout(msg *tgbotapi.Message) {
	cleared, err := b.auth.Logout(telegramID(msg))
	if err != nil {
		b.log.Error("ошибка выхода", zap.Error(err))
		b.reply(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if cleared {
		b.reply(msg.Chat.ID, "Вы вышли. Для входа используйте /login")
	} else {
		b.reply(msg.Chat.ID, "Вы не были привязаны к учётной записи.")
	}
}

// Обработка обычного текста: сначала шаги диалога /login, затем кнопки меню.
// Диалог ведётся по отправителю, а не по чату: в группе несколько человек
// могут авторизовываться параллельно.
func (b *Bot) handleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	senderID := telegramID(msg)
	text := strings.TrimSpace(msg.Text)

	switch b.conv.Stage(senderID) {
	case auth.StageLogin:
		b.conv.SetLogin(senderID, text)
		b.reply(chatID, "Введите пароль:")
		return
	case auth.StagePassword:
		login, ok := b.conv.TakeLogin(senderID)
		if !ok {
			b.reply(chatID, "Время ввода истекло. Попробуйте /login заново.")
			return
		}
		user, err := b.auth.Login(login, text, senderID)
		if errors.Is(err, auth.ErrAuthFailed) {
			b.reply(chatID, "Неверный логин или пароль. Попробуйте /login заново.")
			return
		}
		if err != nil {
			b.log.Error("ошибка авторизации", zap.Error(err))
			b.reply(chatID, "Произошла ошибка. Попробуйте позже.")
			return
		}
		b.replyWithMenu(chatID,
			fmt.Sprintf("Успешно! Вы вошли как %s (%s).", user.DisplayName, user.Role))
		return
	}

	b.handleMenuChoice(msg, text)
}

func (b *Bot) handleMenuChoice(msg *tgbotapi.Message, text string) {
	chatID := msg.Chat.ID

	user, err := b.sessions.Resolve(telegramID(msg))
	if err != nil {
		b.log.Error("ошибка поиска сессии", zap.Error(err))
		b.reply(chatID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if user == nil {
		b.reply(chatID, "Сначала /login")
		return
	}

	switch text {
	case btnToday:
		day, ok := schedule.ResolveRelative(b.now(), 0)
		if !ok {
			b.reply(chatID, "Сегодня выходной.")
			return
		}
		b.sendDay(chatID, user, day)
	case btnTomorrow:
		day, ok := schedule.ResolveRelative(b.now(), 1)
		if !ok {
			b.reply(chatID, "Завтра выходной.")
			return
		}
		b.sendDay(chatID, user, day)
	case btnWeek:
		b.sendWeek(chatID, user)
	case btnLogout:
		b.handleLogout(msg)
	default:
		if entity.IsWeekday(text) {
			b.sendDay(chatID, user, schedule.ResolveWeekday(b.now(), text))
			return
		}
		b.reply(chatID, "Команда не распознана. Используйте кнопки.")
	}
}

func (b *Bot) sendDay(chatID int64, user *entity.User, day schedule.Day) {
	entries, err := b.schedule.ForDay(user, day.Weekday)
	if errors.Is(err, schedule.ErrNotAllowed) {
		b.reply(chatID, "Команда доступна только учителям и ученикам.")
		return
	}
	if err != nil {
		b.log.Error("ошибка запроса расписания", zap.Error(err))
		b.reply(chatID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	b.reply(chatID, schedule.FormatDay(entries, user.Role, day.Date))
}

// Недельный вид: по сообщению на каждый день, пустые дни пропускаются
func (b *Bot) sendWeek(chatID int64, user *entity.User) {
	for _, day := range schedule.ResolveWeek(b.now()) {
		entries, err := b.schedule.ForDay(user, day.Weekday)
		if errors.Is(err, schedule.ErrNotAllowed) {
			b.reply(chatID, "Команда доступна только учителям и ученикам.")
			return
		}
		if err != nil {
			b.log.Error("ошибка запроса расписания", zap.Error(err))
			b.reply(chatID, "Произошла ошибка. Попробуйте позже.")
			return
		}
		if len(entries) == 0 {
			continue
		}
		b.reply(chatID, schedule.FormatDay(entries, user.Role, day.Date))
	}
}

// Обработка присланного файла расписания (только для администратора)
func (b *Bot) handleDocument(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	user, err := b.sessions.Resolve(telegramID(msg))
	if err != nil {
		b.log.Error("ошибка поиска сессии", zap.Error(err))
		b.reply(chatID, "Произошла ошибка. Попробуйте позже.")
		return
	}
	if user == nil || user.Role != entity.RoleAdmin {
		b.reply(chatID, "Доступ запрещён. Только администратор может загружать расписание.")
		return
	}

	doc := msg.Document
	name := doc.FileName
	// Старый формат .xls не поддерживается, принимаем только .xlsx
	if !strings.HasSuffix(name, ".xlsx") {
		b.reply(chatID, "Нужен файл .xlsx")
		return
	}

	localPath, err := b.download(doc)
	if err != nil {
		b.log.Error("ошибка скачивания файла", zap.String("file", name), zap.Error(err))
		b.reply(chatID, "Не удалось получить файл. Попробуйте ещё раз.")
		return
	}

	count, err := b.importer.ImportFile(localPath)
	if err != nil {
		var missing *schedule.MissingColumnsError
		if !errors.As(err, &missing) {
			b.log.Error("ошибка загрузки расписания", zap.Error(err))
		}
		// Администратору показывается причина, как и при ошибке колонок
		b.reply(chatID, "Ошибка при загрузке: "+err.Error())
		return
	}
	b.reply(chatID, fmt.Sprintf("Расписание загружено и таблица обновлена: %d записей.", count))
}

func (b *Bot) downloadDocument(doc *tgbotapi.Document) (string, error) {
	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		return "", fmt.Errorf("ошибка получения ссылки на файл: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("ошибка скачивания файла: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ошибка скачивания файла: статус %s", resp.Status)
	}

	if err := os.MkdirAll(b.uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания каталога загрузок: %w", err)
	}
	localPath := filepath.Join(b.uploadsDir, filepath.Base(doc.FileName))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	return localPath, nil
}

// Внешний идентификатор — id пользователя Telegram, не чата
func telegramID(msg *tgbotapi.Message) string {
	return strconv.Itoa(msg.From.ID)
}

package auth

import (
	"sync"
	"time"
)

// Stage — шаг диалога авторизации
type Stage int

const (
	StageNone     Stage = iota // Диалог не начат
	StageLogin                 // Ждём логин
	StagePassword              // Ждём пароль
)

type conversation struct {
	stage   Stage
	login   string // Логин, введённый на первом шаге; нигде не сохраняется
	updated time.Time
}

// ConversationTracker хранит состояние диалога /login по внешнему
// идентификатору отправителя (id пользователя Telegram, не чата: в группе
// диалоги разных людей не должны смешиваться).
// Брошенный диалог истекает по TTL, чтобы логин не висел в памяти.
type ConversationTracker struct {
	mu     sync.Mutex
	ttl    time.Duration
	byUser map[string]*conversation
}

func NewConversationTracker(ttl time.Duration) *ConversationTracker {
	return &ConversationTracker{ttl: ttl, byUser: make(map[string]*conversation)}
}

// Begin начинает (или перезапускает) диалог авторизации
func (t *ConversationTracker) Begin(externalID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byUser[externalID] = &conversation{stage: StageLogin, updated: time.Now()}
}

// Stage возвращает текущий шаг диалога; просроченный диалог сбрасывается
func (t *ConversationTracker) Stage(externalID string) Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.byUser[externalID]
	if !ok {
		return StageNone
	}
	if time.Since(c.updated) > t.ttl {
		delete(t.byUser, externalID)
		return StageNone
	}
	return c.stage
}

// SetLogin запоминает введённый логин и переводит диалог к вводу пароля
func (t *ConversationTracker) SetLogin(externalID, login string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.byUser[externalID]
	if !ok {
		return
	}
	c.login = login
	c.stage = StagePassword
	c.updated = time.Now()
}

// TakeLogin отдаёт сохранённый логин и завершает диалог
func (t *ConversationTracker) TakeLogin(externalID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.byUser[externalID]
	if !ok || c.stage != StagePassword {
		return "", false
	}
	delete(t.byUser, externalID)
	if time.Since(c.updated) > t.ttl {
		return "", false
	}
	return c.login, true
}

// Abort сбрасывает диалог (команда /cancel или любой сбой)
func (t *ConversationTracker) Abort(externalID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byUser, externalID)
}

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"schedulebot/internal/entity"
	"schedulebot/internal/storage"
)

// ErrAuthFailed возвращается и для неизвестного логина, и для неверного
// пароля: наружу не должно быть видно, какие логины существуют.
var ErrAuthFailed = errors.New("неверный логин или пароль")

type Authenticator struct {
	users    *storage.UserRepository
	sessions *storage.SessionRepository
}

func NewAuthenticator(users *storage.UserRepository, sessions *storage.SessionRepository) *Authenticator {
	return &Authenticator{users: users, sessions: sessions}
}

// Login проверяет логин и пароль и при успехе привязывает telegram_id
// к учётной записи (старая привязка этого telegram_id заменяется).
func (a *Authenticator) Login(login, password, telegramID string) (*entity.User, error) {
	user, err := a.users.GetByLogin(login)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil || !verifyPassword(user.PasswordHash, password) {
		return nil, ErrAuthFailed
	}

	if err := a.sessions.Create(user.ID, telegramID); err != nil {
		return nil, fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return user, nil
}

// Logout снимает привязку telegram_id; возвращает, была ли она
func (a *Authenticator) Logout(telegramID string) (bool, error) {
	return a.sessions.Delete(telegramID)
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword используется при создании учётных записей
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"schedulebot/internal/entity"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create привязывает telegram_id к учётной записи.
// Старая сессия этого telegram_id удаляется в той же транзакции:
// один telegram_id — одна сессия.
func (r *SessionRepository) Create(userID, telegramID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM user_sessions WHERE telegram_id = ?`, telegramID); err != nil {
		return fmt.Errorf("ошибка удаления старой сессии: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO user_sessions (id, user_id, telegram_id, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), userID, telegramID, time.Now()); err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return tx.Commit()
}

// Resolve возвращает учётную запись, привязанную к telegram_id.
// nil — если сессии нет либо её пользователь удалён.
func (r *SessionRepository) Resolve(telegramID string) (*entity.User, error) {
	row := r.db.QueryRow(
		`SELECT u.id, u.login, u.password_hash, u.role, u.name_tuter, u.telegram_id, u.is_junior, u.is_senior
		 FROM user_sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.telegram_id = ?`, telegramID)

	var u entity.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.DisplayName,
		&u.TelegramID, &u.IsJunior, &u.IsSenior)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска сессии: %w", err)
	}
	return &u, nil
}

// Delete удаляет сессию telegram_id; возвращает, была ли она
func (r *SessionRepository) Delete(telegramID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM user_sessions WHERE telegram_id = ?`, telegramID)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"schedulebot/internal/entity"
)

// TeacherFilter выбирает подмножество учителей при раскрытии групповых меток
type TeacherFilter int

const (
	AllTeachers TeacherFilter = iota
	JuniorTeachers
	SeniorTeachers
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, login, password_hash, role, name_tuter, telegram_id, is_junior, is_senior`

func scanUser(row *sql.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.DisplayName,
		&u.TelegramID, &u.IsJunior, &u.IsSenior)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
	}
	return &u, nil
}

// GetByLogin возвращает пользователя по логину, nil если не найден
func (r *UserRepository) GetByLogin(login string) (*entity.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE login = ?`, login)
	return scanUser(row)
}

// GetByID возвращает пользователя по идентификатору, nil если не найден
func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// FindTeacherByName ищет учителя по точному совпадению ФИО, nil если не найден
func (r *UserRepository) FindTeacherByName(name string) (*entity.User, error) {
	row := r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE role = ? AND name_tuter = ?`,
		entity.RoleTeacher, name)
	return scanUser(row)
}

// ListTeachers возвращает учителей по фильтру (все / младшая / старшая школа)
func (r *UserRepository) ListTeachers(filter TeacherFilter) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ?`
	switch filter {
	case JuniorTeachers:
		query += ` AND is_junior = 1`
	case SeniorTeachers:
		query += ` AND is_senior = 1`
	}

	rows, err := r.db.Query(query, entity.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса учителей: %w", err)
	}
	defer rows.Close()

	var teachers []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.DisplayName,
			&u.TelegramID, &u.IsJunior, &u.IsSenior); err != nil {
			return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
		}
		teachers = append(teachers, u)
	}
	return teachers, rows.Err()
}

// Create добавляет новую учётную запись (используется утилитой userctl)
func (r *UserRepository) Create(u *entity.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, login, password_hash, role, name_tuter, is_junior, is_senior)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Login, u.PasswordHash, u.Role, u.DisplayName, u.IsJunior, u.IsSenior)
	if err != nil {
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}

package entity

import (
	"database/sql"
	"time"
)

// Роли пользователей
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Коды учебных дней (ПН..ПТ), в порядке ISO-нумерации
var Weekdays = []string{"ПН", "ВТ", "СР", "ЧТ", "ПТ"}

// IsWeekday сообщает, является ли строка одним из пяти кодов дня
func IsWeekday(code string) bool {
	for _, w := range Weekdays {
		if w == code {
			return true
		}
	}
	return false
}

// User представляет учётную запись (админ, учитель или ученик)
type User struct {
	ID           string         // Уникальный идентификатор (uuid)
	Login        string         // Логин для входа (уникальный)
	PasswordHash string         // bcrypt-хэш пароля
	Role         string         // "admin", "teacher" или "student"
	DisplayName  string         // ФИО учителя либо название класса ученика
	TelegramID   sql.NullString // Устаревшая привязка; перенесена в user_sessions
	IsJunior     bool           // Учитель младшей школы
	IsSenior     bool           // Учитель старшей школы
}

// UserSession — привязка telegram_id к учётной записи.
// На один telegram_id существует не больше одной сессии.
type UserSession struct {
	ID         string
	UserID     string
	TelegramID string
	CreatedAt  time.Time
}

// ScheduleEntry представляет одно занятие в расписании
type ScheduleEntry struct {
	ID        string         // Уникальный идентификатор записи (uuid)
	TimeStart sql.NullString // Время начала в формате ЧЧ:ММ (может быть NULL)
	TimeEnd   sql.NullString // Время окончания в формате ЧЧ:ММ (может быть NULL)
	Cabinet   sql.NullString // Кабинет (может быть NULL)
	Teacher   sql.NullString // ФИО учителя (может быть NULL)
	ClassName sql.NullString // Название класса (может быть NULL)
	Weekday   sql.NullString // Код дня недели: ПН..ПТ
	Subject   sql.NullString // Название предмета (может быть NULL)
}

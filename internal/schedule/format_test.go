package schedule

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schedulebot/internal/entity"
)

func ns(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func TestFormatDayEmpty(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) // понедельник
	text := FormatDay(nil, entity.RoleStudent, date)

	assert.Contains(t, text, "<b>Понедельник. 31.08</b>")
	assert.Contains(t, text, EmptyDayMessage)
}

func TestFormatDayForStudent(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // вторник
	entries := []entity.ScheduleEntry{
		{
			TimeStart: ns("09:00"),
			TimeEnd:   ns("09:45"),
			Subject:   ns("Математика"),
			Teacher:   ns("Иванов И.И."),
			Cabinet:   ns("21"),
		},
		{
			TimeStart: ns("10:00"),
			Subject:   ns("Физика"),
		},
	}

	text := FormatDay(entries, entity.RoleStudent, date)

	assert.Contains(t, text, "<b>Вторник. 01.09</b>")
	assert.Contains(t, text, "1. <b>09:00–09:45</b> | Математика")
	assert.Contains(t, text, "📚<b>Преподаватель:</b> Иванов И.И.")
	assert.Contains(t, text, "🏫<b>Кабинет:</b> 21")
	// Без времени окончания период — только начало
	assert.Contains(t, text, "2. <b>10:00</b> | Физика")
	// Ученик не видит название собственного класса
	assert.NotContains(t, text, "Класс")
}

func TestFormatDayForTeacher(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	entries := []entity.ScheduleEntry{
		{
			TimeStart: ns("09:00"),
			TimeEnd:   ns("09:45"),
			Subject:   ns("Математика"),
			Teacher:   ns("Иванов И.И."),
			ClassName: ns("9"),
			Cabinet:   ns("21"),
		},
	}

	text := FormatDay(entries, entity.RoleTeacher, date)

	assert.Contains(t, text, "🧒🏼<b>Класс:</b> 9")
	assert.Contains(t, text, "🏫<b>Кабинет:</b> 21")
	assert.NotContains(t, text, "Преподаватель")
}

func TestFormatDayBlocksSeparated(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	entries := []entity.ScheduleEntry{
		{TimeStart: ns("09:00"), Subject: ns("Математика")},
		{TimeStart: ns("10:00"), Subject: ns("Физика")},
	}

	text := FormatDay(entries, entity.RoleStudent, date)
	assert.Equal(t, 1, strings.Count(text, "\n\n"), "занятия разделяются пустой строкой")
}

package schedule

import (
	"fmt"
	"strings"
	"time"

	"schedulebot/internal/entity"
)

// EmptyDayMessage показывается вместо пустого списка занятий
const EmptyDayMessage = "Нет занятий на выбранный день."

// Полные названия дней, индекс — ISO-номер дня недели
var longWeekdayNames = [8]string{
	1: "Понедельник",
	2: "Вторник",
	3: "Среда",
	4: "Четверг",
	5: "Пятница",
	6: "Суббота",
	7: "Воскресенье",
}

// FormatDay строит HTML-текст расписания на день с заголовком вида
// «Понедельник. 02.09»
func FormatDay(entries []entity.ScheduleEntry, role string, date time.Time) string {
	header := fmt.Sprintf("<b>%s. %s</b>", longWeekdayNames[isoWeekday(date)], date.Format("02.01"))
	return header + "\n" + formatEntries(entries, role)
}

func formatEntries(entries []entity.ScheduleEntry, role string) string {
	if len(entries) == 0 {
		return EmptyDayMessage
	}

	blocks := make([]string, 0, len(entries))
	for i, e := range entries {
		period := e.TimeStart.String
		if e.TimeEnd.Valid {
			period = fmt.Sprintf("%s–%s", e.TimeStart.String, e.TimeEnd.String)
		}

		var parts []string
		switch role {
		case entity.RoleStudent:
			parts = append(parts, fmt.Sprintf("%d. <b>%s</b> | %s", i+1, period, e.Subject.String))
			if e.Teacher.Valid {
				parts = append(parts, "📚<b>Преподаватель:</b> "+e.Teacher.String)
			}
			if e.Cabinet.Valid {
				parts = append(parts, "🏫<b>Кабинет:</b> "+e.Cabinet.String)
			}
		case entity.RoleTeacher:
			parts = append(parts, fmt.Sprintf("%d. <b>%s</b> | %s", i+1, period, e.Subject.String))
			if e.ClassName.Valid {
				parts = append(parts, "🧒🏼<b>Класс:</b> "+e.ClassName.String)
			}
			if e.Cabinet.Valid {
				parts = append(parts, "🏫<b>Кабинет:</b> "+e.Cabinet.String)
			}
		default:
			parts = append(parts, fmt.Sprintf("%d. %s | %s", i+1, period, e.Subject.String))
		}
		blocks = append(blocks, strings.Join(parts, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

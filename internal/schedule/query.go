package schedule

import (
	"errors"
	"time"

	"schedulebot/internal/entity"
	"schedulebot/internal/storage"
)

// ErrNotAllowed — расписание есть только у учителей и учеников
var ErrNotAllowed = errors.New("команда доступна только учителям и ученикам")

// Day — конкретная дата с её кодом дня недели
type Day struct {
	Date    time.Time
	Weekday string
}

// isoWeekday возвращает номер дня недели по ISO: ПН=1 .. ВС=7
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// ResolveRelative резолвит «сегодня» (offsetDays=0) или «завтра» (1).
// ok=false — дата приходится на выходной.
func ResolveRelative(now time.Time, offsetDays int) (Day, bool) {
	date := now.AddDate(0, 0, offsetDays)
	n := isoWeekday(date)
	if n > len(entity.Weekdays) {
		return Day{}, false
	}
	return Day{Date: date, Weekday: entity.Weekdays[n-1]}, true
}

// ResolveWeekday резолвит код ПН..ПТ в дату этого дня на текущей неделе
func ResolveWeekday(now time.Time, code string) Day {
	target := 0
	for i, w := range entity.Weekdays {
		if w == code {
			target = i + 1
			break
		}
	}
	delta := target - isoWeekday(now)
	return Day{Date: now.AddDate(0, 0, delta), Weekday: code}
}

// ResolveWeek возвращает пять дней ПН..ПТ текущей недели,
// независимо от того, будний сегодня день или выходной
func ResolveWeek(now time.Time) []Day {
	days := make([]Day, 0, len(entity.Weekdays))
	for _, code := range entity.Weekdays {
		days = append(days, ResolveWeekday(now, code))
	}
	return days
}

// Service отвечает на запросы расписания с учётом роли
type Service struct {
	entries *storage.ScheduleRepository
}

func NewService(entries *storage.ScheduleRepository) *Service {
	return &Service{entries: entries}
}

// ForDay возвращает занятия пользователя на день: учитель ищется по своему
// ФИО, ученик — по названию своего класса
func (s *Service) ForDay(user *entity.User, weekday string) ([]entity.ScheduleEntry, error) {
	switch user.Role {
	case entity.RoleTeacher:
		return s.entries.FindByTeacherAndWeekday(user.DisplayName, weekday)
	case entity.RoleStudent:
		return s.entries.FindByClassAndWeekday(user.DisplayName, weekday)
	default:
		return nil, ErrNotAllowed
	}
}

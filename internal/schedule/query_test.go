package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedulebot/internal/entity"
)

// 2026-09-02 — среда
var wednesday = time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)

func TestResolveRelative(t *testing.T) {
	day, ok := ResolveRelative(wednesday, 0)
	require.True(t, ok)
	assert.Equal(t, "СР", day.Weekday)
	assert.Equal(t, wednesday, day.Date)

	day, ok = ResolveRelative(wednesday, 1)
	require.True(t, ok)
	assert.Equal(t, "ЧТ", day.Weekday)

	// Пятница + 1 = суббота: выходной
	friday := wednesday.AddDate(0, 0, 2)
	_, ok = ResolveRelative(friday, 1)
	assert.False(t, ok)

	saturday := wednesday.AddDate(0, 0, 3)
	_, ok = ResolveRelative(saturday, 0)
	assert.False(t, ok)

	// Воскресенье + 1 = понедельник следующей недели
	sunday := wednesday.AddDate(0, 0, 4)
	day, ok = ResolveRelative(sunday, 1)
	require.True(t, ok)
	assert.Equal(t, "ПН", day.Weekday)
}

func TestResolveWeekday(t *testing.T) {
	day := ResolveWeekday(wednesday, "ПН")
	assert.Equal(t, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), day.Date)
	assert.Equal(t, "ПН", day.Weekday)

	day = ResolveWeekday(wednesday, "ПТ")
	assert.Equal(t, time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC), day.Date)
}

func TestResolveWeekFromWednesday(t *testing.T) {
	days := ResolveWeek(wednesday)
	require.Len(t, days, 5)

	assert.Equal(t, "ПН", days[0].Weekday)
	assert.Equal(t, 31, days[0].Date.Day(), "понедельник этой недели — 31 августа")
	assert.Equal(t, "ПТ", days[4].Weekday)
	assert.Equal(t, 4, days[4].Date.Day(), "пятница этой недели — 4 сентября")
}

func TestResolveWeekFromSunday(t *testing.T) {
	// Неделя считается от текущей даты даже в выходной
	sunday := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	days := ResolveWeek(sunday)
	require.Len(t, days, 5)
	assert.Equal(t, 31, days[0].Date.Day())
	assert.Equal(t, 4, days[4].Date.Day())
}

func TestForDayRejectsAdmin(t *testing.T) {
	svc := NewService(nil)
	admin := &entity.User{Role: entity.RoleAdmin, DisplayName: "Admin"}

	_, err := svc.ForDay(admin, "ПН")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

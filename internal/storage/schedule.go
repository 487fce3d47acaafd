package storage

import (
	"database/sql"
	"fmt"

	"schedulebot/internal/entity"
)

type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ReplaceAll атомарно заменяет всё расписание: старые записи удаляются,
// новые вставляются в одной транзакции. Пустой набор просто очищает таблицу.
func (r *ScheduleRepository) ReplaceAll(entries []entity.ScheduleEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM schedules`); err != nil {
		return fmt.Errorf("ошибка очистки расписания: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO schedules (id, time_start, time_end, cabinet, teacher, class_name, weekday, subject)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.ID, e.TimeStart, e.TimeEnd, e.Cabinet,
			e.Teacher, e.ClassName, e.Weekday, e.Subject); err != nil {
			return fmt.Errorf("ошибка вставки записи расписания: %w", err)
		}
	}
	return tx.Commit()
}

const scheduleColumns = `id, time_start, time_end, cabinet, teacher, class_name, weekday, subject`

// FindByTeacherAndWeekday возвращает занятия учителя на день, по времени начала
func (r *ScheduleRepository) FindByTeacherAndWeekday(teacher, weekday string) ([]entity.ScheduleEntry, error) {
	rows, err := r.db.Query(
		`SELECT `+scheduleColumns+` FROM schedules
		 WHERE weekday = ? AND teacher = ?
		 ORDER BY time_start ASC`, weekday, teacher)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса расписания: %w", err)
	}
	return scanEntries(rows)
}

// FindByClassAndWeekday возвращает занятия класса на день, по времени начала
func (r *ScheduleRepository) FindByClassAndWeekday(className, weekday string) ([]entity.ScheduleEntry, error) {
	rows, err := r.db.Query(
		`SELECT `+scheduleColumns+` FROM schedules
		 WHERE weekday = ? AND class_name = ?
		 ORDER BY time_start ASC`, weekday, className)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса расписания: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]entity.ScheduleEntry, error) {
	defer rows.Close()

	var entries []entity.ScheduleEntry
	for rows.Next() {
		var e entity.ScheduleEntry
		if err := rows.Scan(&e.ID, &e.TimeStart, &e.TimeEnd, &e.Cabinet,
			&e.Teacher, &e.ClassName, &e.Weekday, &e.Subject); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи расписания: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

package schedule

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"schedulebot/internal/entity"
	"schedulebot/internal/storage"
)

// Обязательные колонки таблицы расписания
var requiredColumns = []string{"subject", "weekday", "time_start", "class_name"}

// Групповые метки в колонке teacher
const (
	aliasAllTeachers    = "все"
	aliasJuniorTeachers = "младшая школа"
	aliasSeniorTeachers = "старшая школа"
)

// MissingColumnsError — в таблице нет обязательных колонок
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("в файле нет обязательных колонок: %s; найдены: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// Importer загружает таблицу расписания и целиком заменяет ей старое.
// Групповые метки в колонке teacher раскрываются в записи по каждому учителю.
type Importer struct {
	users   *storage.UserRepository
	entries *storage.ScheduleRepository
	log     *zap.Logger
}

func NewImporter(users *storage.UserRepository, entries *storage.ScheduleRepository, log *zap.Logger) *Importer {
	return &Importer{users: users, entries: entries, log: log}
}

// ImportFile читает первый лист xlsx-файла и заменяет расписание.
// Возвращает число записанных строк.
func (imp *Importer) ImportFile(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения листа: %w", err)
	}
	return imp.importRows(rows)
}

// importRows проверяет колонки, нормализует строки и атомарно заменяет
// расписание. Первая строка — заголовок.
func (imp *Importer) importRows(rows [][]string) (int, error) {
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	columns := make(map[string]int, len(header))
	found := make([]string, 0, len(header))
	for i, name := range header {
		normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		if normalized == "" {
			continue
		}
		columns[normalized] = i
		found = append(found, normalized)
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return 0, &MissingColumnsError{Missing: missing, Found: found}
	}

	var entries []entity.ScheduleEntry
	for rowNum, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		base := entity.ScheduleEntry{
			TimeStart: nullString(parseTimeOfDay(cell("time_start"))),
			TimeEnd:   nullString(parseTimeOfDay(cell("time_end"))),
			Cabinet:   nullString(cell("cabinet")),
			ClassName: nullString(normalizeClassName(cell("class_name"))),
			Weekday:   nullString(cell("weekday")),
			Subject:   nullString(cell("subject")),
		}

		teacherRaw := cell("teacher")
		teachers, err := imp.expandTeachers(teacherRaw)
		if err != nil {
			return 0, err
		}

		if len(teachers) == 0 {
			// Учитель не указан либо не найден — строка сохраняется без учителя
			if teacherRaw != "" {
				imp.log.Warn("учитель из расписания не найден",
					zap.String("teacher", teacherRaw),
					zap.Int("row", rowNum+2))
			}
			base.ID = uuid.NewString()
			entries = append(entries, base)
			continue
		}
		for _, t := range teachers {
			e := base
			e.ID = uuid.NewString()
			e.Teacher = nullString(t.DisplayName)
			entries = append(entries, e)
		}
	}

	if err := imp.entries.ReplaceAll(entries); err != nil {
		return 0, err
	}
	imp.log.Info("расписание заменено", zap.Int("entries", len(entries)))
	return len(entries), nil
}

// expandTeachers раскрывает значение колонки teacher в список учителей.
// Пустой список — учитель не указан или не найден.
func (imp *Importer) expandTeachers(raw string) ([]entity.User, error) {
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case aliasAllTeachers:
		return imp.users.ListTeachers(storage.AllTeachers)
	case aliasJuniorTeachers:
		return imp.users.ListTeachers(storage.JuniorTeachers)
	case aliasSeniorTeachers:
		return imp.users.ListTeachers(storage.SeniorTeachers)
	}
	t, err := imp.users.FindTeacherByName(raw)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return []entity.User{*t}, nil
}

// normalizeClassName приводит номер класса к целой форме:
// "9", "9.0" и "9,0" дают "9"; нечисловые значения ("11А") не меняются.
func normalizeClassName(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// parseTimeOfDay разбирает значение времени из ячейки и приводит к ЧЧ:ММ.
// Нечитаемое значение даёт пустую строку (в базе станет NULL).
func parseTimeOfDay(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"15:04:05", "15:04", "15.04", "3:04:05 PM", "3:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	// Excel может отдать время числом — долей суток
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && f >= 0 && f < 1 {
		total := int(math.Round(f * 24 * 60))
		return fmt.Sprintf("%02d:%02d", total/60, total%60)
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

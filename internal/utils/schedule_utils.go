package schedule

import (
	"errors"
	"time"
)

var ErrInvalidClock = errors.New("invalid clock value")

// Шаг сетки слотов просмотра.
const SlotInterval = 30 * time.Minute

// ParseClock разбирает время вида "HH:MM" (рабочие часы агента
// хранятся строками) в time.Time с нулевой датой.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, ErrInvalidClock
	}
	return t, nil
}

// FormatClock форматирует момент времени в "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// GenerateTimeSlots разбивает окно [start, end) на точки с шагом
// SlotInterval, начиная со start. Последняя точка строго раньше end.
// Если start >= end, возвращается пустой список (не ошибка).
func GenerateTimeSlots(start, end time.Time) []time.Time {
	slots := []time.Time{}
	for cur := start; cur.Before(end); cur = cur.Add(SlotInterval) {
		slots = append(slots, cur)
	}
	return slots
}

// IsWeekend сообщает, попадает ли дата в окно выходного дня.
// Суббота и воскресенье — выходные, всё остальное — будни.
func IsWeekend(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// DayBounds возвращает границы суток [from, to) для даты date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	return from, from.AddDate(0, 0, 1)
}

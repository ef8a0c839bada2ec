package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

// TimeString время суток в формате "HH:MM" без привязки к дате.
// Хранится в БД как TIME, поэтому умеет сканировать "HH:MM:SS".
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "H:MM", "HH:MM" или "HH:MM:SS" и приводит к "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	return TimeString(normalize(s)).Canonical()
}

// Canonical приводит время к виду "HH:MM": "9:00" -> "09:00".
// Значения сравниваются как строки, поэтому в хранилище попадает только каноническая форма.
func (t TimeString) Canonical() (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	if _, err := t.Minutes(); err != nil {
		return err
	}
	return nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes сдвигает время на n минут. Переход через полночь считается ошибкой.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := m + n
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min is out of day", ErrInvalidTimeString, t, n)
	}
	// 24:00 допустимо только как граница конца дня
	if total == minutesPerDay {
		return "24:00", nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore сравнивает время (невалидные значения считаются полуночью)
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutesOrZero() < other.minutesOrZero()
}

// IsAfter сравнивает время (невалидные значения считаются полуночью)
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutesOrZero() > other.minutesOrZero()
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = scanned(v)
		return nil
	case []byte:
		*t = scanned(string(v))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func (t TimeString) minutesOrZero() int {
	if t == "24:00" {
		return minutesPerDay
	}
	m, err := t.Minutes()
	if err != nil {
		return 0
	}
	return m
}

// scanned каноническая форма значения из БД; нераспознанное значение сохраняется как есть
func scanned(s string) TimeString {
	raw := TimeString(normalize(s))
	if ts, err := raw.Canonical(); err == nil {
		return ts
	}
	return raw
}

// normalize обрезает секунды: "10:00:00" -> "10:00"
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") && strings.Count(s, ":") == 2 {
		return s[:5]
	}
	return s
}

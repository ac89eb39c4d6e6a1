package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerHour = 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время суток в формате "HH:MM"
// Всегда хранится в нормализованном виде ("9:5" -> "09:05")
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит и нормализует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

// MustTimeString то же, что NewTimeStringFromString, но паникует при ошибке
// Используется для констант и в тестах
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return 0
	}
	return m
}

// IsBefore возвращает true, если t раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// Equal сравнивает время после нормализации
func (t TimeString) Equal(other TimeString) bool {
	a, errA := parseMinutes(string(t))
	b, errB := parseMinutes(string(other))
	if errA != nil || errB != nil {
		return t == other
	}
	return a == b
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner
// Поддерживает VARCHAR ("10:00"), TIME ("10:00:00") и time.Time
func (t *TimeString) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	// TIME из PostgreSQL приходит с секундами
	if len(raw) > 5 && strings.Count(raw, ":") == 2 {
		raw = raw[:strings.LastIndex(raw, ":")]
	}

	ts, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 || len(parts[1]) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return hours*minutesPerHour + minutes, nil
}

func fromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/minutesPerHour, m%minutesPerHour))
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroundBookingService/pkg/types"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	// ErrInvalidTimeSlot is returned for a malformed "HH:MM-HH:MM" string
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrEmptyTimeSlot is returned when start and end are equal
	ErrEmptyTimeSlot = errors.New("time slot has zero duration")
)

// TimeSlot is a wall-clock interval on a booking date.
// Duration is in hours rounded to DurationPrecision places;
// overnight slots (end before start) end on the next day.
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Duration  float64
}

// ParseTimeSlot parses "HH:MM-HH:MM" and derives the duration
func ParseTimeSlot(raw string) (TimeSlot, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, raw)
	}
	return NewTimeSlot(parts[0], parts[1])
}

// NewTimeSlot builds a slot from start and end strings and derives the duration
func NewTimeSlot(start, end string) (TimeSlot, error) {
	startTime, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: start: %v", ErrInvalidTimeSlot, err)
	}

	endTime, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: end: %v", ErrInvalidTimeSlot, err)
	}

	minutes := SlotMinutes(startTime, endTime)
	if minutes == 0 {
		return TimeSlot{}, fmt.Errorf("%w: %s-%s", ErrEmptyTimeSlot, startTime, endTime)
	}

	return TimeSlot{
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  DurationHours(minutes),
	}, nil
}

// DurationHours converts minutes to hours rounded to DurationPrecision places.
// A 20 minute slot lasts 0.33 hours and is priced as 0.33 hours.
func DurationHours(minutes int) float64 {
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(minutesPerHour)).
		Round(DurationPrecision).
		InexactFloat64()
}

// SlotMinutes returns end - start in minutes, wrapping past midnight
func SlotMinutes(start, end types.TimeString) int {
	diff := end.Minutes() - start.Minutes()
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff
}

// String returns the slot as "HH:MM-HH:MM"
func (s TimeSlot) String() string {
	return s.StartTime.String() + "-" + s.EndTime.String()
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates ignoring time and location
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseBookingDate accepts "YYYY-MM-DD" or an RFC3339 timestamp
func ParseBookingDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateFormat, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// Package memory хранилище бронирований в памяти процесса.
// Используется в демо-режиме (storage.driver = "memory") и в тестах.
// Повторяет поведение PostgreSQL-репозитория, включая ошибки и уникальность активных слотов.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
)

// BookingStore потокобезопасное in-memory хранилище бронирований
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	now      func() time.Time
}

// NewBookingStore создает пустое хранилище
func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[string]*domain.Booking),
		now:      time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (s *BookingStore) WithClock(now func() time.Time) *BookingStore {
	s.now = now
	return s
}

// Create сохраняет бронирование
func (s *BookingStore) Create(ctx context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.BookingID]; ok {
		return booking.ErrDuplicateBookingID
	}
	if b.IsActive() && s.slotTakenLocked(b.FacilityID, b.BookingDate, b.TimeSlot, "") {
		return booking.ErrSlotTaken
	}

	now := s.now().UTC()
	b.BookingDate = domain.DateOnly(b.BookingDate)
	b.CreatedAt = now
	b.UpdatedAt = now

	s.bookings[b.BookingID] = clone(b)
	return nil
}

// GetByID возвращает копию бронирования
func (s *BookingStore) GetByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return clone(b), nil
}

// ListByUser возвращает страницу бронирований пользователя и общее количество
func (s *BookingStore) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		matched = append(matched, b)
	}
	sortNewestFirst(matched)

	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}

	return cloneAll(matched[start:end]), total, nil
}

// List возвращает бронирования по фильтру
func (s *BookingStore) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if len(filter.FacilityIDs) > 0 && !slices.Contains(filter.FacilityIDs, b.FacilityID) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, b.Status) {
			continue
		}
		if filter.Date != nil && !domain.SameDate(b.BookingDate, *filter.Date) {
			continue
		}
		matched = append(matched, b)
	}

	if filter.Date != nil {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].TimeSlot.StartTime.IsBefore(matched[j].TimeSlot.StartTime)
		})
	} else {
		sortNewestFirst(matched)
	}

	return cloneAll(matched), nil
}

// HasActiveInSlot проверяет наличие активного бронирования на слот
func (s *BookingStore) HasActiveInSlot(ctx context.Context, facilityID string, date time.Time, slot domain.TimeSlot) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.slotTakenLocked(facilityID, date, slot, ""), nil
}

// UpdateStatus меняет статус; при возврате в активный статус проверяет занятость слота
func (s *BookingStore) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason *string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return time.Time{}, booking.ErrBookingNotFound
	}

	if status.IsActive() && !b.IsActive() &&
		s.slotTakenLocked(b.FacilityID, b.BookingDate, b.TimeSlot, b.BookingID) {
		return time.Time{}, booking.ErrSlotTaken
	}

	b.Status = status
	b.CancellationReason = reason
	b.UpdatedAt = s.now().UTC()

	return b.UpdatedAt, nil
}

// Delete удаляет бронирование
func (s *BookingStore) Delete(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[bookingID]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(s.bookings, bookingID)
	return nil
}

// slotTakenLocked вызывается под мьютексом; skipID исключает само бронирование из проверки
func (s *BookingStore) slotTakenLocked(facilityID string, date time.Time, slot domain.TimeSlot, skipID string) bool {
	for id, b := range s.bookings {
		if id == skipID || !b.IsActive() {
			continue
		}
		if b.SameSlot(facilityID, date, slot) {
			return true
		}
	}
	return false
}

func sortNewestFirst(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].BookingID > bookings[j].BookingID
	})
}

func clone(b *domain.Booking) *domain.Booking {
	c := *b
	if b.Players.Requirements != nil {
		r := *b.Players.Requirements
		c.Players.Requirements = &r
	}
	if b.CancellationReason != nil {
		r := *b.CancellationReason
		c.CancellationReason = &r
	}
	return &c
}

func cloneAll(bookings []*domain.Booking) []*domain.Booking {
	out := make([]*domain.Booking, len(bookings))
	for i, b := range bookings {
		out[i] = clone(b)
	}
	return out
}

package booking

import (
	"errors"

	"github.com/lib/pq"
)

const (
	// pgUniqueViolation код ошибки PostgreSQL unique_violation
	pgUniqueViolation = pq.ErrorCode("23505")

	// Имена ограничений из migrations/001_init.sql
	constraintPrimaryKey = "bookings_pkey"
	constraintActiveSlot = "uq_bookings_active_slot"
)

// mapUniqueViolation переводит нарушение уникальности в доменную ошибку хранилища
// Возвращает nil, если err не является нарушением уникальности
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pgUniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case constraintActiveSlot:
		return ErrSlotTaken
	case constraintPrimaryKey:
		return ErrDuplicateBookingID
	default:
		return nil
	}
}

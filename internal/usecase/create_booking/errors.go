package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда слот нельзя разобрать или он нулевой длительности
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrFacilityNotFound возвращается, когда площадка не найдена ни в одном источнике
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrSlotNotAvailable возвращается, когда на слот уже есть активное бронирование
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

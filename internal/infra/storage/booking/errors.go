package booking

import "errors"

// Ошибки хранилища бронирований
// In-memory хранилище возвращает те же ошибки, поэтому вызывающий код не зависит от драйвера
var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда на слот уже есть активное бронирование
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrDuplicateBookingID возвращается при коллизии идентификатора бронирования
	ErrDuplicateBookingID = errors.New("booking.repository: duplicate booking id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

package catalog

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадки нет ни в одном источнике
	ErrFacilityNotFound = errors.New("catalog: facility not found")

	// ErrInternal возвращается при ошибке источника, отличной от "не найдено"
	ErrInternal = errors.New("catalog: internal error")
)

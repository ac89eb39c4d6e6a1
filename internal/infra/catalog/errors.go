package catalog

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадки нет в каталоге
	ErrFacilityNotFound = errors.New("catalog: facility not found")

	// ErrInvalidCatalog возвращается при ошибке разбора или валидации каталога
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
)

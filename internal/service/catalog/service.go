package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// Source источник площадок для резолвера
// NotFound - ошибка, которой источник сообщает об отсутствии площадки
type Source struct {
	Name     string
	Repo     FacilityRepository
	NotFound error
}

// Resolver ищет площадку по источникам в порядке приоритета
type Resolver struct {
	sources []Source
	owned   OwnedFacilityLister
	logger  Logger
}

// NewResolver создает резолвер
// owned может быть nil, тогда у операторов нет площадок (режим без БД)
func NewResolver(sources []Source, owned OwnedFacilityLister, logger Logger) *Resolver {
	return &Resolver{
		sources: sources,
		owned:   owned,
		logger:  logger,
	}
}

// Resolve возвращает площадку из первого источника, в котором она есть
//
// Ответ "не найдено" передает поиск следующему источнику.
// Любая другая ошибка прерывает поиск: недоступность БД не маскируется статическим каталогом.
func (r *Resolver) Resolve(ctx context.Context, facilityID string) (*domain.Facility, error) {
	for _, src := range r.sources {
		f, err := src.Repo.GetByID(ctx, facilityID)
		if err == nil {
			return f, nil
		}
		if src.NotFound != nil && errors.Is(err, src.NotFound) {
			continue
		}

		r.logger.Error("Resolve: source=%s failed for facility=%s: %v", src.Name, facilityID, err)
		return nil, fmt.Errorf("%w: source %s: %v", ErrInternal, src.Name, err)
	}

	r.logger.Warn("Resolve: facility=%s not found in %d sources", facilityID, len(r.sources))
	return nil, ErrFacilityNotFound
}

// ListOwned возвращает площадки, принадлежащие оператору
func (r *Resolver) ListOwned(ctx context.Context, ownerID string) ([]*domain.Facility, error) {
	if r.owned == nil {
		return []*domain.Facility{}, nil
	}

	facilities, err := r.owned.ListByOwner(ctx, ownerID)
	if err != nil {
		r.logger.Error("ListOwned: failed for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListOwned: %v", ErrInternal, err)
	}

	return facilities, nil
}

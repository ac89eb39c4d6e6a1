package facility

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/cache"
)

const cacheKeyPrefix = "facility:"

// CachedRepository кеширует GetByID поверх Source
//
// Ошибки кеша не прерывают запрос: при недоступности Redis данные читаются из БД.
// Отсутствующие площадки не кешируются.
type CachedRepository struct {
	source Source
	cache  Cache
	ttl    time.Duration
	logger Logger
}

// NewCachedRepository создает кеширующий декоратор
func NewCachedRepository(source Source, cache Cache, ttl time.Duration, logger Logger) *CachedRepository {
	return &CachedRepository{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByID читает площадку из кеша, при промахе - из источника
func (r *CachedRepository) GetByID(ctx context.Context, id string) (*domain.Facility, error) {
	key := cacheKeyPrefix + id

	var cached cachedFacility
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached.toDomain(), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("FacilityCache: failed to read key=%s: %v", key, err)
	}

	f, err := r.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, toCached(f), r.ttl); err != nil {
		r.logger.Warn("FacilityCache: failed to write key=%s: %v", key, err)
	}

	return f, nil
}

// ListByOwner не кешируется
func (r *CachedRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Facility, error) {
	return r.source.ListByOwner(ctx, ownerID)
}

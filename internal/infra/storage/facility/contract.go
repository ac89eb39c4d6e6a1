package facility

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Source источник площадок, который оборачивает CachedRepository
type Source interface {
	GetByID(ctx context.Context, id string) (*domain.Facility, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Facility, error)
}

// Cache JSON-кеш (pkg/cache.Service)
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

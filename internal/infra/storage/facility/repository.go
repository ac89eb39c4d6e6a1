package facility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroundBookingService/pkg/psqlbuilder"
)

const tableFacilities = "facilities"

var facilityColumns = []string{
	"id",
	"name",
	"location",
	"owner_id",
	"price_per_hour",
	"price_ranges",
	"discount",
	"currency",
}

// Repository репозиторий площадок в PostgreSQL (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по идентификатору
// Идентификаторы в БД - UUID; для любого другого формата сразу возвращается ErrFacilityNotFound без запроса
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Facility, error) {
	facilityID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrFacilityNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From(tableFacilities).
		Where(squirrel.Eq{"id": facilityID.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacility(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return f, nil
}

// ListByOwner возвращает площадки оператора
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From(tableFacilities).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	var rangesRaw []byte

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Location,
		&f.OwnerID,
		&f.Price.PerHour,
		&rangesRaw,
		&f.Price.Discount,
		&f.Currency,
	)
	if err != nil {
		return nil, err
	}

	if len(rangesRaw) > 0 {
		var ranges []priceRangeJSON
		if err := json.Unmarshal(rangesRaw, &ranges); err != nil {
			return nil, fmt.Errorf("decode price_ranges: %w", err)
		}
		f.Price.Ranges = toDomainRanges(ranges)
	}

	f.Source = domain.SourceDurable
	return &f, nil
}

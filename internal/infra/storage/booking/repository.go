package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroundBookingService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// bookingColumns порядок колонок должен совпадать с scanBooking
var bookingColumns = []string{
	"booking_id",
	"user_id",
	"facility_id",
	"booking_date",
	"start_time",
	"end_time",
	"duration_hours",
	"team_name",
	"player_count",
	"contact_person",
	"requirements",
	"base_amount",
	"discount",
	"convenience_fee",
	"total_amount",
	"currency",
	"status",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
//
// Уникальность слота среди активных бронирований гарантирует частичный уникальный индекс
// uq_bookings_active_slot, поэтому предварительная проверка в usecase не обязательна для корректности.
// Возвращает ErrSlotTaken, если слот занят, и ErrDuplicateBookingID при коллизии booking_id.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"booking_id",
			"user_id",
			"facility_id",
			"booking_date",
			"start_time",
			"end_time",
			"duration_hours",
			"team_name",
			"player_count",
			"contact_person",
			"requirements",
			"base_amount",
			"discount",
			"convenience_fee",
			"total_amount",
			"currency",
			"status",
		).
		Values(
			booking.BookingID,
			booking.UserID,
			booking.FacilityID,
			domain.DateOnly(booking.BookingDate),
			booking.TimeSlot.StartTime,
			booking.TimeSlot.EndTime,
			booking.TimeSlot.Duration,
			booking.Players.TeamName,
			booking.Players.PlayerCount,
			booking.Players.ContactPerson,
			booking.Players.Requirements,
			booking.Pricing.BaseAmount,
			booking.Pricing.Discount,
			booking.Pricing.ConvenienceFee,
			booking.Pricing.TotalAmount,
			booking.Pricing.Currency,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return nil
}

// GetByID получает бронирование по идентификатору
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"booking_id": bookingID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByUser возвращает страницу истории бронирований пользователя (сначала новые)
// и общее количество бронирований, подходящих под фильтр
func (r *Repository) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"user_id": filter.UserID}}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(tableBookings).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - scan count: %v", ErrScanRow, err)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(where).
		OrderBy("created_at DESC", "booking_id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// List возвращает бронирования с фильтрацией по площадкам, дате и статусам
//
// Примеры использования:
//
// 1. Все бронирования (админка):
//
//	filter := domain.BookingsFilter{}
//
// 2. Бронирования площадок владельца:
//
//	filter := domain.BookingsFilter{FacilityIDs: ownedIDs}
//
// 3. Занятые слоты площадки на дату:
//
//	filter := domain.BookingsFilter{FacilityIDs: []string{id}, Date: &date, Statuses: domain.ActiveStatuses}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings)

	if len(filter.FacilityIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"facility_id": filter.FacilityIDs})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	// Для конкретной даты сортируем по времени начала, иначе сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": domain.DateOnly(*filter.Date)}).
			OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("created_at DESC", "booking_id DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// HasActiveInSlot проверяет, есть ли активное бронирование с тем же слотом
func (r *Repository) HasActiveInSlot(ctx context.Context, facilityID string, date time.Time, slot domain.TimeSlot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableBookings).
		Where(squirrel.Eq{
			"facility_id":  facilityID,
			"booking_date": domain.DateOnly(date),
			"start_time":   slot.StartTime,
			"end_time":     slot.EndTime,
			"status":       []string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveInSlot - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveInSlot - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус и причину отмены
// Возвращает ErrSlotTaken, если бронирование возвращается в активный статус на уже занятый слот
func (r *Repository) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason *string) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrBookingNotFound
	}
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return time.Time{}, mapped
		}
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// Delete физически удаляет бронирование
func (r *Repository) Delete(ctx context.Context, bookingID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.BookingID,
		&booking.UserID,
		&booking.FacilityID,
		&booking.BookingDate,
		&booking.TimeSlot.StartTime,
		&booking.TimeSlot.EndTime,
		&booking.TimeSlot.Duration,
		&booking.Players.TeamName,
		&booking.Players.PlayerCount,
		&booking.Players.ContactPerson,
		&booking.Players.Requirements,
		&booking.Pricing.BaseAmount,
		&booking.Pricing.Discount,
		&booking.Pricing.ConvenienceFee,
		&booking.Pricing.TotalAmount,
		&booking.Pricing.Currency,
		&booking.Status,
		&booking.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = domain.DateOnly(booking.BookingDate)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	catalogService "github.com/m04kA/SMC-GroundBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-GroundBookingService/pkg/validation"
)

// maxIDAttempts сколько раз генерируется новый id при коллизии первичного ключа
const maxIDAttempts = 3

// UseCase use case для создания бронирования
type UseCase struct {
	resolver    FacilityResolver
	checker     ConflictChecker
	bookingRepo BookingRepository
	events      EventPublisher
	metrics     Metrics
	idGenerator IDGenerator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver FacilityResolver,
	checker ConflictChecker,
	bookingRepo BookingRepository,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:    resolver,
		checker:     checker,
		bookingRepo: bookingRepo,
		events:      events,
		metrics:     metrics,
		idGenerator: NewBookingIDGenerator(),
		logger:      logger,
	}
}

// WithIDGenerator подменяет генератор идентификаторов (для тестов)
func (uc *UseCase) WithIDGenerator(g IDGenerator) *UseCase {
	uc.idGenerator = g
	return uc
}

// Execute выполняет use case создания бронирования
//
// Предварительная проверка занятости слота отсекает очевидные конфликты,
// а окончательное решение принимает уникальный индекс хранилища:
// из двух одновременных запросов на один слот сохранится только один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, facility=%s, date=%s, slot=%+v",
		req.UserID, req.FacilityID, req.BookingDate, req.TimeSlot)

	// 1. Валидация входных данных
	if errs := validation.Struct(req); len(errs) > 0 {
		uc.logger.Warn("CreateBooking: validation failed: %s", validation.Format(errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validation.Format(errs))
	}
	if req.TimeSlot.IsZero() {
		uc.logger.Warn("CreateBooking: time slot is missing")
		return nil, fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	// 2. Дата бронирования
	date, err := domain.ParseBookingDate(req.BookingDate)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid date=%q: %v", req.BookingDate, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.BookingDate)
	}

	// 3. Слот и его длительность
	slot, err := parseTimeSlot(req.TimeSlot)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid time slot %+v: %v", req.TimeSlot, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	// 4. Площадка
	facility, err := uc.resolver.Resolve(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, catalogService.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility=%s not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve facility=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to resolve facility: %v", ErrInternal, err)
	}

	// 5. Стоимость
	price := pricing.Compute(facility, slot)

	// 6. Предварительная проверка занятости слота
	busy, err := uc.checker.HasConflict(ctx, facility.ID, date, slot)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check slot: %v", err)
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
	if busy {
		uc.metrics.SlotConflict("precheck")
		uc.logger.Warn("CreateBooking: slot %s on %s is taken at facility=%s",
			slot, date.Format(domain.DateFormat), facility.ID)
		return nil, ErrSlotNotAvailable
	}

	booking := &domain.Booking{
		UserID:      req.UserID,
		FacilityID:  facility.ID,
		BookingDate: date,
		TimeSlot:    slot,
		Players: domain.PlayerDetails{
			TeamName:      req.Players.TeamName,
			PlayerCount:   req.Players.PlayerCount,
			ContactPerson: req.Players.ContactPerson,
			Requirements:  req.Requirements,
		},
		Pricing: price,
		Status:  domain.StatusPending,
	}

	// 7. Сохранение; при коллизии идентификатора генерируем новый
	if err := uc.insert(ctx, booking); err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated(string(facility.Source))
	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%s %s",
		booking.BookingID, booking.Pricing.TotalAmount.String(), booking.Pricing.Currency)

	// 8. Событие; ошибка публикации не отменяет бронирование
	if err := uc.events.BookingCreated(ctx, booking); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", booking.BookingID, err)
	}

	return &Response{Booking: booking, Facility: facility}, nil
}

func (uc *UseCase) insert(ctx context.Context, booking *domain.Booking) error {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		booking.BookingID = uc.idGenerator.Generate()

		err := uc.bookingRepo.Create(ctx, booking)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bookingRepo.ErrDuplicateBookingID):
			uc.logger.Warn("CreateBooking: booking id=%s collision, attempt %d/%d",
				booking.BookingID, attempt, maxIDAttempts)
			continue
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			uc.metrics.SlotConflict("constraint")
			uc.logger.Warn("CreateBooking: slot %s taken concurrently at facility=%s",
				booking.TimeSlot, booking.FacilityID)
			return ErrSlotNotAvailable
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Error("CreateBooking: no unique booking id after %d attempts", maxIDAttempts)
	return fmt.Errorf("%w: no unique booking id after %d attempts", ErrInternal, maxIDAttempts)
}

func parseTimeSlot(in TimeSlotInput) (domain.TimeSlot, error) {
	if in.Raw != "" {
		return domain.ParseTimeSlot(in.Raw)
	}
	return domain.NewTimeSlot(in.StartTime, in.EndTime)
}

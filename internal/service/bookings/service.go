package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings/models"
	catalogService "github.com/m04kA/SMC-GroundBookingService/internal/service/catalog"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	resolver    FacilityResolver
	txManager   TransactionManager
	events      EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resolver FacilityResolver,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		resolver:    resolver,
		txManager:   txManager,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно автору бронирования, владельцу площадки и администратору
func (s *Service) GetByID(ctx context.Context, bookingID string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s (%s)", bookingID, actor.ID, actor.Role)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	facility, err := s.lookupFacility(ctx, booking.FacilityID)
	if err != nil {
		return nil, err
	}

	if !canView(booking, facility, actor) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.ID, bookingID)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", bookingID)
	return models.FromDomainBooking(booking, facility), nil
}

// ListForUser получает историю бронирований пользователя постранично
// Опционально фильтрует по статусу
func (s *Service) ListForUser(ctx context.Context, req *models.ListUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForUser: fetching bookings for user=%s, status=%v, page=%d, limit=%d",
		req.UserID, req.Status, req.Page, req.Limit)

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListForUser: invalid status=%s for user=%s", *req.Status, req.UserID)
		return nil, err
	}

	page, limit := normalizePage(req.Page, req.Limit)

	bookings, total, err := s.bookingRepo.ListByUser(ctx, domain.UserBookingsFilter{
		UserID: req.UserID,
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(bookings, s.facilitiesFor(ctx, bookings))
	resp.Pagination = models.NewPagination(page, limit, total)

	s.logger.Info("ListForUser: successfully fetched %d of %d bookings for user=%s", len(bookings), total, req.UserID)
	return resp, nil
}

// ListForOwner получает бронирования по всем площадкам владельца
// Доступно только роли ground_owner
func (s *Service) ListForOwner(ctx context.Context, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("ListForOwner: fetching bookings for owner=%s", actor.ID)

	if !actor.IsGroundOwner() {
		s.logger.Warn("ListForOwner: user=%s with role=%s is not a ground owner", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}

	owned, err := s.resolver.ListOwned(ctx, actor.ID)
	if err != nil {
		s.logger.Error("ListForOwner: failed to list facilities of owner=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListForOwner - failed to list facilities: %v", ErrInternal, err)
	}

	// Пустой список площадок в фильтре означает "все", поэтому выходим заранее
	if len(owned) == 0 {
		s.logger.Info("ListForOwner: owner=%s has no facilities", actor.ID)
		return models.FromDomainBookingList(nil, nil), nil
	}

	facilities := make(map[string]*domain.Facility, len(owned))
	ids := make([]string, 0, len(owned))
	for _, f := range owned {
		facilities[f.ID] = f
		ids = append(ids, f.ID)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{FacilityIDs: ids})
	if err != nil {
		s.logger.Error("ListForOwner: repository error for owner=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForOwner: successfully fetched %d bookings over %d facilities for owner=%s",
		len(bookings), len(owned), actor.ID)
	return models.FromDomainBookingList(bookings, facilities), nil
}

// ListAll получает все бронирования с опциональными фильтрами
// Доступно только администратору
func (s *Service) ListAll(ctx context.Context, req *models.ListAllBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListAll: fetching bookings by user=%s, status=%v, facility=%v", req.Actor.ID, req.Status, req.FacilityID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("ListAll: user=%s with role=%s is not an admin", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("ListAll: invalid status=%s", *req.Status)
		return nil, err
	}

	var filter domain.BookingsFilter
	if status != nil {
		filter.Statuses = []domain.BookingStatus{*status}
	}
	if req.FacilityID != nil && *req.FacilityID != "" {
		filter.FacilityIDs = []string{*req.FacilityID}
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.facilitiesFor(ctx, bookings)), nil
}

// Transition меняет статус бронирования
//
// Администратор может перевести бронирование в любой статус.
// Владелец площадки может только подтвердить ожидающее бронирование на своей площадке.
// Остальным смена статуса запрещена.
func (s *Service) Transition(ctx context.Context, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%s to status=%s by user=%s (%s)",
		req.BookingID, req.Status, req.Actor.ID, req.Actor.Role)

	newStatus, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("Transition: invalid status=%q for booking id=%s", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if req.Reason != nil && len([]rune(*req.Reason)) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Transition: reason is too long for booking id=%s", req.BookingID)
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var (
		booking  *domain.Booking
		facility *domain.Facility
		from     domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		// В транзакции строка блокируется до конца проверки прав
		booking, err = s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Transition: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Transition: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		facility, err = s.lookupFacility(txCtx, booking.FacilityID)
		if err != nil {
			return err
		}

		if err := checkTransition(booking, facility, req.Actor, newStatus); err != nil {
			s.logger.Warn("Transition: user=%s (%s) cannot move booking id=%s from %s to %s: %v",
				req.Actor.ID, req.Actor.Role, req.BookingID, booking.Status, newStatus, err)
			return err
		}

		reason := booking.CancellationReason
		if req.Reason != nil {
			reason = req.Reason
		}

		updatedAt, err := s.bookingRepo.UpdateStatus(txCtx, req.BookingID, newStatus, reason)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				s.logger.Warn("Transition: booking id=%s not found during update", req.BookingID)
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrSlotTaken):
				s.logger.Warn("Transition: slot of booking id=%s is taken by another booking", req.BookingID)
				return ErrSlotNotAvailable
			default:
				s.logger.Error("Transition: repository error for booking id=%s: %v", req.BookingID, err)
				return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
			}
		}

		from = booking.Status
		booking.Status = newStatus
		booking.CancellationReason = reason
		booking.UpdatedAt = updatedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusTransition(string(from), string(newStatus))
	if err := s.events.StatusChanged(ctx, booking, from, req.Actor.ID); err != nil {
		s.logger.Warn("Transition: failed to publish event for booking id=%s: %v", req.BookingID, err)
	}

	s.logger.Info("Transition: successfully moved booking id=%s from %s to %s", req.BookingID, from, newStatus)
	return models.FromDomainBooking(booking, facility), nil
}

// Delete удаляет бронирование
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, bookingID string, actor domain.Actor) error {
	s.logger.Info("Delete: deleting booking id=%s by user=%s", bookingID, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("Delete: user=%s with role=%s is not an admin", actor.ID, actor.Role)
		return ErrAccessDenied
	}

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err == nil {
			err = s.bookingRepo.Delete(txCtx, bookingID)
		}
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Delete: booking id=%s not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.events.Deleted(ctx, booking, actor.ID); err != nil {
		s.logger.Warn("Delete: failed to publish event for booking id=%s: %v", bookingID, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", bookingID)
	return nil
}

// Вспомогательные методы

// lookupFacility возвращает площадку бронирования или nil, если ее больше нет в каталоге
func (s *Service) lookupFacility(ctx context.Context, facilityID string) (*domain.Facility, error) {
	facility, err := s.resolver.Resolve(ctx, facilityID)
	if err != nil {
		if errors.Is(err, catalogService.ErrFacilityNotFound) {
			s.logger.Warn("lookupFacility: facility=%s not found", facilityID)
			return nil, nil
		}
		s.logger.Error("lookupFacility: failed to resolve facility=%s: %v", facilityID, err)
		return nil, fmt.Errorf("%w: failed to resolve facility: %v", ErrInternal, err)
	}
	return facility, nil
}

// facilitiesFor собирает площадки для списка бронирований
// Ошибки каталога не прерывают выдачу списка, поле ground просто не заполняется
func (s *Service) facilitiesFor(ctx context.Context, bookings []*domain.Booking) map[string]*domain.Facility {
	facilities := make(map[string]*domain.Facility)
	for _, b := range bookings {
		if _, seen := facilities[b.FacilityID]; seen {
			continue
		}
		facility, err := s.lookupFacility(ctx, b.FacilityID)
		if err != nil {
			facility = nil
		}
		facilities[b.FacilityID] = facility
	}
	return facilities
}

// canView проверяет право на просмотр бронирования
func canView(booking *domain.Booking, facility *domain.Facility, actor domain.Actor) bool {
	switch {
	case actor.IsAdmin():
		return true
	case booking.UserID == actor.ID:
		return true
	case actor.IsGroundOwner():
		return facility != nil && facility.IsOwnedBy(actor.ID)
	default:
		return false
	}
}

// checkTransition проверяет матрицу переходов для роли
func checkTransition(booking *domain.Booking, facility *domain.Facility, actor domain.Actor, to domain.BookingStatus) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsGroundOwner():
		if to != domain.StatusConfirmed {
			return ErrAccessDenied
		}
		if facility == nil || !facility.IsOwnedBy(actor.ID) {
			return ErrAccessDenied
		}
		if booking.Status != domain.StatusPending {
			return ErrInvalidTransition
		}
		return nil
	default:
		return ErrAccessDenied
	}
}

func parseStatusFilter(raw *string) (*domain.BookingStatus, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, ok := domain.ParseBookingStatus(*raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *raw)
	}
	return &status, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit
}

// Package availability отвечает на вопрос, свободен ли слот площадки.
//
// Слот занят, только если есть бронирование той же площадки на ту же дату
// с точно такими же началом и концом в статусе pending или confirmed.
// Пересекающиеся, но не совпадающие интервалы конфликтом не считаются.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// Service проверка занятости слотов
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// HasConflict возвращает true, если слот уже занят активным бронированием
func (s *Service) HasConflict(ctx context.Context, facilityID string, date time.Time, slot domain.TimeSlot) (bool, error) {
	busy, err := s.bookingRepo.HasActiveInSlot(ctx, facilityID, date, slot)
	if err != nil {
		s.logger.Error("HasConflict: facility=%s, date=%s, slot=%s: %v",
			facilityID, date.Format(domain.DateFormat), slot, err)
		return false, fmt.Errorf("%w: HasConflict: %v", ErrInternal, err)
	}
	return busy, nil
}

// BusySlots возвращает занятые слоты площадки на дату, отсортированные по времени начала
func (s *Service) BusySlots(ctx context.Context, facilityID string, date time.Time) ([]BusySlot, error) {
	day := domain.DateOnly(date)
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		FacilityIDs: []string{facilityID},
		Date:        &day,
		Statuses:    domain.ActiveStatuses,
	})
	if err != nil {
		s.logger.Error("BusySlots: facility=%s, date=%s: %v", facilityID, day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: BusySlots: %v", ErrInternal, err)
	}

	slots := make([]BusySlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, BusySlot{TimeSlot: b.TimeSlot, Status: b.Status})
	}

	s.logger.Info("BusySlots: facility=%s, date=%s, busy=%d", facilityID, day.Format(domain.DateFormat), len(slots))
	return slots, nil
}

package get_facility_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/service/availability"
)

type AvailabilityService interface {
	BusySlots(ctx context.Context, facilityID string, date time.Time) ([]availability.BusySlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

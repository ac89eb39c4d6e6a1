package get_facility

import (
	"context"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

type FacilityResolver interface {
	Resolve(ctx context.Context, facilityID string) (*domain.Facility, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_booking_status

import (
	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(bookingID string, actor domain.Actor) *models.TransitionRequest {
	return &models.TransitionRequest{
		BookingID: bookingID,
		Actor:     actor,
		Status:    r.Status,
		Reason:    r.Reason,
	}
}

package bookingevents

import "time"

// Routing keys событий бронирования
const (
	RoutingKeyCreated       = "booking.created"
	RoutingKeyStatusChanged = "booking.status_changed"
	RoutingKeyDeleted       = "booking.deleted"
)

// Event сообщение о событии бронирования
type Event struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"bookingId"`
	UserID         string    `json:"userId"`
	FacilityID     string    `json:"groundId"`
	BookingDate    string    `json:"bookingDate"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	ActorID        string    `json:"actorId,omitempty"`
	TotalAmount    string    `json:"totalAmount"`
	Currency       string    `json:"currency"`
	OccurredAt     time.Time `json:"occurredAt"`
}

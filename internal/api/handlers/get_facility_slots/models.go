package get_facility_slots

import (
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/availability"
)

// BusySlotsResponse HTTP response model
type BusySlotsResponse struct {
	GroundID    string         `json:"groundId"`
	Date        string         `json:"date"`
	BookedSlots []SlotResponse `json:"bookedSlots"`
}

// SlotResponse занятый слот
type SlotResponse struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Duration  float64 `json:"duration"`
	Status    string  `json:"status"`
}

// FromBusySlots конвертирует ответ сервиса в HTTP response
func FromBusySlots(groundID string, date time.Time, slots []availability.BusySlot) *BusySlotsResponse {
	resp := &BusySlotsResponse{
		GroundID:    groundID,
		Date:        date.Format(domain.DateFormat),
		BookedSlots: make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		resp.BookedSlots = append(resp.BookedSlots, SlotResponse{
			StartTime: s.TimeSlot.StartTime.String(),
			EndTime:   s.TimeSlot.EndTime.String(),
			Duration:  s.TimeSlot.Duration,
			Status:    string(s.Status),
		})
	}

	return resp
}

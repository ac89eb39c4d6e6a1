package create_booking

import "github.com/m04kA/SMC-GroundBookingService/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	UserID       string        `validate:"required,max=64"`
	FacilityID   string        `validate:"required,facility_id"`
	BookingDate  string        `validate:"required"` // "2025-10-15" или RFC3339
	TimeSlot     TimeSlotInput
	Players      PlayerDetails
	Requirements *string `validate:"omitempty,max=500"`
}

// TimeSlotInput слот в одном из двух форматов:
// строка "HH:MM-HH:MM" (Raw) или пара StartTime/EndTime
// Длительность всегда вычисляется по началу и концу
type TimeSlotInput struct {
	Raw       string
	StartTime string
	EndTime   string
}

// IsZero возвращает true, если слот не передан
func (t TimeSlotInput) IsZero() bool {
	return t.Raw == "" && t.StartTime == "" && t.EndTime == ""
}

// PlayerDetails данные команды
type PlayerDetails struct {
	TeamName      string `validate:"required,max=255"`
	PlayerCount   int    `validate:"required,min=1,max=100"`
	ContactPerson string `validate:"required,max=255"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking  *domain.Booking
	Facility *domain.Facility
}

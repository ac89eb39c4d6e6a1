package create_booking

import (
	"bytes"
	"encoding/json"
	"errors"

	createBooking "github.com/m04kA/SMC-GroundBookingService/internal/usecase/create_booking"
)

var errInvalidTimeSlotJSON = errors.New("timeSlot must be a string or an object")

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	GroundID      string             `json:"groundId"`
	BookingDate   string             `json:"bookingDate"` // "2025-10-15" или RFC3339
	TimeSlot      TimeSlotRequest    `json:"timeSlot"`
	PlayerDetails PlayerDetailsInput `json:"playerDetails"`
	Requirements  *string            `json:"requirements,omitempty"`
}

// TimeSlotRequest принимает "14:00-15:00" или {"startTime":"14:00","endTime":"15:00"}
// Переданная клиентом duration игнорируется, длительность считается по startTime/endTime
type TimeSlotRequest struct {
	Raw       string   `json:"-"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Duration  *float64 `json:"duration,omitempty"`
}

// UnmarshalJSON разбирает оба формата слота
func (t *TimeSlotRequest) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &t.Raw)
	case '{':
		type plain TimeSlotRequest
		var obj plain
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*t = TimeSlotRequest(obj)
		return nil
	default:
		return errInvalidTimeSlotJSON
	}
}

// PlayerDetailsInput данные команды
type PlayerDetailsInput struct {
	TeamName      string `json:"teamName"`
	PlayerCount   int    `json:"playerCount"`
	ContactPerson string `json:"contactPerson"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) *createBooking.Request {
	return &createBooking.Request{
		UserID:      userID,
		FacilityID:  r.GroundID,
		BookingDate: r.BookingDate,
		TimeSlot: createBooking.TimeSlotInput{
			Raw:       r.TimeSlot.Raw,
			StartTime: r.TimeSlot.StartTime,
			EndTime:   r.TimeSlot.EndTime,
		},
		Players: createBooking.PlayerDetails{
			TeamName:      r.PlayerDetails.TeamName,
			PlayerCount:   r.PlayerDetails.PlayerCount,
			ContactPerson: r.PlayerDetails.ContactPerson,
		},
		Requirements: r.Requirements,
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// Request модели

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	BookingID string
	Actor     domain.Actor
	Status    string
	Reason    *string
}

// ListUserBookingsRequest запрос истории бронирований пользователя
type ListUserBookingsRequest struct {
	UserID string
	Status *string // Фильтр по статусу (опционально)
	Page   int     // Номер страницы, начиная с 1
	Limit  int     // Размер страницы, по умолчанию domain.DefaultPageLimit
}

// ListAllBookingsRequest запрос всех бронирований (админка)
type ListAllBookingsRequest struct {
	Actor      domain.Actor
	Status     *string
	FacilityID *string
}

// Response модели

// GroundSummary краткие данные площадки в ответе
type GroundSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// TimeSlotResponse слот бронирования
type TimeSlotResponse struct {
	StartTime string  `json:"startTime"` // "14:00"
	EndTime   string  `json:"endTime"`   // "15:00"
	Duration  float64 `json:"duration"`  // в часах
}

// PlayerDetailsResponse данные команды
type PlayerDetailsResponse struct {
	TeamName      string  `json:"teamName"`
	PlayerCount   int     `json:"playerCount"`
	ContactPerson string  `json:"contactPerson"`
	Requirements  *string `json:"requirements,omitempty"`
}

// PricingResponse стоимость бронирования
type PricingResponse struct {
	BaseAmount     float64 `json:"baseAmount"`
	Discount       float64 `json:"discount"`
	ConvenienceFee float64 `json:"convenienceFee"`
	TotalAmount    float64 `json:"totalAmount"`
	Currency       string  `json:"currency"`
}

// BookingResponse ответ с данными бронирования
// groundId всегда содержит идентификатор, данные площадки - в поле ground
type BookingResponse struct {
	BookingID          string                `json:"bookingId"`
	UserID             string                `json:"userId"`
	GroundID           string                `json:"groundId"`
	Ground             *GroundSummary        `json:"ground,omitempty"`
	BookingDate        string                `json:"bookingDate"` // "2025-10-15"
	TimeSlot           TimeSlotResponse      `json:"timeSlot"`
	PlayerDetails      PlayerDetailsResponse `json:"playerDetails"`
	Pricing            PricingResponse       `json:"pricing"`
	Status             string                `json:"status"`
	CancellationReason *string               `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// Pagination параметры страницы
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// facility может быть nil, тогда поле ground не заполняется
func FromDomainBooking(b *domain.Booking, facility *domain.Facility) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		BookingID:   b.BookingID,
		UserID:      b.UserID,
		GroundID:    b.FacilityID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		TimeSlot: TimeSlotResponse{
			StartTime: b.TimeSlot.StartTime.String(),
			EndTime:   b.TimeSlot.EndTime.String(),
			Duration:  b.TimeSlot.Duration,
		},
		PlayerDetails: PlayerDetailsResponse{
			TeamName:      b.Players.TeamName,
			PlayerCount:   b.Players.PlayerCount,
			ContactPerson: b.Players.ContactPerson,
			Requirements:  b.Players.Requirements,
		},
		Pricing: PricingResponse{
			BaseAmount:     b.Pricing.BaseAmount.InexactFloat64(),
			Discount:       b.Pricing.Discount.InexactFloat64(),
			ConvenienceFee: b.Pricing.ConvenienceFee.InexactFloat64(),
			TotalAmount:    b.Pricing.TotalAmount.InexactFloat64(),
			Currency:       b.Pricing.Currency,
		},
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if facility != nil {
		resp.Ground = &GroundSummary{
			ID:       facility.ID,
			Name:     facility.Name,
			Location: facility.Location,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
// facilities - уже известные площадки по id (может быть nil)
func FromDomainBookingList(bookings []*domain.Booking, facilities map[string]*domain.Facility) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, facilities[booking.FacilityID]); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// NewPagination вычисляет количество страниц
func NewPagination(page, limit, total int) *Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус бронирования"
	msgInvalidInput       = "некорректные данные запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "переход в этот статус невозможен"
	msgSlotNotAvailable   = "временной слот уже занят другим бронированием"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.transition(w, r, "PATCH /bookings/{id}/status", &req)
}

// HandleApprove PATCH /api/v1/bookings/{bookingId}/approve
// Подтверждение бронирования владельцем площадки, тело запроса не требуется
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "PATCH /bookings/{id}/approve", &UpdateStatusRequest{Status: string(domain.StatusConfirmed)})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, route string, req *UpdateStatusRequest) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	result, err := h.service.Transition(r.Context(), req.ToServiceRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("%s - Invalid status: booking_id=%s, status=%q", route, bookingID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%s, user_id=%s, role=%s", route, bookingID, actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%s, status=%q", route, bookingID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrSlotNotAvailable):
			h.logger.Warn("%s - Slot not available: booking_id=%s", route, bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("%s - Failed to update status: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Status updated successfully: booking_id=%s, status=%s, user_id=%s",
		route, bookingID, result.Status, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

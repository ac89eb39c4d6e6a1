package get_owner_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings"
)

const (
	msgForbidden = "доступно только владельцам площадок"
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

// Handle GET /api/v1/bookings/owner
// Бронирования по всем площадкам текущего владельца
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListForOwner(r.Context(), actor)
	if err != nil {
		if errors.Is(err, bookings.ErrAccessDenied) {
			h.logger.Warn("GET /bookings/owner - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /bookings/owner - Failed to get bookings: user_id=%s, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/owner - Bookings retrieved successfully: owner_id=%s, count=%d",
		actor.ID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

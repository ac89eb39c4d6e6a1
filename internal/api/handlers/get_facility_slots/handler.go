package get_facility_slots

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/grounds/{groundId}/bookings/{date}
// Возвращает занятые слоты площадки на дату; существование площадки не проверяется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groundID := vars["groundId"]

	date, err := domain.ParseBookingDate(vars["date"])
	if err != nil {
		h.logger.Warn("GET /grounds/{id}/bookings/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.service.BusySlots(r.Context(), groundID, date)
	if err != nil {
		h.logger.Error("GET /grounds/{id}/bookings/{date} - Failed to get slots: ground_id=%s, error=%v", groundID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /grounds/{id}/bookings/{date} - Slots retrieved successfully: ground_id=%s, busy=%d",
		groundID, len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromBusySlots(groundID, date, slots))
}

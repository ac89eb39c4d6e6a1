package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroundBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/bookings/models"
)

const (
	msgInvalidPage   = "некорректный номер страницы"
	msgInvalidLimit  = "некорректный размер страницы"
	msgInvalidStatus = "некорректный статус бронирования"
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

// Handle GET /api/v1/bookings/my-bookings?status=&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	query := r.URL.Query()

	page, err := parseOptionalInt(query.Get("page"))
	if err != nil {
		h.logger.Warn("GET /bookings/my-bookings - Invalid page: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPage)
		return
	}

	limit, err := parseOptionalInt(query.Get("limit"))
	if err != nil {
		h.logger.Warn("GET /bookings/my-bookings - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	// Получаем status из query параметров (опционально)
	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	result, err := h.service.ListForUser(r.Context(), &models.ListUserBookingsRequest{
		UserID: userID,
		Status: statusPtr,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidStatus) {
			h.logger.Warn("GET /bookings/my-bookings - Invalid status: user_id=%s, status=%v", userID, statusPtr)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /bookings/my-bookings - Failed to get bookings: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/my-bookings - Bookings retrieved successfully: user_id=%s, count=%d, total=%d",
		userID, len(result.Bookings), result.Pagination.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseOptionalInt пустая строка означает значение по умолчанию (0)
func parseOptionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

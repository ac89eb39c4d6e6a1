package get_facility

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroundBookingService/internal/api/handlers"
	catalogService "github.com/m04kA/SMC-GroundBookingService/internal/service/catalog"
)

const (
	msgNotFound = "площадка не найдена"
)

type Handler struct {
	resolver FacilityResolver
	logger   Logger
}

func NewHandler(resolver FacilityResolver, logger Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/grounds/{groundId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	groundID := mux.Vars(r)["groundId"]

	facility, err := h.resolver.Resolve(r.Context(), groundID)
	if err != nil {
		if errors.Is(err, catalogService.ErrFacilityNotFound) {
			h.logger.Warn("GET /grounds/{id} - Facility not found: ground_id=%s", groundID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /grounds/{id} - Failed to resolve facility: ground_id=%s, error=%v", groundID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /grounds/{id} - Facility retrieved successfully: ground_id=%s, source=%s", groundID, facility.Source)
	handlers.RespondJSON(w, http.StatusOK, FromDomainFacility(facility))
}

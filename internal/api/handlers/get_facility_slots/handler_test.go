package get_facility_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/availability"
	"github.com/m04kA/SMC-GroundBookingService/pkg/logger"
)

type fakeAvailability struct {
	gotFacility string
	gotDate     time.Time
}

func (f *fakeAvailability) BusySlots(ctx context.Context, facilityID string, date time.Time) ([]availability.BusySlot, error) {
	f.gotFacility = facilityID
	f.gotDate = date
	slot, err := domain.ParseTimeSlot("18:00-20:00")
	if err != nil {
		return nil, err
	}
	return []availability.BusySlot{{TimeSlot: slot, Status: domain.StatusConfirmed}}, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeAvailability{}
	r := mux.NewRouter()
	r.HandleFunc("/grounds/{groundId}/bookings/{date}", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/grounds/bandra-turf-club/bookings/2025-10-15", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "bandra-turf-club", svc.gotFacility)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), svc.gotDate)

	var resp BusySlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-10-15", resp.Date)
	require.Len(t, resp.BookedSlots, 1)
	assert.Equal(t, SlotResponse{StartTime: "18:00", EndTime: "20:00", Duration: 2, Status: "confirmed"}, resp.BookedSlots[0])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/grounds/bandra-turf-club/bookings/15-10-2025", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

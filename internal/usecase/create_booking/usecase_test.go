package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/infra/catalog"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/availability"
	catalogService "github.com/m04kA/SMC-GroundBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-GroundBookingService/pkg/logger"
	"github.com/m04kA/SMC-GroundBookingService/pkg/ptr"
)

const testCatalog = `
[[facility]]
id = "flat-ground"
name = "Flat Ground"
location = "Powai"
per_hour = 500

[[facility]]
id = "ranged-ground"
name = "Ranged Ground"
location = "Andheri"

  [[facility.range]]
  start = "20:00"
  end = "08:00"
  per_hour = 300

  [[facility.range]]
  start = "08:00"
  end = "20:00"
  per_hour = 600
`

type recordingEvents struct {
	mu      sync.Mutex
	created []string
	err     error
}

func (e *recordingEvents) BookingCreated(ctx context.Context, b *domain.Booking) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.created = append(e.created, b.BookingID)
	return e.err
}

type countingMetrics struct {
	mu        sync.Mutex
	created   map[string]int
	conflicts map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{created: map[string]int{}, conflicts: map[string]int{}}
}

func (m *countingMetrics) BookingCreated(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[source]++
}

func (m *countingMetrics) SlotConflict(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts[stage]++
}

type sequenceIDs struct {
	ids []string
	i   int
}

func (s *sequenceIDs) Generate() string {
	id := s.ids[s.i%len(s.ids)]
	s.i++
	return id
}

type fixture struct {
	uc      *UseCase
	store   *memory.BookingStore
	events  *recordingEvents
	metrics *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)

	log := logger.NewNop()
	resolver := catalogService.NewResolver([]catalogService.Source{
		{Name: "fallback", Repo: cat, NotFound: catalog.ErrFacilityNotFound},
	}, nil, log)

	store := memory.NewBookingStore()
	events := &recordingEvents{}
	metrics := newCountingMetrics()

	uc := NewUseCase(resolver, availability.NewService(store, log), store, events, metrics, log)
	return &fixture{uc: uc, store: store, events: events, metrics: metrics}
}

func validRequest() *Request {
	return &Request{
		UserID:      "user-1",
		FacilityID:  "flat-ground",
		BookingDate: "2025-10-15",
		TimeSlot:    TimeSlotInput{Raw: "14:00-15:00"},
		Players: PlayerDetails{
			TeamName:      "Strikers",
			PlayerCount:   10,
			ContactPerson: "Ravi",
		},
		Requirements: ptr.Ptr("bibs"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Regexp(t, bookingIDPattern, b.BookingID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, "flat-ground", b.FacilityID)
	assert.Equal(t, "Flat Ground", resp.Facility.Name)
	assert.InDelta(t, 1.0, b.TimeSlot.Duration, 1e-9)
	assert.Equal(t, "bibs", *b.Players.Requirements)

	assert.True(t, decimal.NewFromInt(500).Equal(b.Pricing.BaseAmount))
	assert.True(t, decimal.Zero.Equal(b.Pricing.Discount))
	assert.True(t, decimal.NewFromInt(10).Equal(b.Pricing.ConvenienceFee))
	assert.True(t, decimal.NewFromInt(510).Equal(b.Pricing.TotalAmount))
	assert.Equal(t, "INR", b.Pricing.Currency)

	stored, err := f.store.GetByID(context.Background(), b.BookingID)
	require.NoError(t, err)
	assert.True(t, stored.Pricing.TotalAmount.Equal(b.Pricing.TotalAmount))

	assert.Equal(t, []string{b.BookingID}, f.events.created)
	assert.Equal(t, 1, f.metrics.created[string(domain.SourceFallback)])
}

func TestExecute_RangePricing(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.FacilityID = "ranged-ground"
	req.TimeSlot = TimeSlotInput{Raw: "08:00-09:00"}
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(resp.Booking.Pricing.BaseAmount))

	// 09:00 не совпадает ни с одним началом диапазона - берется первый диапазон
	req = validRequest()
	req.FacilityID = "ranged-ground"
	req.TimeSlot = TimeSlotInput{StartTime: "09:00", EndTime: "10:00"}
	resp, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Booking.Pricing.BaseAmount))
}

func TestExecute_MultiHourSlotUsesDuration(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.TimeSlot = TimeSlotInput{Raw: "22:00-01:00"}
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, resp.Booking.TimeSlot.Duration, 1e-9)
	assert.True(t, decimal.NewFromInt(1500).Equal(resp.Booking.Pricing.BaseAmount))
	assert.True(t, decimal.NewFromInt(1530).Equal(resp.Booking.Pricing.TotalAmount))
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.UserID = "user-2"
	_, err = f.uc.Execute(ctx, second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts["precheck"])

	// Подтвержденное бронирование тоже блокирует слот
	_, err = f.store.UpdateStatus(ctx, first.Booking.BookingID, domain.StatusConfirmed, nil)
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// После отмены слот свободен
	_, err = f.store.UpdateStatus(ctx, first.Booking.BookingID, domain.StatusCancelled, nil)
	require.NoError(t, err)
	resp, err := f.uc.Execute(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "user-2", resp.Booking.UserID)
}

func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}
	assert.Equal(t, 1, succeeded)
}

func TestExecute_RetriesOnDuplicateID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.uc.WithIDGenerator(&sequenceIDs{ids: []string{"BCDUP00001"}})
	_, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	f.uc.WithIDGenerator(&sequenceIDs{ids: []string{"BCDUP00001", "BCDUP00001", "BCNEW00002"}})
	req := validRequest()
	req.TimeSlot = TimeSlotInput{Raw: "15:00-16:00"}
	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "BCNEW00002", resp.Booking.BookingID)

	f.uc.WithIDGenerator(&sequenceIDs{ids: []string{"BCDUP00001"}})
	req.TimeSlot = TimeSlotInput{Raw: "16:00-17:00"}
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.FacilityID = "no-such-ground"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
	assert.Empty(t, f.events.created)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "missing user", mutate: func(r *Request) { r.UserID = "" }, wantErr: ErrInvalidInput},
		{name: "missing facility", mutate: func(r *Request) { r.FacilityID = "" }, wantErr: ErrInvalidInput},
		{name: "bad facility shape", mutate: func(r *Request) { r.FacilityID = "../../etc" }, wantErr: ErrInvalidInput},
		{name: "missing date", mutate: func(r *Request) { r.BookingDate = "" }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(r *Request) { r.BookingDate = "15.10.2025" }, wantErr: ErrInvalidDate},
		{name: "missing slot", mutate: func(r *Request) { r.TimeSlot = TimeSlotInput{} }, wantErr: ErrInvalidInput},
		{name: "bad slot", mutate: func(r *Request) { r.TimeSlot = TimeSlotInput{Raw: "10-12"} }, wantErr: ErrInvalidTimeSlot},
		{name: "zero slot", mutate: func(r *Request) { r.TimeSlot = TimeSlotInput{Raw: "10:00-10:00"} }, wantErr: ErrInvalidTimeSlot},
		{name: "missing team", mutate: func(r *Request) { r.Players.TeamName = "" }, wantErr: ErrInvalidInput},
		{name: "missing players", mutate: func(r *Request) { r.Players.PlayerCount = 0 }, wantErr: ErrInvalidInput},
		{name: "too many players", mutate: func(r *Request) { r.Players.PlayerCount = 101 }, wantErr: ErrInvalidInput},
		{name: "missing contact", mutate: func(r *Request) { r.Players.ContactPerson = "" }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			all, listErr := f.store.List(context.Background(), domain.BookingsFilter{})
			require.NoError(t, listErr)
			assert.Empty(t, all)
		})
	}
}

func TestExecute_PublishErrorDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Booking.BookingID)
}

type slotTakenRepo struct{}

func (slotTakenRepo) Create(ctx context.Context, b *domain.Booking) error {
	return bookingRepo.ErrSlotTaken
}

type freeChecker struct{}

func (freeChecker) HasConflict(ctx context.Context, facilityID string, date time.Time, slot domain.TimeSlot) (bool, error) {
	return false, nil
}

func TestExecute_ConstraintViolationMapsToConflict(t *testing.T) {
	f := newFixture(t)
	uc := NewUseCase(f.uc.resolver, freeChecker{}, slotTakenRepo{}, f.events, f.metrics, logger.NewNop())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts["constraint"])
}

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/types"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func mustSlot(t *testing.T, raw string) domain.TimeSlot {
	t.Helper()
	slot, err := domain.ParseTimeSlot(raw)
	require.NoError(t, err)
	return slot
}

func assertDec(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %d, got %s", field, want, got)
}

func rangedFacility() *domain.Facility {
	return &domain.Facility{
		ID: "ground-1",
		Price: domain.PriceConfig{
			Ranges: []domain.PriceRange{
				{Start: "20:00", End: "08:00", PerHour: dec(300)},
				{Start: "08:00", End: "20:00", PerHour: dec(600)},
			},
		},
		Currency: "INR",
	}
}

func TestCompute_FlatRate(t *testing.T) {
	f := &domain.Facility{Price: domain.PriceConfig{PerHour: dec(500)}, Currency: "INR"}

	got := Compute(f, mustSlot(t, "14:00-15:00"))

	assertDec(t, 500, got.BaseAmount, "base")
	assertDec(t, 0, got.Discount, "discount")
	assertDec(t, 10, got.ConvenienceFee, "fee")
	assertDec(t, 510, got.TotalAmount, "total")
	assert.Equal(t, "INR", got.Currency)
}

func TestCompute_RangeExactMatch(t *testing.T) {
	got := Compute(rangedFacility(), mustSlot(t, "08:00-09:00"))

	assertDec(t, 600, got.BaseAmount, "base")
	assertDec(t, 12, got.ConvenienceFee, "fee")
	assertDec(t, 612, got.TotalAmount, "total")
}

func TestCompute_RangeFallsBackToFirst(t *testing.T) {
	// 09:00 лежит внутри 08:00-20:00, но совпадения по началу нет
	got := Compute(rangedFacility(), mustSlot(t, "09:00-10:00"))

	assertDec(t, 300, got.BaseAmount, "base")
	assertDec(t, 6, got.ConvenienceFee, "fee")
	assertDec(t, 306, got.TotalAmount, "total")
}

func TestCompute_MultiHour(t *testing.T) {
	f := &domain.Facility{Price: domain.PriceConfig{PerHour: dec(800)}}

	got := Compute(f, mustSlot(t, "18:00-21:00"))

	assertDec(t, 2400, got.BaseAmount, "base")
	assertDec(t, 48, got.ConvenienceFee, "fee")
	assertDec(t, 2448, got.TotalAmount, "total")
}

func TestCompute_Defaults(t *testing.T) {
	got := Compute(&domain.Facility{}, domain.TimeSlot{})

	assertDec(t, 500, got.BaseAmount, "base")
	assertDec(t, 10, got.ConvenienceFee, "fee")
	assertDec(t, 510, got.TotalAmount, "total")
	assert.Equal(t, domain.DefaultCurrency, got.Currency)
}

func TestCompute_Discount(t *testing.T) {
	tests := []struct {
		name         string
		discount     decimal.Decimal
		wantDiscount int64
		fee          int64
		total        int64
	}{
		{name: "regular", discount: dec(100), wantDiscount: 100, fee: 8, total: 408},
		{name: "negative ignored", discount: dec(-50), wantDiscount: 0, fee: 10, total: 510},
		{name: "clamped to base", discount: dec(900), wantDiscount: 500, fee: 0, total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &domain.Facility{Price: domain.PriceConfig{PerHour: dec(500), Discount: tt.discount}}

			got := Compute(f, mustSlot(t, "10:00-11:00"))

			assertDec(t, tt.wantDiscount, got.Discount, "discount")
			assertDec(t, tt.fee, got.ConvenienceFee, "fee")
			assertDec(t, tt.total, got.TotalAmount, "total")
			assert.False(t, got.TotalAmount.IsNegative())
		})
	}
}

func TestCompute_FeeRoundsHalfUp(t *testing.T) {
	// 2% от 125 = 2.5 -> 3
	f := &domain.Facility{Price: domain.PriceConfig{PerHour: dec(250)}}

	got := Compute(f, mustSlot(t, "10:00-10:30"))

	assertDec(t, 125, got.BaseAmount, "base")
	assertDec(t, 3, got.ConvenienceFee, "fee")
	assertDec(t, 128, got.TotalAmount, "total")
}

func TestCompute_FractionalDuration(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		perHour  decimal.Decimal
		duration float64
		base     string
		fee      string
		total    string
	}{
		// 20 минут = 0.33 часа, base = 500 * 0.33
		{name: "twenty minutes", raw: "09:00-09:20", perHour: dec(500), duration: 0.33, base: "165", fee: "3", total: "168"},
		{name: "forty minutes", raw: "09:00-09:40", perHour: dec(500), duration: 0.67, base: "335", fee: "7", total: "342"},
		// 333.33 * 0.33 = 109.9989 -> 110.00
		{name: "rate with cents", raw: "09:00-09:20", perHour: decimal.RequireFromString("333.33"), duration: 0.33, base: "110", fee: "2", total: "112"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := mustSlot(t, tt.raw)
			assert.Equal(t, tt.duration, slot.Duration)

			got := Compute(&domain.Facility{Price: domain.PriceConfig{PerHour: tt.perHour}}, slot)

			assert.Equal(t, decimal.RequireFromString(tt.base).String(), got.BaseAmount.String())
			assert.Equal(t, decimal.RequireFromString(tt.fee).String(), got.ConvenienceFee.String())
			assert.Equal(t, decimal.RequireFromString(tt.total).String(), got.TotalAmount.String())

			// Сумма должна храниться в NUMERIC(12,2) без потерь
			assert.True(t, got.BaseAmount.Equal(got.BaseAmount.Round(domain.AmountPrecision)))
			assert.True(t, got.TotalAmount.Equal(got.TotalAmount.Round(domain.AmountPrecision)))

			want := tt.perHour.Mul(decimal.NewFromFloat(slot.Duration)).Round(domain.AmountPrecision)
			assert.True(t, want.Equal(got.BaseAmount))
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	f := rangedFacility()
	slot := mustSlot(t, "20:00-22:00")

	first := Compute(f, slot)
	for i := 0; i < 10; i++ {
		got := Compute(f, slot)
		assert.True(t, first.TotalAmount.Equal(got.TotalAmount))
		assert.True(t, first.ConvenienceFee.Equal(got.ConvenienceFee))
	}
}

func TestCompute_Identity(t *testing.T) {
	f := &domain.Facility{Price: domain.PriceConfig{PerHour: dec(730), Discount: dec(45)}}

	for _, raw := range []string{"06:00-07:00", "06:00-08:30", "23:00-01:00"} {
		got := Compute(f, mustSlot(t, raw))
		want := got.BaseAmount.Sub(got.Discount).Add(got.ConvenienceFee)
		assert.Truef(t, want.Equal(got.TotalAmount), "slot %s", raw)
	}
}

func TestSelectRate(t *testing.T) {
	price := rangedFacility().Price

	assertDec(t, 300, SelectRate(price, types.MustTimeString("20:00")), "20:00")
	assertDec(t, 600, SelectRate(price, types.MustTimeString("8:00")), "8:00")
	assertDec(t, 300, SelectRate(price, types.MustTimeString("12:00")), "12:00")
	assertDec(t, 500, SelectRate(domain.PriceConfig{}, "10:00"), "default")
	assertDec(t, 700, SelectRate(domain.PriceConfig{PerHour: dec(700)}, "10:00"), "flat")
}

package facility

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// priceRangeJSON элемент колонки price_ranges (JSONB)
type priceRangeJSON struct {
	Start   string          `json:"start"`
	End     string          `json:"end"`
	PerHour decimal.Decimal `json:"perHour"`
}

// cachedFacility представление площадки в кеше
type cachedFacility struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Location string           `json:"location"`
	OwnerID  string           `json:"ownerId"`
	PerHour  decimal.Decimal  `json:"perHour"`
	Ranges   []priceRangeJSON `json:"ranges"`
	Discount decimal.Decimal  `json:"discount"`
	Currency string           `json:"currency"`
}

func toDomainRanges(ranges []priceRangeJSON) []domain.PriceRange {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]domain.PriceRange, len(ranges))
	for i, r := range ranges {
		out[i] = domain.PriceRange{Start: r.Start, End: r.End, PerHour: r.PerHour}
	}
	return out
}

func fromDomainRanges(ranges []domain.PriceRange) []priceRangeJSON {
	out := make([]priceRangeJSON, len(ranges))
	for i, r := range ranges {
		out[i] = priceRangeJSON{Start: r.Start, End: r.End, PerHour: r.PerHour}
	}
	return out
}

func toCached(f *domain.Facility) cachedFacility {
	return cachedFacility{
		ID:       f.ID,
		Name:     f.Name,
		Location: f.Location,
		OwnerID:  f.OwnerID,
		PerHour:  f.Price.PerHour,
		Ranges:   fromDomainRanges(f.Price.Ranges),
		Discount: f.Price.Discount,
		Currency: f.Currency,
	}
}

func (c cachedFacility) toDomain() *domain.Facility {
	return &domain.Facility{
		ID:       c.ID,
		Name:     c.Name,
		Location: c.Location,
		OwnerID:  c.OwnerID,
		Price: domain.PriceConfig{
			PerHour:  c.PerHour,
			Ranges:   toDomainRanges(c.Ranges),
			Discount: c.Discount,
		},
		Currency: c.Currency,
		Source:   domain.SourceDurable,
	}
}

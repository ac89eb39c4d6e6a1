package get_facility

import "github.com/m04kA/SMC-GroundBookingService/internal/domain"

// FacilityResponse HTTP response model
type FacilityResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Currency string          `json:"currency"`
	Pricing  PricingResponse `json:"pricing"`
	Source   string          `json:"source"`
}

// PricingResponse тарифы площадки
type PricingResponse struct {
	PerHour     float64              `json:"perHour"`
	Discount    float64              `json:"discount"`
	PriceRanges []PriceRangeResponse `json:"priceRanges,omitempty"`
}

// PriceRangeResponse тариф на интервал времени
type PriceRangeResponse struct {
	Start   string  `json:"start"`
	End     string  `json:"end"`
	PerHour float64 `json:"perHour"`
}

// FromDomainFacility конвертирует площадку в HTTP response
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	resp := &FacilityResponse{
		ID:       f.ID,
		Name:     f.Name,
		Location: f.Location,
		Currency: f.Currency,
		Pricing: PricingResponse{
			PerHour:  f.Price.PerHour.InexactFloat64(),
			Discount: f.Price.Discount.InexactFloat64(),
		},
		Source: string(f.Source),
	}
	if resp.Currency == "" {
		resp.Currency = domain.DefaultCurrency
	}

	for _, r := range f.Price.Ranges {
		resp.Pricing.PriceRanges = append(resp.Pricing.PriceRanges, PriceRangeResponse{
			Start:   r.Start,
			End:     r.End,
			PerHour: r.PerHour.InexactFloat64(),
		})
	}

	return resp
}

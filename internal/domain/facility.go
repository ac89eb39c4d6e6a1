package domain

import "github.com/shopspring/decimal"

// FacilitySource tells where a facility record came from
type FacilitySource string

const (
	SourceDurable  FacilitySource = "durable"
	SourceFallback FacilitySource = "fallback"
)

// PriceRange is a per-hour rate valid from Start to End.
// Ranges may wrap past midnight (20:00-08:00).
type PriceRange struct {
	Start   string
	End     string
	PerHour decimal.Decimal
}

// PriceConfig is the pricing configuration of a facility.
// When Ranges is not empty it takes precedence over PerHour.
type PriceConfig struct {
	PerHour  decimal.Decimal
	Ranges   []PriceRange
	Discount decimal.Decimal
}

// HasRanges returns true if time-range pricing is configured
func (p PriceConfig) HasRanges() bool {
	return len(p.Ranges) > 0
}

// Facility represents a bookable ground
type Facility struct {
	ID       string
	Name     string
	Location string
	OwnerID  string // empty for fallback facilities
	Price    PriceConfig
	Currency string
	Source   FacilitySource
}

// IsOwnedBy returns true if the given operator owns the facility
func (f *Facility) IsOwnedBy(userID string) bool {
	return f.OwnerID != "" && f.OwnerID == userID
}

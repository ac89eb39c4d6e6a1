package domain

import "github.com/shopspring/decimal"

// Pricing defaults
var (
	// DefaultPerHour is used when a facility has neither ranges nor a per-hour rate
	DefaultPerHour = decimal.NewFromInt(500)

	// ConvenienceFeeRate is applied to the discounted base amount
	ConvenienceFeeRate = decimal.NewFromFloat(0.02)
)

const (
	DefaultCurrency       = "INR"
	DefaultDurationHours  = 1
	BookingIDPrefix       = "BC"
	BookingIDRandomLength = 5
)

// Decimal places kept for durations (hours) and money amounts,
// matches NUMERIC(5,2) and NUMERIC(12,2) columns of the bookings table
const (
	DurationPrecision = 2
	AmountPrecision   = 2
)

// Business validation constants
const (
	MaxFacilityIDLength         = 64
	MaxRequirementsLength       = 500
	MaxCancellationReasonLength = 500
	MaxPlayerCount              = 100
	DefaultPageLimit            = 10
	MaxPageLimit                = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

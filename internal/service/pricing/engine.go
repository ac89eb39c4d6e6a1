// Package pricing считает стоимость бронирования слота.
// Все функции чистые: одинаковый вход всегда дает одинаковый результат.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/pkg/types"
)

var half = decimal.NewFromFloat(0.5)

// Compute рассчитывает стоимость слота на площадке
//
// Порядок расчета:
//  1. длительность: из слота, по умолчанию 1 час
//  2. ставка: SelectRate
//  3. base = ставка * длительность, округляется до копеек
//  4. скидка площадки, ограниченная диапазоном [0, base]
//  5. сервисный сбор = round(2% * (base - скидка))
//  6. итого = base - скидка + сбор
func Compute(facility *domain.Facility, slot domain.TimeSlot) domain.PricingBreakdown {
	duration := decimal.NewFromInt(domain.DefaultDurationHours)
	if slot.Duration > 0 {
		duration = decimal.NewFromFloat(slot.Duration).Round(domain.DurationPrecision)
	}

	rate := SelectRate(facility.Price, slot.StartTime)
	base := rate.Mul(duration).Round(domain.AmountPrecision)
	discount := clampDiscount(facility.Price.Discount.Round(domain.AmountPrecision), base)
	discounted := base.Sub(discount)
	fee := roundHalfUp(discounted.Mul(domain.ConvenienceFeeRate))

	currency := facility.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return domain.PricingBreakdown{
		BaseAmount:     base,
		Discount:       discount,
		ConvenienceFee: fee,
		TotalAmount:    discounted.Add(fee),
		Currency:       currency,
	}
}

// SelectRate выбирает почасовую ставку для времени начала слота
//
// Если у площадки есть диапазоны, берется диапазон, у которого start точно совпадает
// со временем начала слота. Если совпадения нет, берется первый диапазон из списка
// (ближайший по времени не ищется). Без диапазонов используется PerHour,
// а если и он не задан - domain.DefaultPerHour.
func SelectRate(price domain.PriceConfig, start types.TimeString) decimal.Decimal {
	if price.HasRanges() && !start.IsZero() {
		for _, r := range price.Ranges {
			if types.TimeString(r.Start).Equal(start) {
				return r.PerHour
			}
		}
		return price.Ranges[0].PerHour
	}

	if price.PerHour.IsPositive() {
		return price.PerHour
	}
	return domain.DefaultPerHour
}

func clampDiscount(discount, base decimal.Decimal) decimal.Decimal {
	if !discount.IsPositive() {
		return decimal.Zero
	}
	if discount.GreaterThan(base) {
		return base
	}
	return discount
}

// roundHalfUp округляет до целого, .5 округляется вверх
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

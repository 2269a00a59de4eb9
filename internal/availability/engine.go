// Package availability decides whether a proposed rental date range may
// be booked against an item and prices it. Everything here is pure; the
// persistence boundary is responsible for making check-then-book atomic.
package availability

import (
	"lendly/internal/domain"
)

// IsAvailable reports whether the proposed range is free of conflicts
// with the item's committed rental periods. Endpoints are inclusive: a
// booking ending on day D and another starting on day D conflict.
func IsAvailable(periods []domain.RentalPeriod, proposed domain.DateRange) bool {
	for _, p := range periods {
		if p.DateRange.Overlaps(proposed) {
			return false
		}
	}
	return true
}

// PriceInterval computes the rental charge for a range at the given
// per-day rate. Duration uses the inclusive-days convention throughout:
// a range spanning a single date is charged as 1 day.
func PriceInterval(pricePerDay domain.Price, r domain.DateRange) domain.Price {
	return pricePerDay.Multiply(r.Days())
}

// RateCard is the informational daily/weekly/monthly price display shown
// next to a listing. The weekly and monthly rates are estimates only and
// never feed into the persisted booking charge.
type RateCard struct {
	Daily   domain.Price `json:"daily"`
	Weekly  domain.Price `json:"weekly"`
	Monthly domain.Price `json:"monthly"`
}

// Rates derives the display rate card from a per-day price: weekly is 7
// days at a 10% discount, monthly 30 days at a 30% discount.
func Rates(pricePerDay domain.Price) RateCard {
	return RateCard{
		Daily:   pricePerDay,
		Weekly:  discounted(pricePerDay.Cents()*7, 90),
		Monthly: discounted(pricePerDay.Cents()*30, 70),
	}
}

// discounted applies a percentage to a cent amount, rounding to the
// nearest cent.
func discounted(cents int64, pct int64) domain.Price {
	return domain.Price((cents*pct + 50) / 100)
}

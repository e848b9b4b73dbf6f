// Package pricing computes ticket prices.  It is a pure calculation
// layer with no storage or clock access, so the booking engine and the
// price-preview endpoint are guaranteed to agree on every amount.
package pricing

import "math"

// Quote is the price breakdown for one booking: the undiscounted
// total, the discount taken off it, and the final amount to debit.
// All amounts are in cents.
type Quote struct {
    TotalCents    int64
    DiscountCents int64
    FinalCents    int64
}

// Compute prices seatCount seats at unitPriceCents each with a
// percentage discount.  The discount is rounded half-up to the cent;
// total and final are exact.  A zero rate yields a zero discount, a
// 100% rate yields a zero final price.
func Compute(unitPriceCents int64, seatCount int, discountRatePercent float64) Quote {
    total := unitPriceCents * int64(seatCount)
    discount := int64(math.Floor(float64(total)*discountRatePercent/100.0 + 0.5))
    if discount < 0 {
        discount = 0
    }
    if discount > total {
        discount = total
    }
    return Quote{
        TotalCents:    total,
        DiscountCents: discount,
        FinalCents:    total - discount,
    }
}

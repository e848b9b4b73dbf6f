package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestComputeNoDiscount(t *testing.T) {
    q := Compute(35000, 2, 0)
    assert.Equal(t, int64(70000), q.TotalCents)
    assert.Equal(t, int64(0), q.DiscountCents)
    assert.Equal(t, int64(70000), q.FinalCents)
}

// Two seats at 350.00 with a 10% coupon: total 700.00, discount 70.00,
// final 630.00.
func TestComputeTenPercent(t *testing.T) {
    q := Compute(35000, 2, 10)
    assert.Equal(t, int64(70000), q.TotalCents)
    assert.Equal(t, int64(7000), q.DiscountCents)
    assert.Equal(t, int64(63000), q.FinalCents)
}

func TestComputeRoundsHalfUp(t *testing.T) {
    // 3 seats at 1.01 with 16.5% -> total 303, raw discount 50.0 -> 50
    q := Compute(101, 3, 16.5)
    assert.Equal(t, int64(303), q.TotalCents)
    assert.Equal(t, int64(50), q.DiscountCents)

    // 1 seat at 1.25 with 10% -> raw discount 12.5 rounds up to 13
    q = Compute(125, 1, 10)
    assert.Equal(t, int64(13), q.DiscountCents)
    assert.Equal(t, int64(112), q.FinalCents)
}

func TestComputeFullDiscount(t *testing.T) {
    q := Compute(5000, 1, 100)
    assert.Equal(t, int64(5000), q.DiscountCents)
    assert.Equal(t, int64(0), q.FinalCents)
}

func TestComputeClampsOutOfRangeRates(t *testing.T) {
    assert.Equal(t, int64(0), Compute(5000, 1, -5).DiscountCents)
    assert.Equal(t, int64(5000), Compute(5000, 1, 150).DiscountCents)
}

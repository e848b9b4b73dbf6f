package model

import "time"

// Coupon is a percentage discount code with a shared usage budget and
// an expiry date.  TimesUsed is only ever incremented inside the same
// transaction as the booking that redeems the coupon.
//
// Fields:
//  ID           primary key identifier.
//  Code         uppercase coupon code entered by the user.
//  DiscountRate percentage off in the range 0-100.
//  UsageLimit   total number of redemptions allowed across all users.
//  TimesUsed    redemptions so far.
//  ExpiresOn    last calendar day the coupon is valid (inclusive).
//  IsActive     deactivated coupons are rejected regardless of expiry.
type Coupon struct {
    ID           uint64    // coupons.id
    Code         string    // coupons.code
    DiscountRate float64   // coupons.discount_rate
    UsageLimit   uint32    // coupons.usage_limit
    TimesUsed    uint32    // coupons.times_used
    ExpiresOn    time.Time // coupons.expires_on
    IsActive     bool      // coupons.is_active
}

// CouponRedemption marks that a user has redeemed a coupon.  The
// (coupon, user) pair is unique, and Used=true permanently blocks a
// second redemption of the same coupon by the same user.
type CouponRedemption struct {
    CouponID uint64     // coupon_redemptions.coupon_id
    UserID   uint64     // coupon_redemptions.user_id
    Used     bool       // coupon_redemptions.used
    UsedAt   *time.Time // coupon_redemptions.used_at (nullable)
}

// Package repository defines sentinel errors shared across the
// per-table repositories.  Higher layers compare against these with
// errors.Is to decide how a failed operation should be reported;
// anything else coming out of a repository is an infrastructure
// problem with the underlying store.
package repository

import "errors"

// ErrTripNotFound is returned when a trip lookup matches no row.
var ErrTripNotFound = errors.New("trip not found")

// ErrBookingNotFound is returned when a booking lookup matches no row,
// including the case where the booking exists but belongs to a
// different user.  Ownership is enforced inside the query so callers
// cannot distinguish the two, by the same reasoning as a 404.
var ErrBookingNotFound = errors.New("booking not found")

// ErrCouponNotFound is returned when a coupon code matches no row.
var ErrCouponNotFound = errors.New("coupon not found")

// ErrInsufficientSeats is returned by the guarded available-seat
// decrement when the counter would go negative.
var ErrInsufficientSeats = errors.New("insufficient available seats")

// ErrUserNotFound is returned by balance mutations when no user row
// matches, so a credit can never be silently dropped.
var ErrUserNotFound = errors.New("user not found")

// ErrInsufficientCredit is returned by the guarded balance debit when
// the account does not cover the requested amount.
var ErrInsufficientCredit = errors.New("insufficient credit")

// ErrCouponExhausted is returned by the guarded redemption when the
// coupon's usage limit has been reached.
var ErrCouponExhausted = errors.New("coupon usage limit reached")

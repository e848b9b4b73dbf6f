package booking

import (
    "errors"
    "fmt"
)

// FailureCode classifies why a reservation or cancellation was
// rejected.  Every code except CodeTransactionFailure is terminal for
// the request: retrying with the same input yields the same failure
// until the input changes (different seats, a valid coupon, a
// topped-up balance).
type FailureCode string

const (
    CodeInvalidRequest        FailureCode = "INVALID_REQUEST"
    CodeTripNotFound          FailureCode = "TRIP_NOT_FOUND"
    CodeTripNotActive         FailureCode = "TRIP_NOT_ACTIVE"
    CodeTooManySeats          FailureCode = "TOO_MANY_SEATS"
    CodeInsufficientSeats     FailureCode = "INSUFFICIENT_SEATS"
    CodeSeatConflict          FailureCode = "SEAT_CONFLICT"
    CodeCouponNotFound        FailureCode = "COUPON_NOT_FOUND"
    CodeCouponInactive        FailureCode = "COUPON_INACTIVE"
    CodeCouponExpired         FailureCode = "COUPON_EXPIRED"
    CodeCouponLimitReached    FailureCode = "COUPON_LIMIT_REACHED"
    CodeCouponAlreadyRedeemed FailureCode = "COUPON_ALREADY_REDEEMED"
    CodeInsufficientCredit    FailureCode = "INSUFFICIENT_CREDIT"
    CodeBookingNotFound       FailureCode = "BOOKING_NOT_FOUND"
    CodeNotCancellable        FailureCode = "NOT_CANCELLABLE"
    CodeTransactionFailure    FailureCode = "TRANSACTION_FAILURE"
)

// Failure is a rejected engine operation: a machine-readable code plus
// a message fit to show the end user.  The transaction that produced
// it has been rolled back, so the caller observes no side effect.
type Failure struct {
    Code    FailureCode
    Message string
    cause   error
}

// Error implements the error interface with the user-facing message.
func (f *Failure) Error() string { return f.Message }

// Unwrap exposes the underlying store error, when there is one, so
// logs can carry the real cause.
func (f *Failure) Unwrap() error { return f.cause }

// Retryable reports whether the caller may usefully retry the same
// request.  Only store-level transaction failures qualify.
func (f *Failure) Retryable() bool { return f.Code == CodeTransactionFailure }

// failf builds a Failure with a formatted message.
func failf(code FailureCode, format string, args ...any) *Failure {
    return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// storeErr wraps an unexpected error from the underlying store.  The
// caller-facing message stays generic and the request may be retried.
func storeErr(err error) *Failure {
    return &Failure{Code: CodeTransactionFailure, Message: "transaction failed, please retry", cause: err}
}

// AsFailure unwraps an engine error into a *Failure when it is one.
func AsFailure(err error) (*Failure, bool) {
    var f *Failure
    if errors.As(err, &f) {
        return f, true
    }
    return nil, false
}

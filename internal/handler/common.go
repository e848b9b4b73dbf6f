// Package handler contains the HTTP handlers of the API.  Handlers
// stay thin: they bind and validate the request shape, call the
// booking engine or a repository, and translate the outcome into an
// HTTP response.
package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/bus-ticket-reservation/internal/booking"
)

// getUserID reads the authenticated user's ID placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (uint64, bool) {
    uid, ok := c.Get("user_id").(uint64)
    return uid, ok && uid != 0
}

// httpStatus maps an engine failure code onto an HTTP status.
func httpStatus(code booking.FailureCode) int {
    switch code {
    case booking.CodeInvalidRequest, booking.CodeTooManySeats:
        return http.StatusBadRequest
    case booking.CodeTripNotFound, booking.CodeBookingNotFound, booking.CodeCouponNotFound:
        return http.StatusNotFound
    case booking.CodeInsufficientCredit:
        return http.StatusPaymentRequired
    case booking.CodeTransactionFailure:
        return http.StatusInternalServerError
    default:
        // Seat conflicts, sold-out trips, coupon rejections and
        // non-cancellable bookings are all state conflicts.
        return http.StatusConflict
    }
}

// respondError renders an engine error.  Engine failures carry their
// code and user-facing message; anything else is a 500.
func respondError(c echo.Context, err error) error {
    if f, ok := booking.AsFailure(err); ok {
        if f.Code == booking.CodeTransactionFailure {
            c.Logger().Errorf("transaction failure: %v", f.Unwrap())
        }
        return c.JSON(httpStatus(f.Code), echo.Map{
            "error":   string(f.Code),
            "message": f.Message,
        })
    }
    c.Logger().Errorf("unexpected error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

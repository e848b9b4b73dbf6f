package handler

import (
    "net/http"
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/bus-ticket-reservation/internal/booking"
)

func TestHTTPStatusMapping(t *testing.T) {
    cases := map[booking.FailureCode]int{
        booking.CodeInvalidRequest:        http.StatusBadRequest,
        booking.CodeTooManySeats:          http.StatusBadRequest,
        booking.CodeTripNotFound:          http.StatusNotFound,
        booking.CodeBookingNotFound:       http.StatusNotFound,
        booking.CodeCouponNotFound:        http.StatusNotFound,
        booking.CodeInsufficientCredit:    http.StatusPaymentRequired,
        booking.CodeTransactionFailure:    http.StatusInternalServerError,
        booking.CodeSeatConflict:          http.StatusConflict,
        booking.CodeInsufficientSeats:     http.StatusConflict,
        booking.CodeTripNotActive:         http.StatusConflict,
        booking.CodeNotCancellable:        http.StatusConflict,
        booking.CodeCouponExpired:         http.StatusConflict,
        booking.CodeCouponAlreadyRedeemed: http.StatusConflict,
    }
    for code, want := range cases {
        assert.Equal(t, want, httpStatus(code), "code %s", code)
    }
}

func TestReserveRequestPairs(t *testing.T) {
    // Tuple shape wins when both are present.
    req := reserveRequest{
        Seats:   []seatSelection{{SeatID: 101, PassengerName: "Ada"}},
        SeatIDs: []uint64{1, 2, 3},
    }
    pairs := req.pairs()
    assert.Equal(t, []booking.PassengerSeat{{SeatID: 101, Name: "Ada"}}, pairs)

    // Legacy parallel lists zip by position; missing names stay empty
    // and are filled downstream.
    req = reserveRequest{
        SeatIDs:        []uint64{101, 102},
        PassengerNames: []string{"Ada"},
    }
    pairs = req.pairs()
    assert.Equal(t, []booking.PassengerSeat{
        {SeatID: 101, Name: "Ada"},
        {SeatID: 102, Name: ""},
    }, pairs)
}

package booking

import (
    "context"
    "database/sql"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/bus-ticket-reservation/internal/model"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, policy RefundPolicy) (*Engine, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    e := NewEngine(db, policy)
    e.now = func() time.Time { return fixedNow }
    return e, mock
}

func tripColumnsRow(available uint32, status string) *sqlmock.Rows {
    return sqlmock.NewRows([]string{
        "id", "bus_id", "origin_city_id", "dest_city_id", "departure_date",
        "departure_time", "arrival_time", "duration_minutes", "price_cents",
        "total_seats", "available_seats", "status",
    }).AddRow(9, 3, 1, 2, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
        "08:30:00", "12:30:00", 240, 35000, 40, available, status)
}

func bookingColumnsRow(status string, finalCents int64) *sqlmock.Rows {
    return sqlmock.NewRows([]string{
        "id", "code", "user_id", "trip_id", "coupon_id",
        "total_cents", "discount_cents", "final_cents", "status", "created_at",
    }).AddRow(77, "TKT-2025-000042", 4, 9, nil, 70000, 7000, finalCents, status, fixedNow)
}

func requireFailure(t *testing.T, err error, code FailureCode) *Failure {
    t.Helper()
    f, ok := AsFailure(err)
    require.True(t, ok, "expected a Failure, got %v", err)
    assert.Equal(t, code, f.Code)
    return f
}

func TestReserveWithCouponSuccess(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(12, model.TripStatusActive))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM seats WHERE bus_id = ? AND is_active = 1 AND id IN (?,?)`)).
        WithArgs(3, 101, 102).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101).AddRow(102))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT bs.seat_id`)).
        WithArgs(9, 101, 102).
        WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
    mock.ExpectQuery(regexp.QuoteMeta(`FROM coupons WHERE code = ? FOR UPDATE`)).
        WithArgs("SUMMER10").
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "code", "discount_rate", "usage_limit", "times_used", "expires_on", "is_active",
        }).AddRow(5, "SUMMER10", 10.0, 100, 3, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), true))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT used FROM coupon_redemptions WHERE coupon_id = ? AND user_id = ? FOR UPDATE`)).
        WithArgs(5, 4).
        WillReturnError(sql.ErrNoRows)
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT credit_balance_cents FROM users WHERE id = ? FOR UPDATE`)).
        WithArgs(4).
        WillReturnRows(sqlmock.NewRows([]string{"credit_balance_cents"}).AddRow(100000))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET credit_balance_cents = credit_balance_cents - ?`)).
        WithArgs(63000, 4, 63000).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO ticket_sequences (year, seq) VALUES (?, 1)`)).
        WithArgs(2025).
        WillReturnResult(sqlmock.NewResult(42, 2))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookings`)).
        WithArgs("TKT-2025-000042", 4, 9, 5, 70000, 7000, 63000, model.BookingStatusActive).
        WillReturnResult(sqlmock.NewResult(77, 1))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO booking_seats (booking_id, trip_id, seat_id, passenger_name) VALUES (?, ?, ?, ?),(?, ?, ?, ?)`)).
        WithArgs(77, 9, 101, "Ada", 77, 9, 102, "Guest").
        WillReturnResult(sqlmock.NewResult(0, 2))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE trips SET available_seats = available_seats - ?`)).
        WithArgs(2, 9, 2).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
        WithArgs(sqlmock.AnyArg(), 4, 77, 63000, model.PaymentKindPurchase, "Credit", "Completed").
        WillReturnResult(sqlmock.NewResult(900, 1))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE coupons SET times_used = times_used + 1`)).
        WithArgs(5).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO coupon_redemptions`)).
        WithArgs(5, 4, fixedNow).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    res, err := e.Reserve(context.Background(), ReserveRequest{
        UserID: 4,
        TripID: 9,
        Seats: []PassengerSeat{
            {SeatID: 101, Name: "Ada"},
            {SeatID: 102},
        },
        CouponCode: "SUMMER10",
    })
    require.NoError(t, err)
    assert.Equal(t, uint64(77), res.BookingID)
    assert.Equal(t, "TKT-2025-000042", res.Code)
    assert.Equal(t, int64(70000), res.TotalCents)
    assert.Equal(t, int64(7000), res.DiscountCents)
    assert.Equal(t, int64(63000), res.FinalCents)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeatConflictRollsBack(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(12, model.TripStatusActive))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM seats WHERE bus_id = ?`)).
        WithArgs(3, 101, 102).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101).AddRow(102))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT bs.seat_id`)).
        WithArgs(9, 101, 102).
        WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(102))
    mock.ExpectRollback()

    _, err := e.Reserve(context.Background(), ReserveRequest{
        UserID: 4,
        TripID: 9,
        Seats:  []PassengerSeat{{SeatID: 101}, {SeatID: 102}},
    })
    requireFailure(t, err, CodeSeatConflict)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveInsufficientCreditRollsBack(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(12, model.TripStatusActive))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM seats WHERE bus_id = ?`)).
        WithArgs(3, 101, 102).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101).AddRow(102))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT bs.seat_id`)).
        WithArgs(9, 101, 102).
        WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT credit_balance_cents FROM users WHERE id = ? FOR UPDATE`)).
        WithArgs(4).
        WillReturnRows(sqlmock.NewRows([]string{"credit_balance_cents"}).AddRow(1000))
    mock.ExpectRollback()

    _, err := e.Reserve(context.Background(), ReserveRequest{
        UserID: 4,
        TripID: 9,
        Seats:  []PassengerSeat{{SeatID: 101}, {SeatID: 102}},
    })
    f := requireFailure(t, err, CodeInsufficientCredit)
    assert.Contains(t, f.Message, "700.00")
    assert.Contains(t, f.Message, "10.00")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveTripNotActive(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(12, model.TripStatusCancelled))
    mock.ExpectRollback()

    _, err := e.Reserve(context.Background(), ReserveRequest{
        UserID: 4, TripID: 9, Seats: []PassengerSeat{{SeatID: 101}},
    })
    requireFailure(t, err, CodeTripNotActive)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveInsufficientSeats(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(1, model.TripStatusActive))
    mock.ExpectRollback()

    _, err := e.Reserve(context.Background(), ReserveRequest{
        UserID: 4, TripID: 9, Seats: []PassengerSeat{{SeatID: 101}, {SeatID: 102}},
    })
    requireFailure(t, err, CodeInsufficientSeats)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// Input validation rejects the request before any store access.
func TestReserveInputValidation(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    _, err := e.Reserve(context.Background(), ReserveRequest{UserID: 4, TripID: 9})
    requireFailure(t, err, CodeInvalidRequest)

    six := make([]PassengerSeat, 6)
    for i := range six {
        six[i].SeatID = uint64(i + 1)
    }
    _, err = e.Reserve(context.Background(), ReserveRequest{UserID: 4, TripID: 9, Seats: six})
    requireFailure(t, err, CodeTooManySeats)

    _, err = e.Reserve(context.Background(), ReserveRequest{
        UserID: 4, TripID: 9,
        Seats: []PassengerSeat{{SeatID: 7}, {SeatID: 7}},
    })
    requireFailure(t, err, CodeSeatConflict)

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveCouponAlreadyRedeemed(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(12, model.TripStatusActive))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM seats WHERE bus_id = ?`)).
        WithArgs(3, 101).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT bs.seat_id`)).
        WithArgs(9, 101).
        WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
    mock.ExpectQuery(regexp.QuoteMeta(`FROM coupons WHERE code = ? FOR UPDATE`)).
        WithArgs("SUMMER10").
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "code", "discount_rate", "usage_limit", "times_used", "expires_on", "is_active",
        }).AddRow(5, "SUMMER10", 10.0, 100, 3, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), true))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT used FROM coupon_redemptions`)).
        WithArgs(5, 4).
        WillReturnRows(sqlmock.NewRows([]string{"used"}).AddRow(true))
    mock.ExpectRollback()

    _, err := e.Reserve(context.Background(), ReserveRequest{
        UserID: 4, TripID: 9,
        Seats:      []PassengerSeat{{SeatID: 101}},
        CouponCode: "SUMMER10",
    })
    requireFailure(t, err, CodeCouponAlreadyRedeemed)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// expectCancelLockSequence registers the opening statements of every
// cancellation: the unlocked trip lookup, the trip row lock, then the
// booking row lock.  Expectations are ordered, so a cancellation that
// locked the booking before the trip would fail these tests.
func expectCancelLockSequence(mock sqlmock.Sqlmock, bookingStatus string) {
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT trip_id FROM bookings WHERE id = ? AND user_id = ?`)).
        WithArgs(77, 4).
        WillReturnRows(sqlmock.NewRows([]string{"trip_id"}).AddRow(9))
    mock.ExpectQuery(regexp.QuoteMeta(`FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(10, model.TripStatusActive))
    mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ? AND user_id = ? FOR UPDATE`)).
        WithArgs(77, 4).
        WillReturnRows(bookingColumnsRow(bookingStatus, 63000))
}

func TestCancelFullRefund(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    expectCancelLockSequence(mock, model.BookingStatusActive)
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM booking_seats WHERE booking_id = ?`)).
        WithArgs(77).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status = 'Cancelled'`)).
        WithArgs(fixedNow, 63000, 77).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE trips SET available_seats = available_seats + ?`)).
        WithArgs(2, 9).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET credit_balance_cents = credit_balance_cents + ?`)).
        WithArgs(63000, 4).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
        WithArgs(sqlmock.AnyArg(), 4, 77, 63000, model.PaymentKindRefund, "Credit", "Completed").
        WillReturnResult(sqlmock.NewResult(901, 1))
    mock.ExpectCommit()

    res, err := e.Cancel(context.Background(), 77, 4)
    require.NoError(t, err)
    assert.Equal(t, uint64(77), res.BookingID)
    assert.Equal(t, uint32(2), res.SeatCount)
    assert.Equal(t, int64(63000), res.RefundCents)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelNotFound(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT trip_id FROM bookings WHERE id = ? AND user_id = ?`)).
        WithArgs(77, 4).
        WillReturnError(sql.ErrNoRows)
    mock.ExpectRollback()

    _, err := e.Cancel(context.Background(), 77, 4)
    requireFailure(t, err, CodeBookingNotFound)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelAlreadyCancelled(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    expectCancelLockSequence(mock, model.BookingStatusCancelled)
    mock.ExpectRollback()

    _, err := e.Cancel(context.Background(), 77, 4)
    requireFailure(t, err, CodeNotCancellable)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// A cancellation and a reservation on the same trip must acquire row
// locks in the same order.  Reserve locks the trip first, so Cancel
// has to lock the trip before it locks the booking row; the ordered
// expectations here pin that sequence down.
func TestCancelAcquiresTripLockBeforeBookingLock(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT trip_id FROM bookings WHERE id = ? AND user_id = ?`)).
        WithArgs(77, 4).
        WillReturnRows(sqlmock.NewRows([]string{"trip_id"}).AddRow(9))
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, bus_id, origin_city_id, dest_city_id, departure_date,
       departure_time, arrival_time, duration_minutes, price_cents,
       total_seats, available_seats, status FROM trips WHERE id = ? FOR UPDATE`)).
        WithArgs(9).
        WillReturnRows(tripColumnsRow(10, model.TripStatusActive))
    mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = ? AND user_id = ? FOR UPDATE`)).
        WithArgs(77, 4).
        WillReturnRows(bookingColumnsRow(model.BookingStatusCancelled, 63000))
    mock.ExpectRollback()

    _, err := e.Cancel(context.Background(), 77, 4)
    requireFailure(t, err, CodeNotCancellable)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// With the time-based policy a cancellation 30 minutes before the trip
// departs refunds half the final price.
func TestCancelTimedPolicyHalfRefund(t *testing.T) {
    e, mock := newTestEngine(t, TimeBasedRefund)
    e.now = func() time.Time { return time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC) }
    at := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    expectCancelLockSequence(mock, model.BookingStatusActive)
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM booking_seats WHERE booking_id = ?`)).
        WithArgs(77).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status = 'Cancelled'`)).
        WithArgs(at, 31500, 77).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE trips SET available_seats = available_seats + ?`)).
        WithArgs(2, 9).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET credit_balance_cents = credit_balance_cents + ?`)).
        WithArgs(31500, 4).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
        WithArgs(sqlmock.AnyArg(), 4, 77, 31500, model.PaymentKindRefund, "Credit", "Completed").
        WillReturnResult(sqlmock.NewResult(902, 1))
    mock.ExpectCommit()

    res, err := e.Cancel(context.Background(), 77, 4)
    require.NoError(t, err)
    assert.Equal(t, int64(31500), res.RefundCents)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTimedPolicyAfterDeparture(t *testing.T) {
    e, mock := newTestEngine(t, TimeBasedRefund)
    e.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }

    mock.ExpectBegin()
    expectCancelLockSequence(mock, model.BookingStatusActive)
    mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM booking_seats WHERE booking_id = ?`)).
        WithArgs(77).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
    mock.ExpectRollback()

    _, err := e.Cancel(context.Background(), 77, 4)
    requireFailure(t, err, CodeNotCancellable)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopUp(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET credit_balance_cents = credit_balance_cents + ?`)).
        WithArgs(50000, 4).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO payments`)).
        WithArgs(sqlmock.AnyArg(), 4, nil, 50000, model.PaymentKindTopUp, "CreditCard", "Completed").
        WillReturnResult(sqlmock.NewResult(903, 1))
    mock.ExpectCommit()

    require.NoError(t, e.TopUp(context.Background(), 4, 50000, ""))
    assert.NoError(t, mock.ExpectationsWereMet())
}

// Crediting an account with no user row must roll back before the
// ledger entry is written, so no payment row can exist without a
// matching balance movement.
func TestTopUpUnknownAccountRollsBack(t *testing.T) {
    e, mock := newTestEngine(t, nil)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET credit_balance_cents = credit_balance_cents + ?`)).
        WithArgs(50000, 99).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectRollback()

    err := e.TopUp(context.Background(), 99, 50000, "CreditCard")
    requireFailure(t, err, CodeInvalidRequest)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopUpRejectsNonPositiveAmount(t *testing.T) {
    e, mock := newTestEngine(t, nil)
    err := e.TopUp(context.Background(), 4, 0, "CreditCard")
    requireFailure(t, err, CodeInvalidRequest)
    err = e.TopUp(context.Background(), 4, -100, "CreditCard")
    requireFailure(t, err, CodeInvalidRequest)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckCouponRules(t *testing.T) {
    base := model.Coupon{
        ID: 5, Code: "SUMMER10", DiscountRate: 10,
        UsageLimit: 100, TimesUsed: 3,
        ExpiresOn: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
        IsActive:  true,
    }

    // Valid on the expiry date itself.
    assert.NoError(t, checkCoupon(&base, false, fixedNow))

    inactive := base
    inactive.IsActive = false
    requireFailure(t, checkCoupon(&inactive, false, fixedNow), CodeCouponInactive)

    expired := base
    expired.ExpiresOn = time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
    requireFailure(t, checkCoupon(&expired, false, fixedNow), CodeCouponExpired)

    exhausted := base
    exhausted.TimesUsed = 100
    requireFailure(t, checkCoupon(&exhausted, false, fixedNow), CodeCouponLimitReached)

    requireFailure(t, checkCoupon(&base, true, fixedNow), CodeCouponAlreadyRedeemed)
}

func TestFailureRetryable(t *testing.T) {
    assert.False(t, failf(CodeSeatConflict, "x").Retryable())
    assert.True(t, storeErr(sql.ErrConnDone).Retryable())
    assert.ErrorIs(t, storeErr(sql.ErrConnDone), sql.ErrConnDone)
}

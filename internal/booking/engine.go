// Package booking implements the reservation and settlement engine:
// the transactional workflow that turns a seat selection into an
// atomic, conflict-free booking and reverses it on cancellation.  All
// catalog data (trips, seats, coupons, users) is owned by external
// services; the engine reads it, and writes only bookings, the
// available-seat counter, coupon usage, credit balances and the
// payment ledger, always inside a single transaction per request.
package booking

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/bus-ticket-reservation/internal/model"
    "github.com/iliyamo/bus-ticket-reservation/internal/pricing"
    "github.com/iliyamo/bus-ticket-reservation/internal/repository"
)

// MaxSeatsPerBooking caps how many seats one booking may hold.
const MaxSeatsPerBooking = 5

// placeholderPassenger is used when a seat arrives without a name.
const placeholderPassenger = "Guest"

// Engine coordinates the inventory, pricing, coupon, credit and ledger
// components under one transaction per request.  It is safe for
// concurrent use; serialisation of conflicting requests is delegated
// to row locks taken in a fixed order (trip, then seats, then coupon,
// then account).
type Engine struct {
    db       *sql.DB
    trips    *repository.TripRepo
    seats    *repository.SeatRepo
    bookings *repository.BookingRepo
    coupons  *repository.CouponRepo
    credit   *repository.CreditRepo
    payments *repository.PaymentRepo
    codes    *repository.TicketCodeRepo
    refund   RefundPolicy
    now      func() time.Time
}

// NewEngine builds an Engine on top of the given database using the
// supplied refund policy.  A nil policy defaults to FullRefund.
func NewEngine(db *sql.DB, refund RefundPolicy) *Engine {
    if refund == nil {
        refund = FullRefund
    }
    return &Engine{
        db:       db,
        trips:    repository.NewTripRepo(db),
        seats:    repository.NewSeatRepo(db),
        bookings: repository.NewBookingRepo(db),
        coupons:  repository.NewCouponRepo(db),
        credit:   repository.NewCreditRepo(db),
        payments: repository.NewPaymentRepo(db),
        codes:    repository.NewTicketCodeRepo(db),
        refund:   refund,
        now:      func() time.Time { return time.Now().UTC() },
    }
}

// PassengerSeat pairs one requested seat with the passenger occupying
// it.  The pair is supplied atomically by the caller; there is no
// positional zipping of separate lists inside the engine.
type PassengerSeat struct {
    SeatID uint64
    Name   string
}

// ReserveRequest is the input of Reserve.
type ReserveRequest struct {
    UserID     uint64
    TripID     uint64
    Seats      []PassengerSeat
    CouponCode string
}

// ReserveResult reports a successful booking.
type ReserveResult struct {
    BookingID     uint64
    Code          string
    TotalCents    int64
    DiscountCents int64
    FinalCents    int64
}

// Reserve books the requested seats on a trip, debits the user's
// credit for the (possibly discounted) price, and records the
// settlement, all in one transaction.  On any failure the transaction
// rolls back and the caller observes no side effect: no partial seat
// holds, no partial debits, no spent coupon.
func (e *Engine) Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error) {
    if len(req.Seats) == 0 {
        return nil, failf(CodeInvalidRequest, "at least one seat is required")
    }
    if len(req.Seats) > MaxSeatsPerBooking {
        return nil, failf(CodeTooManySeats, "at most %d seats per booking, got %d", MaxSeatsPerBooking, len(req.Seats))
    }
    seatIDs := make([]uint64, 0, len(req.Seats))
    seen := make(map[uint64]struct{}, len(req.Seats))
    for i := range req.Seats {
        id := req.Seats[i].SeatID
        if id == 0 {
            return nil, failf(CodeInvalidRequest, "invalid seat id")
        }
        if _, dup := seen[id]; dup {
            return nil, failf(CodeSeatConflict, "seat %d requested twice", id)
        }
        seen[id] = struct{}{}
        seatIDs = append(seatIDs, id)
        if req.Seats[i].Name == "" {
            req.Seats[i].Name = placeholderPassenger
        }
    }
    seatCount := uint32(len(seatIDs))
    now := e.now()

    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, storeErr(err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Lock the trip row first; this serialises all reservations and
    // cancellations touching the same trip.
    trip, err := e.trips.GetForUpdateTx(ctx, tx, req.TripID)
    if errors.Is(err, repository.ErrTripNotFound) {
        return nil, failf(CodeTripNotFound, "trip %d not found", req.TripID)
    }
    if err != nil {
        return nil, storeErr(err)
    }
    if trip.Status != model.TripStatusActive {
        return nil, failf(CodeTripNotActive, "trip is %s, not open for booking", trip.Status)
    }
    if seatCount > trip.AvailableSeats {
        return nil, failf(CodeInsufficientSeats, "only %d seats available, %d requested", trip.AvailableSeats, seatCount)
    }

    // The requested seats must exist on the trip's bus and be active.
    known, err := e.seats.ActiveSeatIDsTx(ctx, tx, trip.BusID, seatIDs)
    if err != nil {
        return nil, storeErr(err)
    }
    if len(known) != len(seatIDs) {
        valid := make(map[uint64]struct{}, len(known))
        for _, id := range known {
            valid[id] = struct{}{}
        }
        for _, id := range seatIDs {
            if _, ok := valid[id]; !ok {
                return nil, failf(CodeInvalidRequest, "seat %d does not exist on this trip", id)
            }
        }
    }

    // Occupancy check and seat hold happen inside the same locked
    // transaction, so two overlapping requests resolve with exactly
    // one winner; the loser sees a seat conflict.
    taken, err := e.seats.TakenSeatIDsTx(ctx, tx, trip.ID, seatIDs)
    if err != nil {
        return nil, storeErr(err)
    }
    if len(taken) > 0 {
        return nil, failf(CodeSeatConflict, "seats already taken: %v", taken)
    }

    var coupon *model.Coupon
    if req.CouponCode != "" {
        coupon, err = e.validateCouponTx(ctx, tx, req.CouponCode, req.UserID, now)
        if err != nil {
            return nil, err
        }
    }

    var rate float64
    if coupon != nil {
        rate = coupon.DiscountRate
    }
    quote := pricing.Compute(trip.PriceCents, int(seatCount), rate)

    balance, err := e.credit.BalanceForUpdateTx(ctx, tx, req.UserID)
    if err != nil {
        return nil, storeErr(err)
    }
    if balance < quote.FinalCents {
        return nil, failf(CodeInsufficientCredit, "insufficient credit: required %s, available %s",
            formatAmount(quote.FinalCents), formatAmount(balance))
    }
    if err := e.credit.DebitTx(ctx, tx, req.UserID, quote.FinalCents); err != nil {
        if errors.Is(err, repository.ErrInsufficientCredit) {
            return nil, failf(CodeInsufficientCredit, "insufficient credit: required %s, available %s",
                formatAmount(quote.FinalCents), formatAmount(balance))
        }
        return nil, storeErr(err)
    }

    code, err := e.codes.NextTx(ctx, tx, now.Year())
    if err != nil {
        return nil, storeErr(err)
    }

    rec := &repository.BookingRecord{
        Code:          code,
        UserID:        req.UserID,
        TripID:        trip.ID,
        TotalCents:    quote.TotalCents,
        DiscountCents: quote.DiscountCents,
        FinalCents:    quote.FinalCents,
        Status:        model.BookingStatusActive,
    }
    if coupon != nil {
        rec.CouponID = &coupon.ID
    }
    if err := e.bookings.CreateTx(ctx, tx, rec); err != nil {
        return nil, storeErr(err)
    }

    seatRecs := make([]repository.BookingSeatRecord, 0, len(req.Seats))
    for _, ps := range req.Seats {
        seatRecs = append(seatRecs, repository.BookingSeatRecord{
            BookingID:     rec.ID,
            TripID:        trip.ID,
            SeatID:        ps.SeatID,
            PassengerName: ps.Name,
        })
    }
    if err := e.bookings.CreateSeatsBulkTx(ctx, tx, seatRecs); err != nil {
        return nil, storeErr(err)
    }

    if err := e.trips.TryDecrementAvailableTx(ctx, tx, trip.ID, seatCount); err != nil {
        if errors.Is(err, repository.ErrInsufficientSeats) {
            return nil, failf(CodeInsufficientSeats, "only %d seats available, %d requested", trip.AvailableSeats, seatCount)
        }
        return nil, storeErr(err)
    }

    if err := e.payments.AppendTx(ctx, tx, &model.Payment{
        UserID:      req.UserID,
        BookingID:   &rec.ID,
        AmountCents: quote.FinalCents,
        Kind:        model.PaymentKindPurchase,
        Method:      "Credit",
    }); err != nil {
        return nil, storeErr(err)
    }

    if coupon != nil {
        if err := e.coupons.RedeemTx(ctx, tx, coupon.ID, req.UserID, now); err != nil {
            if errors.Is(err, repository.ErrCouponExhausted) {
                return nil, failf(CodeCouponLimitReached, "coupon %s has reached its usage limit", coupon.Code)
            }
            return nil, storeErr(err)
        }
    }

    if err := tx.Commit(); err != nil {
        return nil, storeErr(err)
    }
    committed = true

    return &ReserveResult{
        BookingID:     rec.ID,
        Code:          rec.Code,
        TotalCents:    quote.TotalCents,
        DiscountCents: quote.DiscountCents,
        FinalCents:    quote.FinalCents,
    }, nil
}

// CancelResult reports a successful cancellation.
type CancelResult struct {
    BookingID   uint64
    Code        string
    TripID      uint64
    SeatCount   uint32
    RefundCents int64
}

// Cancel voids an Active booking owned by the user, releases its
// seats back to the trip, credits the refund decided by the configured
// policy and records it in the ledger, all in one transaction.
func (e *Engine) Cancel(ctx context.Context, bookingID, userID uint64) (*CancelResult, error) {
    now := e.now()

    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, storeErr(err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Resolve the trip without locking the booking, then lock the
    // trip row before the booking row.  Reservations lock the trip
    // first too, so a cancellation releasing seats and a reservation
    // grabbing them can never each hold the lock the other waits on.
    tripID, err := e.bookings.TripIDForUserTx(ctx, tx, bookingID, userID)
    if errors.Is(err, repository.ErrBookingNotFound) {
        return nil, failf(CodeBookingNotFound, "booking %d not found", bookingID)
    }
    if err != nil {
        return nil, storeErr(err)
    }
    trip, err := e.trips.GetForUpdateTx(ctx, tx, tripID)
    if err != nil {
        return nil, storeErr(err)
    }

    b, err := e.bookings.GetForUserForUpdateTx(ctx, tx, bookingID, userID)
    if errors.Is(err, repository.ErrBookingNotFound) {
        return nil, failf(CodeBookingNotFound, "booking %d not found", bookingID)
    }
    if err != nil {
        return nil, storeErr(err)
    }
    if b.Status != model.BookingStatusActive {
        return nil, failf(CodeNotCancellable, "booking is %s and cannot be cancelled", b.Status)
    }

    seatCount, err := e.bookings.SeatCountTx(ctx, tx, b.ID)
    if err != nil {
        return nil, storeErr(err)
    }

    refundCents, err := e.refund(b.FinalCents, trip.DepartsAt(), now)
    if err != nil {
        return nil, err
    }

    if err := e.bookings.MarkCancelledTx(ctx, tx, b.ID, now, refundCents); err != nil {
        return nil, storeErr(err)
    }
    if err := e.trips.IncrementAvailableTx(ctx, tx, trip.ID, seatCount); err != nil {
        return nil, storeErr(err)
    }
    if err := e.credit.CreditTx(ctx, tx, userID, refundCents); err != nil {
        return nil, storeErr(err)
    }
    if err := e.payments.AppendTx(ctx, tx, &model.Payment{
        UserID:      userID,
        BookingID:   &b.ID,
        AmountCents: refundCents,
        Kind:        model.PaymentKindRefund,
        Method:      "Credit",
    }); err != nil {
        return nil, storeErr(err)
    }

    if err := tx.Commit(); err != nil {
        return nil, storeErr(err)
    }
    committed = true

    return &CancelResult{
        BookingID:   b.ID,
        Code:        b.Code,
        TripID:      trip.ID,
        SeatCount:   seatCount,
        RefundCents: refundCents,
    }, nil
}

// TopUp adds funds to a user's credit account and records the matching
// TopUp ledger entry in the same transaction.
func (e *Engine) TopUp(ctx context.Context, userID uint64, amountCents int64, method string) error {
    if amountCents <= 0 {
        return failf(CodeInvalidRequest, "top-up amount must be positive")
    }
    if method == "" {
        method = "CreditCard"
    }
    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return storeErr(err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := e.credit.CreditTx(ctx, tx, userID, amountCents); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return failf(CodeInvalidRequest, "account %d not found", userID)
        }
        return storeErr(err)
    }
    if err := e.payments.AppendTx(ctx, tx, &model.Payment{
        UserID:      userID,
        AmountCents: amountCents,
        Kind:        model.PaymentKindTopUp,
        Method:      method,
    }); err != nil {
        return storeErr(err)
    }
    if err := tx.Commit(); err != nil {
        return storeErr(err)
    }
    committed = true
    return nil
}

// SeatStatus returns the seat map of a trip with per-seat occupancy.
func (e *Engine) SeatStatus(ctx context.Context, tripID uint64) ([]repository.SeatStatusRow, error) {
    trip, err := e.trips.GetByID(ctx, tripID)
    if errors.Is(err, repository.ErrTripNotFound) {
        return nil, failf(CodeTripNotFound, "trip %d not found", tripID)
    }
    if err != nil {
        return nil, storeErr(err)
    }
    rows, err := e.seats.SeatStatusByTrip(ctx, tripID, trip.BusID)
    if err != nil {
        return nil, storeErr(err)
    }
    return rows, nil
}

// CouponQuote is the outcome of a successful coupon validation.
type CouponQuote struct {
    CouponID     uint64
    DiscountRate float64
}

// ValidateCoupon checks a coupon for a user without redeeming it, for
// the price-preview endpoint.  The same rules run again, under locks,
// inside Reserve; a preview is advisory and holds nothing.
func (e *Engine) ValidateCoupon(ctx context.Context, code string, userID uint64) (*CouponQuote, error) {
    c, err := e.coupons.GetByCode(ctx, code)
    if errors.Is(err, repository.ErrCouponNotFound) {
        return nil, failf(CodeCouponNotFound, "coupon %s not found", code)
    }
    if err != nil {
        return nil, storeErr(err)
    }
    used, err := e.coupons.RedemptionUsed(ctx, c.ID, userID)
    if err != nil {
        return nil, storeErr(err)
    }
    if err := checkCoupon(c, used, e.now()); err != nil {
        return nil, err
    }
    return &CouponQuote{CouponID: c.ID, DiscountRate: c.DiscountRate}, nil
}

// validateCouponTx runs the coupon rules inside the booking
// transaction with the coupon and redemption rows locked.
func (e *Engine) validateCouponTx(ctx context.Context, tx *sql.Tx, code string, userID uint64, now time.Time) (*model.Coupon, error) {
    c, err := e.coupons.GetByCodeForUpdateTx(ctx, tx, code)
    if errors.Is(err, repository.ErrCouponNotFound) {
        return nil, failf(CodeCouponNotFound, "coupon %s not found", code)
    }
    if err != nil {
        return nil, storeErr(err)
    }
    used, err := e.coupons.RedemptionUsedTx(ctx, tx, c.ID, userID)
    if err != nil {
        return nil, storeErr(err)
    }
    if err := checkCoupon(c, used, now); err != nil {
        return nil, err
    }
    return c, nil
}

// checkCoupon applies the validation rules shared by the preview and
// the booking path.  Expiry is date-granular: a coupon is rejected
// only when its expiry date is strictly before the current UTC date.
func checkCoupon(c *model.Coupon, alreadyUsed bool, now time.Time) error {
    if !c.IsActive {
        return failf(CodeCouponInactive, "coupon %s is no longer active", c.Code)
    }
    today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
    if c.ExpiresOn.Before(today) {
        return failf(CodeCouponExpired, "coupon %s expired on %s", c.Code, c.ExpiresOn.Format("2006-01-02"))
    }
    if c.TimesUsed >= c.UsageLimit {
        return failf(CodeCouponLimitReached, "coupon %s has reached its usage limit", c.Code)
    }
    if alreadyUsed {
        return failf(CodeCouponAlreadyRedeemed, "coupon %s was already redeemed by this user", c.Code)
    }
    return nil
}

// formatAmount renders cents as a decimal string for user-facing
// messages, e.g. 63000 -> "630.00".
func formatAmount(cents int64) string {
    sign := ""
    if cents < 0 {
        sign = "-"
        cents = -cents
    }
    return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"
)

// BookingRepo provides persistence for bookings and their seats.  A
// booking groups the seats bought for one trip by one user in a single
// settlement.  Rows are never deleted: cancellation is a status change
// so the purchase history stays auditable.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingRecord mirrors the schema of the bookings table.  It is used
// by the repository when constructing or scanning rows; the engine
// works with these directly inside its transaction.
type BookingRecord struct {
    ID            uint64
    Code          string
    UserID        uint64
    TripID        uint64
    CouponID      *uint64
    TotalCents    int64
    DiscountCents int64
    FinalCents    int64
    Status        string
    CreatedAt     time.Time
}

// BookingSeatRecord mirrors the booking_seats table.  Only the fields
// needed for insertion are exposed.
type BookingSeatRecord struct {
    BookingID     uint64
    TripID        uint64
    SeatID        uint64
    PassengerName string
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID on the provided record.
// The caller must commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
    const q = `INSERT INTO bookings
               (code, user_id, trip_id, coupon_id, total_cents, discount_cents, final_cents, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        b.Code, b.UserID, b.TripID, b.CouponID,
        b.TotalCents, b.DiscountCents, b.FinalCents, b.Status,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// CreateSeatsBulkTx inserts the booking_seats rows for one booking in
// a single statement.  Passing an empty slice has no effect.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, seats []BookingSeatRecord) error {
    if len(seats) == 0 {
        return nil
    }
    query := `INSERT INTO booking_seats (booking_id, trip_id, seat_id, passenger_name) VALUES `
    args := make([]any, 0, len(seats)*4)
    for i, s := range seats {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, s.BookingID, s.TripID, s.SeatID, s.PassengerName)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// TripIDForUserTx returns the trip of a booking scoped to its owner
// without taking any lock.  The cancellation flow uses it to find the
// trip row it must lock first; the booking itself is re-read FOR
// UPDATE only after the trip lock is held, so cancellations acquire
// locks in the same trip-first order as reservations.
func (r *BookingRepo) TripIDForUserTx(ctx context.Context, tx *sql.Tx, bookingID, userID uint64) (uint64, error) {
    const q = `SELECT trip_id FROM bookings WHERE id = ? AND user_id = ?`
    var tripID uint64
    err := tx.QueryRowContext(ctx, q, bookingID, userID).Scan(&tripID)
    if errors.Is(err, sql.ErrNoRows) {
        return 0, ErrBookingNotFound
    }
    if err != nil {
        return 0, err
    }
    return tripID, nil
}

// GetForUserForUpdateTx loads a booking scoped to its owner and locks
// the row.  ErrBookingNotFound covers both a missing booking and an
// owner mismatch.
func (r *BookingRepo) GetForUserForUpdateTx(ctx context.Context, tx *sql.Tx, bookingID, userID uint64) (*BookingRecord, error) {
    const q = `SELECT id, code, user_id, trip_id, coupon_id,
                      total_cents, discount_cents, final_cents, status, created_at
               FROM bookings WHERE id = ? AND user_id = ? FOR UPDATE`
    var b BookingRecord
    var couponID sql.NullInt64
    err := tx.QueryRowContext(ctx, q, bookingID, userID).Scan(
        &b.ID, &b.Code, &b.UserID, &b.TripID, &couponID,
        &b.TotalCents, &b.DiscountCents, &b.FinalCents, &b.Status, &b.CreatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    if couponID.Valid {
        id := uint64(couponID.Int64)
        b.CouponID = &id
    }
    return &b, nil
}

// SeatCountTx returns how many seats a booking holds.
func (r *BookingRepo) SeatCountTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint32, error) {
    const q = `SELECT COUNT(*) FROM booking_seats WHERE booking_id = ?`
    var n uint32
    err := tx.QueryRowContext(ctx, q, bookingID).Scan(&n)
    return n, err
}

// MarkCancelledTx flips an Active booking to Cancelled and records the
// cancellation time and refund.  The status guard makes the update a
// no-op if the booking moved out of Active since it was locked.
func (r *BookingRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, bookingID uint64, at time.Time, refundCents int64) error {
    const q = `UPDATE bookings SET status = 'Cancelled', cancelled_at = ?, refund_cents = ?
               WHERE id = ? AND status = 'Active'`
    res, err := tx.ExecContext(ctx, q, at, refundCents, bookingID)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrBookingNotFound
    }
    return nil
}

// TicketDetail is the joined view of a booking returned to its owner:
// route, schedule, seats and the price breakdown.
type TicketDetail struct {
    ID            uint64   `json:"id"`
    Code          string   `json:"code"`
    TripID        uint64   `json:"trip_id"`
    CompanyName   string   `json:"company_name"`
    OriginCity    string   `json:"origin_city"`
    DestCity      string   `json:"dest_city"`
    DepartureDate string   `json:"departure_date"`
    DepartureTime string   `json:"departure_time"`
    TotalCents    int64    `json:"total_cents"`
    DiscountCents int64    `json:"discount_cents"`
    FinalCents    int64    `json:"final_cents"`
    RefundCents   int64    `json:"refund_cents"`
    Status        string   `json:"status"`
    CreatedAt     string   `json:"created_at"`
    Seats         []struct {
        SeatID        uint64 `json:"seat_id"`
        SeatNumber    uint32 `json:"seat_number"`
        PassengerName string `json:"passenger_name"`
    } `json:"seats"`
}

// ListByUser returns all bookings of a user, newest first, optionally
// filtered by status, with their seats populated in one follow-up
// query.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, status string) ([]TicketDetail, error) {
    q := `SELECT bk.id, bk.code, bk.trip_id, co.name, oc.name, dc.name,
                 DATE_FORMAT(t.departure_date, '%Y-%m-%d'), t.departure_time,
                 bk.total_cents, bk.discount_cents, bk.final_cents, bk.refund_cents,
                 bk.status, DATE_FORMAT(bk.created_at, '%Y-%m-%d %T')
          FROM bookings bk
          JOIN trips t      ON t.id = bk.trip_id
          JOIN buses b      ON b.id = t.bus_id
          JOIN companies co ON co.id = b.company_id
          JOIN cities oc    ON oc.id = t.origin_city_id
          JOIN cities dc    ON dc.id = t.dest_city_id
          WHERE bk.user_id = ?`
    args := []any{userID}
    if status != "" {
        q += ` AND bk.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY bk.created_at DESC`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    details := make([]TicketDetail, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var d TicketDetail
        if err := rows.Scan(
            &d.ID, &d.Code, &d.TripID, &d.CompanyName, &d.OriginCity, &d.DestCity,
            &d.DepartureDate, &d.DepartureTime,
            &d.TotalCents, &d.DiscountCents, &d.FinalCents, &d.RefundCents,
            &d.Status, &d.CreatedAt,
        ); err != nil {
            return nil, err
        }
        d.Seats = []struct {
            SeatID        uint64 `json:"seat_id"`
            SeatNumber    uint32 `json:"seat_number"`
            PassengerName string `json:"passenger_name"`
        }{}
        index[d.ID] = len(details)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return details, nil
    }

    // Populate seats for all bookings in a single query.
    ids := make([]any, 0, len(details))
    for _, d := range details {
        ids = append(ids, d.ID)
    }
    seatQ := `SELECT bs.booking_id, bs.seat_id, s.seat_number, bs.passenger_name
              FROM booking_seats bs
              JOIN seats s ON s.id = bs.seat_id
              WHERE bs.booking_id IN (` + placeholders(len(ids)) + `)
              ORDER BY bs.booking_id, s.seat_row, s.seat_col`
    srows, err := r.db.QueryContext(ctx, seatQ, ids...)
    if err != nil {
        return nil, err
    }
    defer srows.Close()
    for srows.Next() {
        var bid, sid uint64
        var num uint32
        var name string
        if err := srows.Scan(&bid, &sid, &num, &name); err != nil {
            return nil, err
        }
        i, ok := index[bid]
        if !ok {
            continue
        }
        details[i].Seats = append(details[i].Seats, struct {
            SeatID        uint64 `json:"seat_id"`
            SeatNumber    uint32 `json:"seat_number"`
            PassengerName string `json:"passenger_name"`
        }{SeatID: sid, SeatNumber: num, PassengerName: name})
    }
    if err := srows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// GetDetailForUser returns one booking with seats, enforcing
// ownership inside the query.
func (r *BookingRepo) GetDetailForUser(ctx context.Context, bookingID, userID uint64) (*TicketDetail, error) {
    details, err := r.ListByUser(ctx, userID, "")
    if err != nil {
        return nil, err
    }
    for i := range details {
        if details[i].ID == bookingID {
            return &details[i], nil
        }
    }
    return nil, ErrBookingNotFound
}

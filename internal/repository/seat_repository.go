package repository

import (
    "context"
    "database/sql"
    "strings"
)

// SeatRepo reads seat reference data and derives per-trip occupancy
// from booking_seats.  Seats themselves are immutable here: layout
// management belongs to the fleet catalog.
type SeatRepo struct {
    db *sql.DB
}

// NewSeatRepo constructs a SeatRepo given a DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
    return &SeatRepo{db: db}
}

func placeholders(n int) string {
    return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// ActiveSeatIDsTx returns which of the requested seat IDs exist on the
// given bus and are active.  Requested seats missing from the result
// are not sellable on this trip at all, independent of occupancy.
func (r *SeatRepo) ActiveSeatIDsTx(ctx context.Context, tx *sql.Tx, busID uint64, seatIDs []uint64) ([]uint64, error) {
    if len(seatIDs) == 0 {
        return nil, nil
    }
    q := `SELECT id FROM seats WHERE bus_id = ? AND is_active = 1 AND id IN (` + placeholders(len(seatIDs)) + `)`
    args := make([]any, 0, len(seatIDs)+1)
    args = append(args, busID)
    for _, id := range seatIDs {
        args = append(args, id)
    }
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        out = append(out, id)
    }
    return out, rows.Err()
}

// TakenSeatIDsTx returns the subset of the requested seats that are
// already held by an Active or Completed booking on the trip.  The
// rows are locked so the check and the subsequent booking_seats insert
// form one atomic unit; two overlapping reservations therefore resolve
// with exactly one winner.  Cancelled bookings keep their booking_seats
// rows but are excluded here, which is what logically releases their
// seats.
func (r *SeatRepo) TakenSeatIDsTx(ctx context.Context, tx *sql.Tx, tripID uint64, seatIDs []uint64) ([]uint64, error) {
    if len(seatIDs) == 0 {
        return nil, nil
    }
    q := `SELECT bs.seat_id
          FROM booking_seats bs
          JOIN bookings b ON b.id = bs.booking_id
          WHERE bs.trip_id = ? AND b.status IN ('Active', 'Completed')
            AND bs.seat_id IN (` + placeholders(len(seatIDs)) + `)
          FOR UPDATE`
    args := make([]any, 0, len(seatIDs)+1)
    args = append(args, tripID)
    for _, id := range seatIDs {
        args = append(args, id)
    }
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        out = append(out, id)
    }
    return out, rows.Err()
}

// SeatStatusRow is one entry of a trip's seat map: the seat's position
// plus whether it is currently held, and by whom when it is.
type SeatStatusRow struct {
    SeatID        uint64  `json:"seat_id"`
    SeatNumber    uint32  `json:"seat_number"`
    SeatRow       uint32  `json:"row"`
    SeatCol       uint32  `json:"column"`
    Status        string  `json:"status"` // Available | Occupied
    PassengerName *string `json:"passenger_name,omitempty"`
}

// SeatStatusByTrip renders the full seat map of a trip.  A seat is
// Occupied when it appears in booking_seats under an Active or
// Completed booking for this trip; everything else is Available.
func (r *SeatRepo) SeatStatusByTrip(ctx context.Context, tripID, busID uint64) ([]SeatStatusRow, error) {
    const q = `SELECT s.id, s.seat_number, s.seat_row, s.seat_col, bs.passenger_name
               FROM seats s
               LEFT JOIN booking_seats bs
                   ON bs.seat_id = s.id AND bs.trip_id = ?
                   AND bs.booking_id IN (SELECT id FROM bookings WHERE status IN ('Active', 'Completed'))
               WHERE s.bus_id = ? AND s.is_active = 1
               ORDER BY s.seat_row, s.seat_col`
    rows, err := r.db.QueryContext(ctx, q, tripID, busID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]SeatStatusRow, 0)
    for rows.Next() {
        var row SeatStatusRow
        var name sql.NullString
        if err := rows.Scan(&row.SeatID, &row.SeatNumber, &row.SeatRow, &row.SeatCol, &name); err != nil {
            return nil, err
        }
        if name.Valid {
            n := name.String
            row.PassengerName = &n
            row.Status = "Occupied"
        } else {
            row.Status = "Available"
        }
        out = append(out, row)
    }
    return out, rows.Err()
}

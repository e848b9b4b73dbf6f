package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/bus-ticket-reservation/internal/model"
)

// TripRepo reads trips from the catalog tables and maintains the
// derived available-seat counter.  Everything else about a trip is
// owned by the external trip catalog and is never written here.
type TripRepo struct {
    db *sql.DB
}

// NewTripRepo returns a new TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

const tripColumns = `id, bus_id, origin_city_id, dest_city_id, departure_date,
       departure_time, arrival_time, duration_minutes, price_cents,
       total_seats, available_seats, status`

func scanTrip(row *sql.Row) (*model.Trip, error) {
    var t model.Trip
    err := row.Scan(
        &t.ID, &t.BusID, &t.OriginCityID, &t.DestCityID, &t.DepartureDate,
        &t.DepartureTime, &t.ArrivalTime, &t.DurationMinutes, &t.PriceCents,
        &t.TotalSeats, &t.AvailableSeats, &t.Status,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTripNotFound
    }
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// GetByID loads a trip outside of any transaction.  Used by read-only
// endpoints; the booking flow must use GetForUpdateTx instead.
func (r *TripRepo) GetByID(ctx context.Context, id uint64) (*model.Trip, error) {
    const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`
    return scanTrip(r.db.QueryRowContext(ctx, q, id))
}

// GetForUpdateTx loads a trip and takes a row lock on it.  The lock
// serialises concurrent reservations and cancellations touching the
// same trip, which is what makes the seat-conflict check race-free.
func (r *TripRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Trip, error) {
    const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = ? FOR UPDATE`
    return scanTrip(tx.QueryRowContext(ctx, q, id))
}

// TryDecrementAvailableTx subtracts n from the trip's available-seat
// counter.  The WHERE guard keeps the counter non-negative: when fewer
// than n seats remain no row is updated and ErrInsufficientSeats is
// returned without mutation.
func (r *TripRepo) TryDecrementAvailableTx(ctx context.Context, tx *sql.Tx, tripID uint64, n uint32) error {
    const q = `UPDATE trips SET available_seats = available_seats - ?
               WHERE id = ? AND available_seats >= ?`
    res, err := tx.ExecContext(ctx, q, n, tripID, n)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrInsufficientSeats
    }
    return nil
}

// IncrementAvailableTx returns n seats to the trip's available-seat
// counter when a booking is cancelled.
func (r *TripRepo) IncrementAvailableTx(ctx context.Context, tx *sql.Tx, tripID uint64, n uint32) error {
    const q = `UPDATE trips SET available_seats = available_seats + ? WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, n, tripID)
    return err
}

// TripDetail is the joined view of a trip returned to clients browsing
// the schedule: city and company names resolved, price exposed both as
// cents and as a display float.
type TripDetail struct {
    ID              uint64  `json:"id"`
    CompanyName     string  `json:"company_name"`
    OriginCity      string  `json:"origin_city"`
    DestCity        string  `json:"dest_city"`
    DepartureDate   string  `json:"departure_date"`
    DepartureTime   string  `json:"departure_time"`
    ArrivalTime     string  `json:"arrival_time"`
    DurationMinutes uint32  `json:"duration_minutes"`
    PriceCents      int64   `json:"price_cents"`
    Price           float64 `json:"price"`
    TotalSeats      uint32  `json:"total_seats"`
    AvailableSeats  uint32  `json:"available_seats"`
    Status          string  `json:"status"`
}

// GetDetail returns the joined trip view for a single trip.
func (r *TripRepo) GetDetail(ctx context.Context, id uint64) (*TripDetail, error) {
    const q = `SELECT t.id, co.name, oc.name, dc.name,
                      DATE_FORMAT(t.departure_date, '%Y-%m-%d'),
                      t.departure_time, t.arrival_time, t.duration_minutes,
                      t.price_cents, t.total_seats, t.available_seats, t.status
               FROM trips t
               JOIN buses b     ON b.id = t.bus_id
               JOIN companies co ON co.id = b.company_id
               JOIN cities oc   ON oc.id = t.origin_city_id
               JOIN cities dc   ON dc.id = t.dest_city_id
               WHERE t.id = ?`
    var d TripDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.CompanyName, &d.OriginCity, &d.DestCity,
        &d.DepartureDate, &d.DepartureTime, &d.ArrivalTime, &d.DurationMinutes,
        &d.PriceCents, &d.TotalSeats, &d.AvailableSeats, &d.Status,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTripNotFound
    }
    if err != nil {
        return nil, err
    }
    d.Price = float64(d.PriceCents) / 100.0
    return &d, nil
}

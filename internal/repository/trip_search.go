package repository

import (
    "context"
    "fmt"
    "strings"
    "time"
)

// TripSortKey selects the column a trip search is ordered by.  The
// ORDER BY clause is derived from these enums and never spliced from
// request strings.
type TripSortKey string

const (
    SortByDeparture TripSortKey = "departure"
    SortByPrice     TripSortKey = "price"
    SortByDuration  TripSortKey = "duration"
)

// TripSortOrder selects ascending or descending ordering.
type TripSortOrder string

const (
    SortAsc  TripSortOrder = "asc"
    SortDesc TripSortOrder = "desc"
)

// OrderBy maps a sort key and order onto a SQL ORDER BY expression.
// Unknown keys or orders are rejected so a typo cannot silently change
// result ordering.
func OrderBy(key TripSortKey, order TripSortOrder) (string, error) {
    var col string
    switch key {
    case "", SortByDeparture:
        col = "t.departure_date, t.departure_time"
    case SortByPrice:
        col = "t.price_cents"
    case SortByDuration:
        col = "t.duration_minutes"
    default:
        return "", fmt.Errorf("unknown sort key %q", key)
    }
    switch order {
    case "", SortAsc:
        return col + " ASC", nil
    case SortDesc:
        return col + " DESC", nil
    default:
        return "", fmt.Errorf("unknown sort order %q", order)
    }
}

// TripSearchQuery defines filters, ordering and pagination for
// searching the schedule.
type TripSearchQuery struct {
    OriginCityID uint64
    DestCityID   uint64
    Date         time.Time
    SortBy       TripSortKey
    SortOrder    TripSortOrder
    Page         int
    PageSize     int
}

// Search returns active trips matching the query together with the
// total match count for pagination.  Only trips that still have at
// least one available seat are listed.
func (r *TripRepo) Search(ctx context.Context, q TripSearchQuery) ([]TripDetail, int64, error) {
    orderBy, err := OrderBy(q.SortBy, q.SortOrder)
    if err != nil {
        return nil, 0, err
    }

    where := []string{"t.status = 'Active'", "t.available_seats > 0"}
    args := []any{}
    if q.OriginCityID != 0 {
        where = append(where, "t.origin_city_id = ?")
        args = append(args, q.OriginCityID)
    }
    if q.DestCityID != 0 {
        where = append(where, "t.dest_city_id = ?")
        args = append(args, q.DestCityID)
    }
    if !q.Date.IsZero() {
        where = append(where, "t.departure_date = ?")
        args = append(args, q.Date.Format("2006-01-02"))
    }
    cond := strings.Join(where, " AND ")

    var total int64
    countSQL := `SELECT COUNT(*) FROM trips t WHERE ` + cond
    if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    if q.PageSize <= 0 {
        q.PageSize = 20
    }
    if q.Page <= 0 {
        q.Page = 1
    }
    limit := q.PageSize
    offset := (q.Page - 1) * q.PageSize

    dataSQL := `SELECT t.id, co.name, oc.name, dc.name,
            DATE_FORMAT(t.departure_date, '%Y-%m-%d'),
            t.departure_time, t.arrival_time, t.duration_minutes,
            t.price_cents, t.total_seats, t.available_seats, t.status
        FROM trips t
        JOIN buses b      ON b.id = t.bus_id
        JOIN companies co ON co.id = b.company_id
        JOIN cities oc    ON oc.id = t.origin_city_id
        JOIN cities dc    ON dc.id = t.dest_city_id
        WHERE ` + cond + `
        ORDER BY ` + orderBy + `
        LIMIT ? OFFSET ?`

    argsData := append(append([]any{}, args...), limit, offset)
    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]TripDetail, 0, limit)
    for rows.Next() {
        var d TripDetail
        if err := rows.Scan(
            &d.ID, &d.CompanyName, &d.OriginCity, &d.DestCity,
            &d.DepartureDate, &d.DepartureTime, &d.ArrivalTime, &d.DurationMinutes,
            &d.PriceCents, &d.TotalSeats, &d.AvailableSeats, &d.Status,
        ); err != nil {
            return nil, 0, err
        }
        d.Price = float64(d.PriceCents) / 100.0
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}

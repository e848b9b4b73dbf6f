package model

import "time"

// Trip status values.  Trips are created and maintained by the external
// trip catalog; the reservation engine only ever reads them and adjusts
// the available seat counter.
const (
    TripStatusActive    = "Active"
    TripStatusCompleted = "Completed"
    TripStatusCancelled = "Cancelled"
    TripStatusDelayed   = "Delayed"
)

// Trip represents a scheduled bus journey between two cities.  The
// origin and destination are always distinct.  AvailableSeats is a
// derived counter maintained alongside ticket sales so that capacity
// checks do not need to count booking rows on every request.
//
// Fields:
//  ID              primary key identifier.
//  BusID           bus assigned to this trip.
//  OriginCityID    departure city.
//  DestCityID      arrival city.
//  DepartureDate   calendar date of departure.
//  DepartureTime   departure time of day (HH:MM:SS).
//  ArrivalTime     arrival time of day (HH:MM:SS).
//  DurationMinutes scheduled travel time.
//  PriceCents      price per seat in cents.
//  TotalSeats      seat capacity of the assigned bus.
//  AvailableSeats  seats not held by a non-terminal booking.
//  Status          one of the TripStatus* constants.
type Trip struct {
    ID              uint64    // trips.id
    BusID           uint64    // trips.bus_id
    OriginCityID    uint64    // trips.origin_city_id
    DestCityID      uint64    // trips.dest_city_id
    DepartureDate   time.Time // trips.departure_date
    DepartureTime   string    // trips.departure_time
    ArrivalTime     string    // trips.arrival_time
    DurationMinutes uint32    // trips.duration_minutes
    PriceCents      int64     // trips.price_cents
    TotalSeats      uint32    // trips.total_seats
    AvailableSeats  uint32    // trips.available_seats
    Status          string    // trips.status
}

// DepartsAt combines the trip's departure date and time-of-day into a
// single UTC instant.  A zero time is returned when the time-of-day
// string cannot be parsed.
func (t *Trip) DepartsAt() time.Time {
    tod, err := time.Parse("15:04:05", t.DepartureTime)
    if err != nil {
        return time.Time{}
    }
    d := t.DepartureDate
    return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)
}

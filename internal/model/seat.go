package model

// Seat describes a physical seat on a bus.  Seats are immutable
// reference data owned by the fleet catalog; the engine only reads
// them to validate seat selections and to render occupancy maps.
//
// Fields:
//  ID         primary key identifier.
//  BusID      bus to which this seat belongs.
//  SeatNumber printed seat number shown to passengers.
//  SeatRow    row position in the layout grid.
//  SeatCol    column position in the layout grid.
//  IsActive   inactive seats are never sold.
type Seat struct {
    ID         uint64 // seats.id
    BusID      uint64 // seats.bus_id
    SeatNumber uint32 // seats.seat_number
    SeatRow    uint32 // seats.seat_row
    SeatCol    uint32 // seats.seat_col
    IsActive   bool   // seats.is_active
}

package model

import "time"

// Booking status values.  A booking is created Active, moves to
// Completed by the external trip-completion sweep, and to Cancelled by
// the cancellation flow.  Refunded is reserved for settlement
// corrections issued outside the normal cancel path.  Bookings are
// never deleted.
const (
    BookingStatusActive    = "Active"
    BookingStatusCompleted = "Completed"
    BookingStatusCancelled = "Cancelled"
    BookingStatusRefunded  = "Refunded"
)

// Booking records a user's ticket purchase for one trip.  It carries
// the full price breakdown so that refunds can be settled without
// recomputing against a coupon that may have expired since.
//
// Fields:
//  ID            primary key identifier.
//  Code          human-readable ticket code (TKT-<year>-<seq>),
//                  globally unique and monotonic per calendar year.
//  UserID        purchasing user.
//  TripID        trip being travelled.
//  CouponID      coupon applied at purchase time, if any.
//  TotalCents    seat price x seat count before discount.
//  DiscountCents discount taken off the total.
//  FinalCents    amount actually debited.
//  Status        one of the BookingStatus* constants.
//  CreatedAt     purchase timestamp.
//  CancelledAt   set when the booking is cancelled.
//  RefundCents   amount credited back on cancellation.
type Booking struct {
    ID            uint64     // bookings.id
    Code          string     // bookings.code
    UserID        uint64     // bookings.user_id
    TripID        uint64     // bookings.trip_id
    CouponID      *uint64    // bookings.coupon_id (nullable)
    TotalCents    int64      // bookings.total_cents
    DiscountCents int64      // bookings.discount_cents
    FinalCents    int64      // bookings.final_cents
    Status        string     // bookings.status
    CreatedAt     time.Time  // bookings.created_at
    CancelledAt   *time.Time // bookings.cancelled_at (nullable)
    RefundCents   int64      // bookings.refund_cents
}

// BookingSeat links a booking to one seat on its trip together with
// the travelling passenger's name.  For any (trip, seat) pair at most
// one booking in a non-terminal status may hold a row here; cancelled
// bookings keep their rows for audit but no longer count as occupancy.
type BookingSeat struct {
    ID            uint64 // booking_seats.id
    BookingID     uint64 // booking_seats.booking_id
    TripID        uint64 // booking_seats.trip_id
    SeatID        uint64 // booking_seats.seat_id
    PassengerName string // booking_seats.passenger_name
}

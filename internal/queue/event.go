// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// Queue names used by the publisher and the consumer.
const (
    TicketIssuedQueue    = "ticket.issued"
    TicketCancelledQueue = "ticket.cancelled"
)

// TicketIssuedEvent is published after a reservation commits.  It
// carries enough information for downstream consumers to notify the
// passenger or feed analytics without querying the primary database.
type TicketIssuedEvent struct {
    BookingID     uint64   `json:"booking_id"`
    Code          string   `json:"code"`
    UserID        uint64   `json:"user_id"`
    TripID        uint64   `json:"trip_id"`
    OriginCity    string   `json:"origin_city"`
    DestCity      string   `json:"dest_city"`
    DepartureDate string   `json:"departure_date"`
    DepartureTime string   `json:"departure_time"`
    Passengers    []string `json:"passengers"`
    TotalCents    int64    `json:"total_cents"`
    DiscountCents int64    `json:"discount_cents"`
    FinalCents    int64    `json:"final_cents"`
    IssuedAt      string   `json:"issued_at"`
}

// TicketCancelledEvent is published after a cancellation commits.
type TicketCancelledEvent struct {
    BookingID   uint64 `json:"booking_id"`
    Code        string `json:"code"`
    UserID      uint64 `json:"user_id"`
    TripID      uint64 `json:"trip_id"`
    SeatCount   uint32 `json:"seat_count"`
    RefundCents int64  `json:"refund_cents"`
    CancelledAt string `json:"cancelled_at"`
}

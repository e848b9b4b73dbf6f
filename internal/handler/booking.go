package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/bus-ticket-reservation/internal/booking"
    "github.com/iliyamo/bus-ticket-reservation/internal/queue"
    "github.com/iliyamo/bus-ticket-reservation/internal/repository"
    queue_publisher "github.com/iliyamo/bus-ticket-reservation/internal/service"
)

// BookingHandler serves ticket purchase, cancellation and listing.
type BookingHandler struct {
    engine   *booking.Engine
    trips    *repository.TripRepo
    bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(engine *booking.Engine, trips *repository.TripRepo, bookings *repository.BookingRepo) *BookingHandler {
    return &BookingHandler{engine: engine, trips: trips, bookings: bookings}
}

// seatSelection is one seat/passenger pair in a reserve request.
type seatSelection struct {
    SeatID        uint64 `json:"seat_id"`
    PassengerName string `json:"passenger_name"`
}

// reserveRequest is the body of POST /v1/bookings.  Seats carries the
// seat/passenger pairs.  SeatIDs plus PassengerNames is the older
// parallel-list shape kept for existing clients; names beyond the list
// are filled with a placeholder.
type reserveRequest struct {
    TripID         uint64          `json:"trip_id"`
    Seats          []seatSelection `json:"seats"`
    SeatIDs        []uint64        `json:"seat_ids"`
    PassengerNames []string        `json:"passenger_names"`
    CouponCode     string          `json:"coupon_code"`
}

// pairs normalises both request shapes into seat/passenger tuples.
func (r *reserveRequest) pairs() []booking.PassengerSeat {
    if len(r.Seats) > 0 {
        out := make([]booking.PassengerSeat, 0, len(r.Seats))
        for _, s := range r.Seats {
            out = append(out, booking.PassengerSeat{SeatID: s.SeatID, Name: s.PassengerName})
        }
        return out
    }
    out := make([]booking.PassengerSeat, 0, len(r.SeatIDs))
    for i, id := range r.SeatIDs {
        ps := booking.PassengerSeat{SeatID: id}
        if i < len(r.PassengerNames) {
            ps.Name = r.PassengerNames[i]
        }
        out = append(out, ps)
    }
    return out
}

// Reserve handles POST /v1/bookings.  On success the ticket.issued
// event is published after the transaction has committed, so consumers
// only ever see bookings that exist.
func (h *BookingHandler) Reserve(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req reserveRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    pairs := req.pairs()
    res, err := h.engine.Reserve(c.Request().Context(), booking.ReserveRequest{
        UserID:     uid,
        TripID:     req.TripID,
        Seats:      pairs,
        CouponCode: req.CouponCode,
    })
    if err != nil {
        return respondError(c, err)
    }

    h.publishIssued(uid, req.TripID, pairs, res)

    return c.JSON(http.StatusCreated, echo.Map{
        "booking_id":     res.BookingID,
        "code":           res.Code,
        "total_cents":    res.TotalCents,
        "discount_cents": res.DiscountCents,
        "final_cents":    res.FinalCents,
    })
}

// publishIssued emits the ticket.issued event, best effort.  The trip
// detail lookup only enriches the payload; a failure there still
// publishes the event with the fields we have.
func (h *BookingHandler) publishIssued(uid, tripID uint64, pairs []booking.PassengerSeat, res *booking.ReserveResult) {
    ev := queue.TicketIssuedEvent{
        BookingID:     res.BookingID,
        Code:          res.Code,
        UserID:        uid,
        TripID:        tripID,
        TotalCents:    res.TotalCents,
        DiscountCents: res.DiscountCents,
        FinalCents:    res.FinalCents,
        IssuedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    for _, p := range pairs {
        ev.Passengers = append(ev.Passengers, p.Name)
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if detail, err := h.trips.GetDetail(ctx, tripID); err == nil {
        ev.OriginCity = detail.OriginCity
        ev.DestCity = detail.DestCity
        ev.DepartureDate = detail.DepartureDate
        ev.DepartureTime = detail.DepartureTime
    }
    _ = queue_publisher.PublishTicketIssued(ctx, ev)
}

// Cancel handles POST /v1/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    res, err := h.engine.Cancel(c.Request().Context(), id, uid)
    if err != nil {
        return respondError(c, err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = queue_publisher.PublishTicketCancelled(ctx, queue.TicketCancelledEvent{
        BookingID:   res.BookingID,
        Code:        res.Code,
        UserID:      uid,
        TripID:      res.TripID,
        SeatCount:   res.SeatCount,
        RefundCents: res.RefundCents,
        CancelledAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{
        "booking_id":   res.BookingID,
        "refund_cents": res.RefundCents,
        "status":       "Cancelled",
    })
}

// List handles GET /v1/bookings and returns the caller's tickets,
// newest first.  The optional ?status= filter narrows by booking
// status.
func (h *BookingHandler) List(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    tickets, err := h.bookings.ListByUser(c.Request().Context(), uid, c.QueryParam("status"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": tickets})
}

// Get handles GET /v1/bookings/:id.  Ownership is enforced by the
// lookup, so another user's booking reads as not found.
func (h *BookingHandler) Get(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ticket, err := h.bookings.GetDetailForUser(c.Request().Context(), id, uid)
    if err == repository.ErrBookingNotFound {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, ticket)
}

// Package router wires HTTP routes to their handlers and middleware.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/bus-ticket-reservation/internal/handler"
    "github.com/iliyamo/bus-ticket-reservation/internal/middleware"
)

// Handlers bundles the handler set registered on the server.
type Handlers struct {
    Trips    *handler.TripHandler
    Bookings *handler.BookingHandler
    Coupons  *handler.CouponHandler
    Credit   *handler.CreditHandler
}

// RegisterRoutes registers all routes on the provided Echo instance.
// Schedule browsing is public (and cacheable via the cache
// middleware); everything touching bookings, coupons or credit
// requires a valid access token.  Coupon administration additionally
// requires the SystemAdmin role.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
    e.GET("/healthz", handler.Health)

    // Public browse endpoints.  Only these run through the response
    // cache: seat maps change with every sale and must stay fresh.
    pub := e.Group("/v1")
    if cache != nil {
        pub.GET("/trips", h.Trips.Search, cache)
        pub.GET("/trips/:id", h.Trips.Get, cache)
    } else {
        pub.GET("/trips", h.Trips.Search)
        pub.GET("/trips/:id", h.Trips.Get)
    }
    pub.GET("/trips/:id/seats", h.Trips.SeatStatus)

    // Authenticated endpoints.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))

    auth.POST("/bookings", h.Bookings.Reserve)
    auth.GET("/bookings", h.Bookings.List)
    auth.GET("/bookings/:id", h.Bookings.Get)
    auth.POST("/bookings/:id/cancel", h.Bookings.Cancel)

    auth.GET("/coupons", h.Coupons.ListMine)
    auth.GET("/coupons/:code/validate", h.Coupons.Validate)

    auth.GET("/credit", h.Credit.Balance)
    auth.POST("/credit/topup", h.Credit.TopUp)
    auth.GET("/credit/payments", h.Credit.Payments)

    // Administrative endpoints.
    admin := e.Group("/v1/admin")
    admin.Use(middleware.JWTAuth(jwtSecret))
    admin.Use(middleware.RequireRole("SystemAdmin"))
    admin.GET("/coupons", h.Coupons.ListAll)
    admin.POST("/coupons", h.Coupons.Create)
}

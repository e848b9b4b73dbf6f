// Command server runs the bus ticket reservation API.
package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/bus-ticket-reservation/internal/booking"
    "github.com/iliyamo/bus-ticket-reservation/internal/config"
    "github.com/iliyamo/bus-ticket-reservation/internal/database"
    "github.com/iliyamo/bus-ticket-reservation/internal/handler"
    "github.com/iliyamo/bus-ticket-reservation/internal/middleware"
    "github.com/iliyamo/bus-ticket-reservation/internal/queue"
    "github.com/iliyamo/bus-ticket-reservation/internal/repository"
    "github.com/iliyamo/bus-ticket-reservation/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    engine := booking.NewEngine(db, booking.PolicyByName(cfg.RefundPolicy))

    trips := repository.NewTripRepo(db)
    bookings := repository.NewBookingRepo(db)
    coupons := repository.NewCouponRepo(db)
    credit := repository.NewCreditRepo(db)
    payments := repository.NewPaymentRepo(db)

    e := echo.New()

    // Redis is optional: without it rate limiting and caching are
    // disabled and the API still sells tickets.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; rate limiting and caching disabled")
    }
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e, router.Handlers{
        Trips:    handler.NewTripHandler(trips, engine),
        Bookings: handler.NewBookingHandler(engine, trips, bookings),
        Coupons:  handler.NewCouponHandler(engine, coupons),
        Credit:   handler.NewCreditHandler(engine, credit, payments),
    }, cfg.JWTSecret, cache)

    // Background consumers append issued and cancelled tickets to the
    // local event log.  They reconnect on broker failure and never
    // block the HTTP server.
    go queue.StartTicketConsumer(queue.TicketIssuedQueue)
    go queue.StartTicketConsumer(queue.TicketCancelledQueue)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s, refund_policy=%s)", addr, cfg.Env, cfg.RefundPolicy)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}

package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/bus-ticket-reservation/internal/booking"
    "github.com/iliyamo/bus-ticket-reservation/internal/repository"
)

// TripHandler serves the public schedule browse endpoints.
type TripHandler struct {
    trips  *repository.TripRepo
    engine *booking.Engine
}

// NewTripHandler constructs a TripHandler.
func NewTripHandler(trips *repository.TripRepo, engine *booking.Engine) *TripHandler {
    return &TripHandler{trips: trips, engine: engine}
}

// Search handles GET /v1/trips.  Filters: origin, dest (city IDs) and
// date (YYYY-MM-DD).  Sorting: sort=departure|price|duration plus
// order=asc|desc.  Pagination: page and page_size.
func (h *TripHandler) Search(c echo.Context) error {
    q := repository.TripSearchQuery{
        SortBy:    repository.TripSortKey(c.QueryParam("sort")),
        SortOrder: repository.TripSortOrder(c.QueryParam("order")),
    }
    if v := c.QueryParam("origin"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid origin city id"})
        }
        q.OriginCityID = id
    }
    if v := c.QueryParam("dest"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dest city id"})
        }
        q.DestCityID = id
    }
    if v := c.QueryParam("date"); v != "" {
        d, err := time.Parse("2006-01-02", v)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
        }
        q.Date = d
    }
    q.Page, _ = strconv.Atoi(c.QueryParam("page"))
    q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

    trips, total, err := h.trips.Search(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "trips": trips,
        "total": total,
    })
}

// Get handles GET /v1/trips/:id and returns the joined trip view.
func (h *TripHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
    }
    detail, err := h.trips.GetDetail(c.Request().Context(), id)
    if errors.Is(err, repository.ErrTripNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
    }
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, detail)
}

// SeatStatus handles GET /v1/trips/:id/seats and returns the seat map
// with per-seat occupancy.
func (h *TripHandler) SeatStatus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
    }
    seats, err := h.engine.SeatStatus(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "trip_id": id,
        "seats":   seats,
    })
}

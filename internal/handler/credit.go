package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/bus-ticket-reservation/internal/booking"
    "github.com/iliyamo/bus-ticket-reservation/internal/repository"
)

// CreditHandler serves the prepaid credit account: balance, top-ups
// and the payment history.
type CreditHandler struct {
    engine   *booking.Engine
    credit   *repository.CreditRepo
    payments *repository.PaymentRepo
}

// NewCreditHandler constructs a CreditHandler.
func NewCreditHandler(engine *booking.Engine, credit *repository.CreditRepo, payments *repository.PaymentRepo) *CreditHandler {
    return &CreditHandler{engine: engine, credit: credit, payments: payments}
}

// Balance handles GET /v1/credit.
func (h *CreditHandler) Balance(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    cents, err := h.credit.Balance(c.Request().Context(), uid)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"balance_cents": cents})
}

// topUpRequest is the body of POST /v1/credit/topup.
type topUpRequest struct {
    AmountCents int64  `json:"amount_cents"`
    Method      string `json:"method"`
}

// TopUp handles POST /v1/credit/topup and returns the new balance.
func (h *CreditHandler) TopUp(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req topUpRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := h.engine.TopUp(c.Request().Context(), uid, req.AmountCents, req.Method); err != nil {
        return respondError(c, err)
    }
    cents, err := h.credit.Balance(c.Request().Context(), uid)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"balance_cents": cents})
}

// Payments handles GET /v1/credit/payments and returns the caller's
// ledger entries, newest first.
func (h *CreditHandler) Payments(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    entries, err := h.payments.ListByUser(c.Request().Context(), uid)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"payments": entries})
}

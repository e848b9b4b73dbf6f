package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/bus-ticket-reservation/internal/booking"
    "github.com/iliyamo/bus-ticket-reservation/internal/model"
    "github.com/iliyamo/bus-ticket-reservation/internal/repository"
)

// CouponHandler serves coupon validation for customers and coupon
// creation for system administrators.
type CouponHandler struct {
    engine  *booking.Engine
    coupons *repository.CouponRepo
}

// NewCouponHandler constructs a CouponHandler.
func NewCouponHandler(engine *booking.Engine, coupons *repository.CouponRepo) *CouponHandler {
    return &CouponHandler{engine: engine, coupons: coupons}
}

// Validate handles GET /v1/coupons/:code/validate.  It previews
// whether the coupon would apply for the caller without spending a
// use; the authoritative check reruns inside the booking transaction.
func (h *CouponHandler) Validate(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    code := c.Param("code")
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing coupon code"})
    }
    quote, err := h.engine.ValidateCoupon(c.Request().Context(), code, uid)
    if err != nil {
        if f, ok := booking.AsFailure(err); ok && f.Code != booking.CodeTransactionFailure {
            // Invalid coupons are a normal outcome of the preview, not
            // an error response.
            return c.JSON(http.StatusOK, echo.Map{
                "valid":  false,
                "reason": string(f.Code),
            })
        }
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "valid":         true,
        "discount_rate": quote.DiscountRate,
    })
}

// ListMine handles GET /v1/coupons.  It returns the coupons the
// caller holds a redemption record for, spent or not.
func (h *CouponHandler) ListMine(c echo.Context) error {
    uid, ok := getUserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    coupons, err := h.coupons.ListForUser(c.Request().Context(), uid)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"coupons": coupons})
}

// ListAll handles GET /v1/admin/coupons.  Restricted to the
// SystemAdmin role by route middleware.
func (h *CouponHandler) ListAll(c echo.Context) error {
    coupons, err := h.coupons.ListAll(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    out := make([]echo.Map, 0, len(coupons))
    for _, cp := range coupons {
        out = append(out, echo.Map{
            "id":            cp.ID,
            "code":          cp.Code,
            "discount_rate": cp.DiscountRate,
            "usage_limit":   cp.UsageLimit,
            "times_used":    cp.TimesUsed,
            "expires_on":    cp.ExpiresOn.Format("2006-01-02"),
            "is_active":     cp.IsActive,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"coupons": out})
}

// createCouponRequest is the body of POST /v1/admin/coupons.
type createCouponRequest struct {
    Code         string  `json:"code"`
    DiscountRate float64 `json:"discount_rate"`
    UsageLimit   uint32  `json:"usage_limit"`
    ExpiresOn    string  `json:"expires_on"` // YYYY-MM-DD
}

// Create handles POST /v1/admin/coupons.  Restricted to the
// SystemAdmin role by route middleware.
func (h *CouponHandler) Create(c echo.Context) error {
    var req createCouponRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing coupon code"})
    }
    if req.DiscountRate <= 0 || req.DiscountRate > 100 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_rate must be in (0, 100]"})
    }
    if req.UsageLimit == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "usage_limit must be positive"})
    }
    expires, err := time.Parse("2006-01-02", req.ExpiresOn)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expires_on, expected YYYY-MM-DD"})
    }

    coupon := &model.Coupon{
        Code:         req.Code,
        DiscountRate: req.DiscountRate,
        UsageLimit:   req.UsageLimit,
        ExpiresOn:    expires,
        IsActive:     true,
    }
    if err := h.coupons.Create(c.Request().Context(), coupon); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":            coupon.ID,
        "code":          coupon.Code,
        "discount_rate": coupon.DiscountRate,
        "usage_limit":   coupon.UsageLimit,
        "expires_on":    req.ExpiresOn,
    })
}

package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user's ID as a string for
// rate-limit key construction.  Unauthenticated requests map to
// "anon" so guests on the same routes share one bucket per IP.
func currentUserID(c echo.Context) string {
    if uid, ok := c.Get("user_id").(uint64); ok && uid != 0 {
        return strconv.FormatUint(uid, 10)
    }
    return "anon"
}

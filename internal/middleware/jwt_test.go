package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
    t.Helper()
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    s, err := tok.SignedString([]byte(testSecret))
    require.NoError(t, err)
    return s
}

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
    err := JWTAuth(testSecret)(next)(c)
    return rec, c, err
}

func TestJWTAuthInjectsIdentity(t *testing.T) {
    token := signedToken(t, jwt.MapClaims{"sub": float64(4), "role": "Customer"})
    rec, c, err := runJWT(t, "Bearer "+token)
    require.NoError(t, err)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, uint64(4), c.Get("user_id"))
    assert.Equal(t, "Customer", c.Get("role"))
}

func TestJWTAuthAcceptsStringSubject(t *testing.T) {
    token := signedToken(t, jwt.MapClaims{"sub": "17", "role": "SystemAdmin"})
    rec, c, err := runJWT(t, "Bearer "+token)
    require.NoError(t, err)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, uint64(17), c.Get("user_id"))
}

func TestJWTAuthRejectsMissingOrBadTokens(t *testing.T) {
    rec, _, err := runJWT(t, "")
    require.NoError(t, err)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec, _, err = runJWT(t, "Bearer not-a-token")
    require.NoError(t, err)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    // Valid signature but no usable subject.
    token := signedToken(t, jwt.MapClaims{"sub": "zero", "role": "Customer"})
    rec, _, err = runJWT(t, "Bearer "+token)
    require.NoError(t, err)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
    e := echo.New()
    next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
    mw := RequireRole("SystemAdmin")(next)

    req := httptest.NewRequest(http.MethodPost, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("role", "SystemAdmin")
    require.NoError(t, mw(c))
    assert.Equal(t, http.StatusOK, rec.Code)

    rec = httptest.NewRecorder()
    c = e.NewContext(req, rec)
    c.Set("role", "Customer")
    require.NoError(t, mw(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = httptest.NewRecorder()
    c = e.NewContext(req, rec)
    require.NoError(t, mw(c))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

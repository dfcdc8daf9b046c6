package middleware

// identity.go holds helpers shared across middleware files.  It provides
// the user identifier lookup used when building rate limit keys.  When
// no user is authenticated, "anon" is used so guests share one bucket
// per IP.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID extracts a user identifier from the request context.  It
// returns "anon" when no user is authenticated.  The value stored by
// JWTAuth comes from JSON claims, so numbers arrive as float64.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    case int64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}

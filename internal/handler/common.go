package handler // handler defines the HTTP handlers of the API

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/policy"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT claims decode numbers as float64, but the value may also
// arrive as a string or integer depending on how the token was minted.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// getRole extracts the role claim placed in the context by the JWT
// middleware.  An empty string means the request is unauthenticated.
func getRole(c echo.Context) policy.Role {
    if v, ok := c.Get("role").(string); ok {
        return policy.Role(v)
    }
    return ""
}

// principal assembles the authenticated caller for policy checks.  It
// fails when no valid user identity is present in the context.
func principal(c echo.Context) (policy.Principal, error) {
    uid, err := getUserID(c)
    if err != nil {
        return policy.Principal{}, err
    }
    return policy.Principal{UserID: uid, Role: getRole(c)}, nil
}

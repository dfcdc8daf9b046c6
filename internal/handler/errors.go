package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/service"
)

// respondError maps the service error kinds to distinguishable HTTP
// responses.  Every kind keeps its identity on the wire; only unknown
// errors collapse into a 500.  Transient storage failures answer 503
// with Retry-After so clients know the request may be retried as-is.
func respondError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, service.ErrEventNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
    case errors.Is(err, service.ErrRegistrationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
    case errors.Is(err, service.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, service.ErrEventNotApproved):
        return c.JSON(http.StatusConflict, echo.Map{"error": "event is not approved"})
    case errors.Is(err, service.ErrAlreadyRegistered):
        return c.JSON(http.StatusConflict, echo.Map{"error": "already registered for this event"})
    case errors.Is(err, service.ErrEventFull):
        return c.JSON(http.StatusConflict, echo.Map{"error": "event is full"})
    case errors.Is(err, service.ErrInvalidInput):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input"})
    case errors.Is(err, service.ErrTransient):
        c.Response().Header().Set("Retry-After", "1")
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "temporary failure, retry"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}

package router

import (
    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/handler"
    "github.com/gatherly/event-registration/internal/middleware"
    "github.com/gatherly/event-registration/internal/policy"
)

// RegisterRegistrations registers the attendee surface: joining an
// event, cancelling a registration and listing one's own registrations.
// All three require a valid access token; any role may register.  The
// rate limiter, when non-nil, wraps only the register endpoint since
// that is the hot path during popular event launches.
func RegisterRegistrations(e *echo.Echo, h *handler.RegistrationHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(
        string(policy.RolePlatformManager),
        string(policy.RoleOrganizer),
        string(policy.RoleApplicant),
    ))

    register := h.Register
    if limiter != nil {
        register = limiter(register)
    }
    g.POST("/events/:id/register", register)
    g.DELETE("/registrations/:id", h.Cancel)
    g.GET("/my-registrations", h.ListMine)
}

package router

import (
    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/handler"
    "github.com/gatherly/event-registration/internal/middleware"
    "github.com/gatherly/event-registration/internal/policy"
)

// RegisterEvents registers the event catalog and the organizer CRUD
// surface.
//
// The browse endpoints are reachable without a token, but run through
// OptionalJWT so that an authenticated organizer or platform manager
// gets their extended visibility (own pending events, all states).  The
// cache middleware may be nil when Redis is not configured; it only
// ever serves the anonymous view since requests carrying an
// Authorization header bypass the shared cache.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string, cache echo.MiddlewareFunc) {
    browse := e.Group("/v1/events")
    browse.Use(middleware.OptionalJWT(jwtSecret))
    if cache != nil {
        browse.Use(cache)
    }
    browse.GET("", h.List)
    browse.GET("/:id", h.Get)

    // Write operations require an organizer token.  Ownership of the
    // targeted event is checked in the handler via policy.
    manage := e.Group("/v1/events")
    manage.Use(middleware.JWTAuth(jwtSecret))
    manage.Use(middleware.RequireRole(string(policy.RoleOrganizer)))
    manage.POST("", h.Create)
    manage.PATCH("/:id", h.Update)
    manage.DELETE("/:id", h.Delete)
}

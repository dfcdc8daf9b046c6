package router

import (
    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/handler"
    "github.com/gatherly/event-registration/internal/middleware"
    "github.com/gatherly/event-registration/internal/policy"
)

// RegisterAdmin registers the platform manager surface under /v1/admin:
// the moderation queue, approve/reject, and the platform-wide
// registration audit listing.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
    g := e.Group("/v1/admin")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(string(policy.RolePlatformManager)))

    g.GET("/events/pending", h.ListPending)
    g.POST("/events/:id/approve", h.Approve)
    g.POST("/events/:id/reject", h.Reject)
    g.GET("/registrations", h.ListAllRegistrations)
}

package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/handler"
    "github.com/gatherly/event-registration/internal/middleware"
    "github.com/gatherly/event-registration/internal/policy"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check,
// which load balancers and monitoring use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account surface.  Unauthenticated
// operations (register, login, refresh, logout) live under /v1/auth;
// /v1/me requires a valid access token.  Logout takes the refresh token
// in the body rather than a JWT so that an expired session can still be
// terminated.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(
        string(policy.RolePlatformManager),
        string(policy.RoleOrganizer),
        string(policy.RoleApplicant),
    ))
    auth.GET("/me", a.Me)
}

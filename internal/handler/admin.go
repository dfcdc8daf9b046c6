package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/model"
    "github.com/gatherly/event-registration/internal/policy"
    "github.com/gatherly/event-registration/internal/repository"
    "github.com/gatherly/event-registration/internal/service"
)

// AdminHandler exposes the platform manager surface: moderating events
// and auditing registrations across the whole platform.
type AdminHandler struct {
    Lifecycle     *service.Lifecycle
    Events        *repository.EventRepo
    Registrations *repository.RegistrationRepo
}

func NewAdminHandler(lc *service.Lifecycle, events *repository.EventRepo, regs *repository.RegistrationRepo) *AdminHandler {
    return &AdminHandler{Lifecycle: lc, Events: events, Registrations: regs}
}

// Approve moves an event to APPROVED, making it publicly visible and
// open for registration.  Approving an already approved event succeeds.
func (h *AdminHandler) Approve(c echo.Context) error {
    return h.moderate(c, model.EventApproved)
}

// Reject moves an event to REJECTED.  Existing registrations are kept;
// they simply refer to an event nobody new can join.
func (h *AdminHandler) Reject(c echo.Context) error {
    return h.moderate(c, model.EventRejected)
}

func (h *AdminHandler) moderate(c echo.Context, state model.EventState) error {
    p, err := principal(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseID(c, "id")
    if err != nil {
        return respondError(c, service.ErrInvalidInput)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if state == model.EventApproved {
        err = h.Lifecycle.Approve(ctx, p, id)
    } else {
        err = h.Lifecycle.Reject(ctx, p, id)
    }
    if err != nil {
        return respondError(c, err)
    }

    ev, err := h.Events.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, ev)
}

// ListPending returns the moderation queue: events still awaiting a
// decision, oldest event date first.
func (h *AdminHandler) ListPending(c echo.Context) error {
    p, err := principal(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if !policy.Allow(p, policy.ActionViewAdminListings, 0) {
        return respondError(c, service.ErrForbidden)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    events, err := h.Events.List(ctx, repository.EventFilter{State: model.EventPending})
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"events": events, "count": len(events)})
}

// ListAllRegistrations returns every registration on the platform,
// including cancelled ones, for auditing.
func (h *AdminHandler) ListAllRegistrations(c echo.Context) error {
    p, err := principal(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if !policy.Allow(p, policy.ActionViewAdminListings, 0) {
        return respondError(c, service.ErrForbidden)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    regs, err := h.Registrations.ListAll(ctx)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"registrations": regs, "count": len(regs)})
}

package handler

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/policy"
    "github.com/gatherly/event-registration/internal/queue"
    "github.com/gatherly/event-registration/internal/repository"
    "github.com/gatherly/event-registration/internal/service"
)

// RegistrationHandler exposes attendee registration: joining an event,
// cancelling a registration and listing one's own registrations.
type RegistrationHandler struct {
    Admission     *service.Admission
    Events        *repository.EventRepo
    Registrations *repository.RegistrationRepo
}

func NewRegistrationHandler(adm *service.Admission, events *repository.EventRepo, regs *repository.RegistrationRepo) *RegistrationHandler {
    return &RegistrationHandler{Admission: adm, Events: events, Registrations: regs}
}

// Register admits the caller into an event.  The capacity ceiling and
// the one-live-registration-per-user rule are enforced atomically inside
// the admission transaction; on success a confirmation message is
// published to the queue off the request path.
func (h *RegistrationHandler) Register(c echo.Context) error {
    p, err := principal(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if !policy.Allow(p, policy.ActionRegister, 0) {
        return respondError(c, service.ErrForbidden)
    }
    eventID, err := parseID(c, "id")
    if err != nil {
        return respondError(c, service.ErrInvalidInput)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    reg, err := h.Admission.Admit(ctx, eventID, p.UserID)
    if err != nil {
        return respondError(c, err)
    }

    // Confirmation is best effort and must not delay or fail the
    // response; the registration row is already committed.
    go func(regID, userID, eventID uint64, registeredAt time.Time) {
        pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer pcancel()
        ev, err := h.Events.GetByID(pctx, eventID)
        if err != nil {
            log.Printf("registration %d: load event for confirmation failed: %v", regID, err)
            return
        }
        _ = queue.PublishRegistrationConfirmed(pctx, queue.RegistrationConfirmedEvent{
            RegistrationID: regID,
            UserID:         userID,
            EventID:        eventID,
            EventTitle:     ev.Title,
            EventDate:      ev.Date,
            EventTime:      ev.Time,
            Location:       ev.Location,
            RegisteredAt:   registeredAt.UTC().Format(time.RFC3339),
        })
    }(reg.ID, reg.UserID, reg.EventID, reg.RegisteredAt)

    return c.JSON(http.StatusCreated, reg)
}

// Cancel marks the caller's registration CANCELLED and frees its seat.
// Cancelling a registration that is already cancelled succeeds, so
// retried cancels are harmless.
func (h *RegistrationHandler) Cancel(c echo.Context) error {
    p, err := principal(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseID(c, "id")
    if err != nil {
        return respondError(c, service.ErrInvalidInput)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    if err := h.Admission.Cancel(ctx, id, p.UserID); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ListMine returns the caller's registrations, live and cancelled,
// joined with the event details needed to render them.
func (h *RegistrationHandler) ListMine(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    regs, err := h.Registrations.ListByUser(ctx, uid)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"registrations": regs, "count": len(regs)})
}

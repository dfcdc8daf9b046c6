package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/gatherly/event-registration/internal/model"
    "github.com/gatherly/event-registration/internal/policy"
    "github.com/gatherly/event-registration/internal/repository"
    "github.com/gatherly/event-registration/internal/service"
)

// EventHandler exposes the organizer-facing event CRUD surface plus the
// public event catalog.
type EventHandler struct {
    Events *repository.EventRepo
}

func NewEventHandler(events *repository.EventRepo) *EventHandler {
    return &EventHandler{Events: events}
}

type createEventReq struct {
    Title       string `json:"title" validate:"required,max=200"`
    Description string `json:"description" validate:"max=2000"`
    Date        string `json:"date" validate:"required,datetime=2006-01-02"`
    Time        string `json:"time" validate:"required,datetime=15:04"`
    Location    string `json:"location" validate:"required,max=200"`
    Capacity    uint32 `json:"capacity" validate:"required,min=1"`
}

// updateEventReq uses pointers so PATCH can distinguish "absent" from
// "set to zero value".
type updateEventReq struct {
    Title       *string `json:"title" validate:"omitempty,max=200"`
    Description *string `json:"description" validate:"omitempty,max=2000"`
    Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
    Time        *string `json:"time" validate:"omitempty,datetime=15:04"`
    Location    *string `json:"location" validate:"omitempty,max=200"`
    Capacity    *uint32 `json:"capacity" validate:"omitempty,min=1"`
}

// Create registers a new event for the calling organizer.  The event
// starts out PENDING and is invisible to the public until approved.
func (h *EventHandler) Create(c echo.Context) error {
    p, err := principal(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if !policy.Allow(p, policy.ActionCreateEvent, 0) {
        return respondError(c, service.ErrForbidden)
    }

    var req createEventReq
    if err := c.Bind(&req); err != nil {
        return respondError(c, service.ErrInvalidInput)
    }
    if err := c.Validate(&req); err != nil {
        return respondError(c, err)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ev := model.Event{
        Title:       req.Title,
        Description: req.Description,
        Date:        req.Date,
        Time:        req.Time,
        Location:    req.Location,
        Capacity:    req.Capacity,
        CreatedBy:   p.UserID,
    }
    if err := h.Events.Create(ctx, &ev); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, ev)
}

// List returns the event catalog.  The default view is the public one:
// approved events only, optionally narrowed by ?date= and ?location=.
// Organizers may pass ?mine=true to see their own events in every state,
// and platform managers see all states unconditionally.
func (h *EventHandler) List(c echo.Context) error {
    f := repository.EventFilter{
        Date:     c.QueryParam("date"),
        Location: c.QueryParam("location"),
    }
    if f.Date != "" {
        if _, err := time.Parse("2006-01-02", f.Date); err != nil {
            return respondError(c, service.ErrInvalidInput)
        }
    }

    role := getRole(c)
    switch {
    case role == policy.RolePlatformManager:
        // all states
    case role == policy.RoleOrganizer && c.QueryParam("mine") == "true":
        uid, err := getUserID(c)
        if err != nil {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        }
        f.CreatedBy = uid
    default:
        f.State = model.EventApproved
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    events, err := h.Events.List(ctx, f)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"events": events, "count": len(events)})
}

// Get returns a single event.  Unapproved events exist only for their
// creator and for platform managers; everyone else gets a 404 so that
// pending and rejected events do not leak.
func (h *EventHandler) Get(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return respondError(c, service.ErrInvalidInput)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ev, err := h.Events.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    if ev.State != model.EventApproved {
        uid, _ := getUserID(c)
        if getRole(c) != policy.RolePlatformManager && (uid == 0 || uid != ev.CreatedBy) {
            return respondError(c, service.ErrEventNotFound)
        }
    }
    return c.JSON(http.StatusOK, ev)
}

// Update edits an event owned by the calling organizer.  Moderation
// state is untouched; an approved event stays approved after an edit.
func (h *EventHandler) Update(c echo.Context) error {
    p, err := principal(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseID(c, "id")
    if err != nil {
        return respondError(c, service.ErrInvalidInput)
    }

    var req updateEventReq
    if err := c.Bind(&req); err != nil {
        return respondError(c, service.ErrInvalidInput)
    }
    if err := c.Validate(&req); err != nil {
        return respondError(c, err)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ev, err := h.Events.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    if !policy.Allow(p, policy.ActionEditEvent, ev.CreatedBy) {
        return respondError(c, service.ErrForbidden)
    }

    if req.Title != nil {
        ev.Title = *req.Title
    }
    if req.Description != nil {
        ev.Description = *req.Description
    }
    if req.Date != nil {
        ev.Date = *req.Date
    }
    if req.Time != nil {
        ev.Time = *req.Time
    }
    if req.Location != nil {
        ev.Location = *req.Location
    }
    if req.Capacity != nil {
        ev.Capacity = *req.Capacity
    }
    if err := h.Events.Update(ctx, &ev); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, ev)
}

// Delete removes an event owned by the calling organizer together with
// its registrations (FK cascade).
func (h *EventHandler) Delete(c echo.Context) error {
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

    ev, err := h.Events.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    if !policy.Allow(p, policy.ActionDeleteEvent, ev.CreatedBy) {
        return respondError(c, service.ErrForbidden)
    }
    if err := h.Events.Delete(ctx, id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// parseID extracts a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, service.ErrInvalidInput
    }
    return id, nil
}

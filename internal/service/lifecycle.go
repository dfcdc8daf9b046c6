package service

import (
    "context"

    "github.com/gatherly/event-registration/internal/model"
    "github.com/gatherly/event-registration/internal/policy"
)

// Lifecycle drives the approval state machine gating which events are
// visible and registrable.  States are PENDING, APPROVED and REJECTED;
// PENDING is initial and approve/reject can be re-run to move between
// APPROVED and REJECTED in either direction.
type Lifecycle struct {
    store Store
}

// NewLifecycle returns a Lifecycle bound to the given store.
func NewLifecycle(store Store) *Lifecycle {
    if store == nil {
        panic("nil store passed to NewLifecycle")
    }
    return &Lifecycle{store: store}
}

// Approve moves an event to APPROVED.  Only a platform manager may
// approve; anyone else gets ErrForbidden.  Approving an event that is
// already approved succeeds without touching the row.
func (l *Lifecycle) Approve(ctx context.Context, caller policy.Principal, eventID uint64) error {
    return l.setState(ctx, caller, eventID, model.EventApproved)
}

// Reject moves an event to REJECTED.  Only a platform manager may
// reject; rejecting an already rejected event is an idempotent success.
func (l *Lifecycle) Reject(ctx context.Context, caller policy.Principal, eventID uint64) error {
    return l.setState(ctx, caller, eventID, model.EventRejected)
}

func (l *Lifecycle) setState(ctx context.Context, caller policy.Principal, eventID uint64, state model.EventState) error {
    if !policy.Allow(caller, policy.ActionModerateEvent, 0) {
        return ErrForbidden
    }
    ev, err := l.store.EventByID(ctx, eventID)
    if err != nil {
        return err
    }
    if ev.State == state {
        return nil
    }
    return l.store.SetEventState(ctx, eventID, state)
}

// IsApproved reports whether the event is currently open for
// registration.  It returns ErrEventNotFound when the event does not
// exist.
func (l *Lifecycle) IsApproved(ctx context.Context, eventID uint64) (bool, error) {
    ev, err := l.store.EventByID(ctx, eventID)
    if err != nil {
        return false, err
    }
    return ev.State == model.EventApproved, nil
}

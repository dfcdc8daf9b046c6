package service

import (
    "context"

    "github.com/gatherly/event-registration/internal/model"
)

// Admission decides whether a new registration may be created for an
// event and creates it when allowed.  The capacity check and the insert
// run under an exclusive lock on the event row, so no interleaving of
// concurrent admits can push the live registration count above the
// event's capacity, and no user can end up with two live rows for the
// same event.
type Admission struct {
    store Store
}

// NewAdmission returns an Admission bound to the given store.
func NewAdmission(store Store) *Admission {
    if store == nil {
        panic("nil store passed to NewAdmission")
    }
    return &Admission{store: store}
}

// Admit registers userID for eventID.  Preconditions are checked in
// order, each with its own error: the event must exist
// (ErrEventNotFound), must be approved (ErrEventNotApproved), the user
// must not already hold a live registration (ErrAlreadyRegistered) and
// the live count must be below capacity (ErrEventFull).  Only when all
// four hold is a REGISTERED row inserted.  Any failure rolls the
// transaction back, leaving the store unchanged.
func (a *Admission) Admit(ctx context.Context, eventID, userID uint64) (*model.Registration, error) {
    var reg *model.Registration
    err := a.store.InTx(ctx, func(tx Tx) error {
        ev, err := tx.EventForUpdate(ctx, eventID)
        if err != nil {
            return err
        }
        if ev.State != model.EventApproved {
            return ErrEventNotApproved
        }
        exists, err := tx.HasLiveRegistration(ctx, userID, eventID)
        if err != nil {
            return err
        }
        if exists {
            return ErrAlreadyRegistered
        }
        live, err := tx.CountLiveRegistrations(ctx, eventID)
        if err != nil {
            return err
        }
        if live >= int(ev.Capacity) {
            return ErrEventFull
        }
        r := &model.Registration{
            UserID:  userID,
            EventID: eventID,
            Status:  model.RegistrationRegistered,
        }
        // The unique live-registration index backs up the check above:
        // if a duplicate slipped past it, the insert fails and the store
        // reports ErrAlreadyRegistered.
        if err := tx.InsertRegistration(ctx, r); err != nil {
            return err
        }
        reg = r
        return nil
    })
    if err != nil {
        return nil, err
    }
    return reg, nil
}

// Cancel sets the registration to CANCELLED.  Only the owner of the
// registration may cancel it; anyone else gets ErrForbidden.  Cancelling
// an already cancelled registration is a no-op, not an error.  The freed
// capacity is visible to subsequent admits the instant the transaction
// commits, because admits count live rows under the event lock.
func (a *Admission) Cancel(ctx context.Context, registrationID, callerUserID uint64) error {
    return a.store.InTx(ctx, func(tx Tx) error {
        r, err := tx.RegistrationForUpdate(ctx, registrationID)
        if err != nil {
            return err
        }
        if r.UserID != callerUserID {
            return ErrForbidden
        }
        if r.Status == model.RegistrationCancelled {
            return nil
        }
        return tx.MarkRegistrationCancelled(ctx, registrationID)
    })
}

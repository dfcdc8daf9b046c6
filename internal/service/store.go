package service

import (
    "context"

    "github.com/gatherly/event-registration/internal/model"
)

// Tx is the slice of storage operations the core services need inside a
// single transaction.  Implementations must guarantee that EventForUpdate
// acquires an exclusive lock scoped to that event row for the remainder
// of the transaction, so the capacity read and the registration insert
// are observed as one atomic unit by concurrent transactions on the same
// event.  Transactions on different events must not contend.
type Tx interface {
    // EventForUpdate loads an event under an exclusive row lock.  It
    // returns ErrEventNotFound when no such event exists.
    EventForUpdate(ctx context.Context, eventID uint64) (model.Event, error)

    // CountLiveRegistrations reports how many REGISTERED rows exist for
    // the event.
    CountLiveRegistrations(ctx context.Context, eventID uint64) (int, error)

    // HasLiveRegistration reports whether the user already holds a
    // REGISTERED row for the event.
    HasLiveRegistration(ctx context.Context, userID, eventID uint64) (bool, error)

    // InsertRegistration persists a new registration and populates its
    // generated ID and timestamps.  A uniqueness violation on the live
    // (user, event) index is reported as ErrAlreadyRegistered.
    InsertRegistration(ctx context.Context, reg *model.Registration) error

    // RegistrationForUpdate loads a registration under a row lock.  It
    // returns ErrRegistrationNotFound when no such row exists.
    RegistrationForUpdate(ctx context.Context, id uint64) (model.Registration, error)

    // MarkRegistrationCancelled sets the registration status to
    // CANCELLED.
    MarkRegistrationCancelled(ctx context.Context, id uint64) error
}

// Store is the transactional entity store consumed by the services.  The
// store is the sole point of synchronization between concurrent request
// workers; no in-process state is shared.
type Store interface {
    // EventByID loads an event without locking it.  It returns
    // ErrEventNotFound when no such event exists.
    EventByID(ctx context.Context, eventID uint64) (model.Event, error)

    // SetEventState updates the approval state of an event in a single
    // row write.  Approval and rejection are idempotent, so
    // last-writer-wins semantics are acceptable here and no lock beyond
    // the row update itself is required.
    SetEventState(ctx context.Context, eventID uint64, state model.EventState) error

    // InTx runs fn inside a transaction.  When fn returns an error the
    // transaction is rolled back and nothing is applied; otherwise it is
    // committed before InTx returns.  Storage contention errors
    // (deadlock, lock wait timeout) surface as ErrTransient.
    InTx(ctx context.Context, fn func(tx Tx) error) error
}

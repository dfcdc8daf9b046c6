package repository

import (
    "context"
    "database/sql"

    "github.com/gatherly/event-registration/internal/model"
    "github.com/gatherly/event-registration/internal/service"
)

// Store implements service.Store on top of MySQL.  The database is the
// sole point of synchronization between request workers: the exclusive
// row lock taken by EventForUpdate spans the capacity read and the
// registration insert, so concurrent admissions for the same event are
// strictly serialized while admissions for different events proceed in
// parallel.
type Store struct {
    db     *sql.DB
    events *EventRepo
    regs   *RegistrationRepo
}

// NewStore returns a Store combining the event and registration
// repositories over a shared database handle.
func NewStore(db *sql.DB, events *EventRepo, regs *RegistrationRepo) *Store {
    if db == nil || events == nil || regs == nil {
        panic("nil dependency passed to NewStore")
    }
    return &Store{db: db, events: events, regs: regs}
}

// EventByID loads an event without locking it.
func (s *Store) EventByID(ctx context.Context, eventID uint64) (model.Event, error) {
    return s.events.GetByID(ctx, eventID)
}

// SetEventState updates the approval state in a single row write.
func (s *Store) SetEventState(ctx context.Context, eventID uint64, state model.EventState) error {
    return s.events.SetState(ctx, eventID, state)
}

// InTx runs fn inside a database transaction.  The transaction is
// rolled back unless fn succeeds and the commit goes through, so a
// failure at any step leaves the store unchanged.  Contention failures
// from the storage engine surface as service.ErrTransient.
func (s *Store) InTx(ctx context.Context, fn func(tx service.Tx) error) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return translateErr(err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(&storeTx{tx: tx, events: s.events, regs: s.regs}); err != nil {
        return translateErr(err)
    }
    if err := tx.Commit(); err != nil {
        return translateErr(err)
    }
    committed = true
    return nil
}

// storeTx adapts the repositories' *sql.Tx methods to service.Tx.
type storeTx struct {
    tx     *sql.Tx
    events *EventRepo
    regs   *RegistrationRepo
}

func (t *storeTx) EventForUpdate(ctx context.Context, eventID uint64) (model.Event, error) {
    return t.events.GetForUpdateTx(ctx, t.tx, eventID)
}

func (t *storeTx) CountLiveRegistrations(ctx context.Context, eventID uint64) (int, error) {
    return t.regs.CountLiveTx(ctx, t.tx, eventID)
}

func (t *storeTx) HasLiveRegistration(ctx context.Context, userID, eventID uint64) (bool, error) {
    return t.regs.HasLiveTx(ctx, t.tx, userID, eventID)
}

func (t *storeTx) InsertRegistration(ctx context.Context, reg *model.Registration) error {
    return t.regs.CreateTx(ctx, t.tx, reg)
}

func (t *storeTx) RegistrationForUpdate(ctx context.Context, id uint64) (model.Registration, error) {
    return t.regs.GetForUpdateTx(ctx, t.tx, id)
}

func (t *storeTx) MarkRegistrationCancelled(ctx context.Context, id uint64) error {
    return t.regs.CancelTx(ctx, t.tx, id)
}

package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/gatherly/event-registration/internal/model"
    "github.com/gatherly/event-registration/internal/service"
)

// EventRepo provides CRUD operations for events.  Events are created in
// the PENDING state and never become registrable until a platform
// manager approves them.  All timestamp columns are stored in UTC.
type EventRepo struct {
    db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, title, description, event_date, event_time, location, capacity, created_by, state, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }, ev *model.Event) error {
    return row.Scan(
        &ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.Time, &ev.Location,
        &ev.Capacity, &ev.CreatedBy, &ev.State, &ev.CreatedAt, &ev.UpdatedAt,
    )
}

// Create inserts a new event and populates the generated ID and
// DB-default fields (state, timestamps) on the provided struct.  The
// caller is expected to have validated the fields already; a capacity
// below one is still rejected here as a last line of defense.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
    if ev.Capacity < 1 {
        return service.ErrInvalidInput
    }
    const q = `INSERT INTO events (title, description, event_date, event_time, location, capacity, created_by)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, ev.Title, ev.Description, ev.Date, ev.Time, ev.Location, ev.Capacity, ev.CreatedBy)
    if err != nil {
        return translateErr(err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    ev.ID = uint64(id)
    // Query back the full row to populate state and timestamps.
    const sel = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
    return scanEvent(r.db.QueryRowContext(ctx, sel, ev.ID), ev)
}

// GetByID returns a single event.  When no event with the given ID
// exists, service.ErrEventNotFound is returned.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
    const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
    var ev model.Event
    if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &ev); err != nil {
        return model.Event{}, notFound(translateErr(err), service.ErrEventNotFound)
    }
    return ev, nil
}

// GetForUpdateTx loads an event under an exclusive row lock within the
// provided transaction.  The lock is held until the caller commits or
// rolls back, which serializes concurrent admissions on the same event
// while leaving other events uncontended.
func (r *EventRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Event, error) {
    const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ? FOR UPDATE`
    var ev model.Event
    if err := scanEvent(tx.QueryRowContext(ctx, q, id), &ev); err != nil {
        return model.Event{}, notFound(translateErr(err), service.ErrEventNotFound)
    }
    return ev, nil
}

// SetState updates the approval state of an event in a single row
// write.  It returns service.ErrEventNotFound when the event does not
// exist.
func (r *EventRepo) SetState(ctx context.Context, id uint64, state model.EventState) error {
    res, err := r.db.ExecContext(ctx, `UPDATE events SET state = ? WHERE id = ?`, state, id)
    if err != nil {
        return translateErr(err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    // RowsAffected is 0 both for a missing row and for a no-op write to
    // the current state; distinguish them with an existence probe.
    if n == 0 {
        var one int
        if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, id).Scan(&one); err != nil {
            return notFound(err, service.ErrEventNotFound)
        }
    }
    return nil
}

// EventFilter narrows the result of List.  Zero values mean "no
// constraint" for their field.
type EventFilter struct {
    State     model.EventState // restrict to a single approval state
    CreatedBy uint64           // restrict to events created by this user
    Date      string           // exact calendar date ("2006-01-02")
    Location  string           // case-insensitive substring match
}

// List returns events matching the filter ordered by date then start
// time.  When nothing matches, an empty slice is returned.
func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
    q := `SELECT ` + eventColumns + ` FROM events`
    var (
        conds []string
        args  []interface{}
    )
    if f.State != "" {
        conds = append(conds, "state = ?")
        args = append(args, f.State)
    }
    if f.CreatedBy != 0 {
        conds = append(conds, "created_by = ?")
        args = append(args, f.CreatedBy)
    }
    if f.Date != "" {
        conds = append(conds, "event_date = ?")
        args = append(args, f.Date)
    }
    if f.Location != "" {
        conds = append(conds, "LOWER(location) LIKE ?")
        args = append(args, "%"+strings.ToLower(f.Location)+"%")
    }
    if len(conds) > 0 {
        q += " WHERE " + strings.Join(conds, " AND ")
    }
    q += " ORDER BY event_date, event_time, id"

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, translateErr(err)
    }
    defer rows.Close()
    events := make([]model.Event, 0)
    for rows.Next() {
        var ev model.Event
        if err := scanEvent(rows, &ev); err != nil {
            return nil, err
        }
        events = append(events, ev)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return events, nil
}

// Update persists editable fields of an event owned by an organizer.
// State, creator and timestamps are not touched here; moderation goes
// through SetState and ownership is checked by the caller via policy.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
    if ev.Capacity < 1 {
        return service.ErrInvalidInput
    }
    const q = `UPDATE events
               SET title = ?, description = ?, event_date = ?, event_time = ?, location = ?, capacity = ?
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, ev.Title, ev.Description, ev.Date, ev.Time, ev.Location, ev.Capacity, ev.ID)
    if err != nil {
        return translateErr(err)
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        var one int
        if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, ev.ID).Scan(&one); err != nil {
            return notFound(err, service.ErrEventNotFound)
        }
    }
    const sel = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
    return scanEvent(r.db.QueryRowContext(ctx, sel, ev.ID), ev)
}

// Delete removes an event.  Registrations referencing it are removed by
// the foreign key cascade.  It returns service.ErrEventNotFound when no
// row was deleted.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
    if err != nil {
        return translateErr(err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return service.ErrEventNotFound
    }
    return nil
}

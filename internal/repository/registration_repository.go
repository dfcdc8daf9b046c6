package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/gatherly/event-registration/internal/model"
    "github.com/gatherly/event-registration/internal/service"
)

// RegistrationRepo provides data access for registrations.  Rows are
// never deleted by cancellation; a cancelled registration stays in the
// table with status CANCELLED and stops counting against capacity.  The
// table carries a unique index over (user_id, event_id, live) where
// `live` is a generated column that is 1 for REGISTERED rows and NULL
// otherwise, so at most one live row can exist per pair no matter how
// requests interleave.
type RegistrationRepo struct {
    db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given
// database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

const registrationColumns = `id, user_id, event_id, status, registered_at, updated_at`

func scanRegistration(row interface{ Scan(...any) error }, reg *model.Registration) error {
    return row.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.Status, &reg.RegisteredAt, &reg.UpdatedAt)
}

// CountLiveTx returns the number of REGISTERED rows for an event within
// the provided transaction.  Callers must hold the event row lock when
// the result feeds an admission decision.
func (r *RegistrationRepo) CountLiveTx(ctx context.Context, tx *sql.Tx, eventID uint64) (int, error) {
    var n int
    err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM registrations WHERE event_id = ? AND status = ?`,
        eventID, model.RegistrationRegistered,
    ).Scan(&n)
    if err != nil {
        return 0, translateErr(err)
    }
    return n, nil
}

// HasLiveTx reports whether the user already holds a REGISTERED row for
// the event, within the provided transaction.
func (r *RegistrationRepo) HasLiveTx(ctx context.Context, tx *sql.Tx, userID, eventID uint64) (bool, error) {
    var one int
    err := tx.QueryRowContext(ctx,
        `SELECT 1 FROM registrations WHERE user_id = ? AND event_id = ? AND status = ? LIMIT 1`,
        userID, eventID, model.RegistrationRegistered,
    ).Scan(&one)
    if err == sql.ErrNoRows {
        return false, nil
    }
    if err != nil {
        return false, translateErr(err)
    }
    return true, nil
}

// CreateTx inserts a new registration within the provided transaction
// and populates the generated ID and timestamps on the given record.  A
// violation of the live-uniqueness index is translated to
// service.ErrAlreadyRegistered so a racing duplicate is reported the
// same way as one caught by the pre-check.
func (r *RegistrationRepo) CreateTx(ctx context.Context, tx *sql.Tx, reg *model.Registration) error {
    const q = `INSERT INTO registrations (user_id, event_id, status) VALUES (?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, reg.UserID, reg.EventID, reg.Status)
    if err != nil {
        return translateErr(err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    reg.ID = uint64(id)
    const sel = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = ?`
    return scanRegistration(tx.QueryRowContext(ctx, sel, reg.ID), reg)
}

// GetForUpdateTx loads a registration under a row lock within the
// provided transaction.  Cancellation only needs this single row; the
// event record is not locked.
func (r *RegistrationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Registration, error) {
    const q = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = ? FOR UPDATE`
    var reg model.Registration
    if err := scanRegistration(tx.QueryRowContext(ctx, q, id), &reg); err != nil {
        return model.Registration{}, notFound(translateErr(err), service.ErrRegistrationNotFound)
    }
    return reg, nil
}

// CancelTx sets the registration status to CANCELLED within the
// provided transaction.
func (r *RegistrationRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE registrations SET status = ? WHERE id = ?`,
        model.RegistrationCancelled, id,
    )
    return translateErr(err)
}

// RegistrationDetail joins a registration with the headline fields of
// its event for listing responses.
type RegistrationDetail struct {
    ID           uint64    `json:"id"`
    UserID       uint64    `json:"user_id"`
    EventID      uint64    `json:"event_id"`
    EventTitle   string    `json:"event_title"`
    EventDate    string    `json:"event_date"`
    EventTime    string    `json:"event_time"`
    Location     string    `json:"location"`
    Status       string    `json:"status"`
    RegisteredAt time.Time `json:"registered_at"`
}

const detailQuery = `SELECT r.id, r.user_id, r.event_id, e.title, e.event_date, e.event_time, e.location, r.status, r.registered_at
                     FROM registrations r
                     JOIN events e ON e.id = r.event_id`

func collectDetails(rows *sql.Rows) ([]RegistrationDetail, error) {
    defer rows.Close()
    details := make([]RegistrationDetail, 0)
    for rows.Next() {
        var d RegistrationDetail
        if err := rows.Scan(&d.ID, &d.UserID, &d.EventID, &d.EventTitle, &d.EventDate, &d.EventTime, &d.Location, &d.Status, &d.RegisteredAt); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// ListByUser returns all registrations made by the given user, newest
// first, including cancelled ones.  When none exist an empty slice is
// returned.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64) ([]RegistrationDetail, error) {
    rows, err := r.db.QueryContext(ctx, detailQuery+` WHERE r.user_id = ? ORDER BY r.registered_at DESC, r.id DESC`, userID)
    if err != nil {
        return nil, translateErr(err)
    }
    return collectDetails(rows)
}

// ListAll returns every registration on the platform, newest first.  It
// backs the administrative listing and must only be exposed to platform
// managers.
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]RegistrationDetail, error) {
    rows, err := r.db.QueryContext(ctx, detailQuery+` ORDER BY r.registered_at DESC, r.id DESC`)
    if err != nil {
        return nil, translateErr(err)
    }
    return collectDetails(rows)
}

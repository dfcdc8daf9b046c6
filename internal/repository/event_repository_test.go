package repository

import (
    "context"
    "errors"
    "regexp"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"

    "github.com/gatherly/event-registration/internal/service"
)

func newEventRepo(t *testing.T) (*EventRepo, sqlmock.Sqlmock, func()) {
    t.Helper()
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    return NewEventRepo(db), mock, func() { _ = db.Close() }
}

// GetByID serves the unlocked read path (lifecycle checks, the public
// catalog), so its driver failures must be translated the same way the
// locked path's are: contention is retryable, a missing row is NotFound.
func TestGetByIDErrorTranslation(t *testing.T) {
    ctx := context.Background()
    query := regexp.QuoteMeta(`SELECT ` + eventColumns + ` FROM events WHERE id = ?`)

    t.Run("deadlock surfaces as transient", func(t *testing.T) {
        repo, mock, done := newEventRepo(t)
        defer done()
        mock.ExpectQuery(query).
            WithArgs(uint64(1)).
            WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})

        if _, err := repo.GetByID(ctx, 1); !errors.Is(err, service.ErrTransient) {
            t.Errorf("err = %v, want service.ErrTransient", err)
        }
    })

    t.Run("lock wait timeout surfaces as transient", func(t *testing.T) {
        repo, mock, done := newEventRepo(t)
        defer done()
        mock.ExpectQuery(query).
            WithArgs(uint64(1)).
            WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})

        if _, err := repo.GetByID(ctx, 1); !errors.Is(err, service.ErrTransient) {
            t.Errorf("err = %v, want service.ErrTransient", err)
        }
    })

    t.Run("missing row surfaces as not found", func(t *testing.T) {
        repo, mock, done := newEventRepo(t)
        defer done()
        mock.ExpectQuery(query).
            WithArgs(uint64(99)).
            WillReturnRows(sqlmock.NewRows([]string{"id"}))

        if _, err := repo.GetByID(ctx, 99); !errors.Is(err, service.ErrEventNotFound) {
            t.Errorf("err = %v, want service.ErrEventNotFound", err)
        }
    })
}

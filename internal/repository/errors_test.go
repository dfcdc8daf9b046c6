package repository

import (
    "database/sql"
    "errors"
    "fmt"
    "testing"

    "github.com/go-sql-driver/mysql"

    "github.com/gatherly/event-registration/internal/service"
)

func TestTranslateErr(t *testing.T) {
    dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7-1-1' for key 'uq_registrations_live'"}
    deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
    lockWait := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
    other := &mysql.MySQLError{Number: 1146, Message: "Table 'x.y' doesn't exist"}

    tests := []struct {
        name string
        in   error
        want error
    }{
        {"nil", nil, nil},
        {"duplicate entry", dup, service.ErrAlreadyRegistered},
        {"wrapped duplicate", fmt.Errorf("insert: %w", dup), service.ErrAlreadyRegistered},
        {"deadlock", deadlock, service.ErrTransient},
        {"lock wait timeout", lockWait, service.ErrTransient},
        {"sentinel passes through", service.ErrEventFull, service.ErrEventFull},
        {"wrapped sentinel passes through", fmt.Errorf("tx: %w", service.ErrEventNotApproved), service.ErrEventNotApproved},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got := translateErr(tt.in)
            if tt.want == nil {
                if got != nil {
                    t.Errorf("translateErr = %v, want nil", got)
                }
                return
            }
            if !errors.Is(got, tt.want) {
                t.Errorf("translateErr(%v) = %v, want %v", tt.in, got, tt.want)
            }
        })
    }

    // Unrecognized driver errors must pass through unchanged so callers
    // can log the real failure.
    if got := translateErr(other); got != other {
        t.Errorf("translateErr(other) = %v, want passthrough", got)
    }
}

func TestNotFound(t *testing.T) {
    if got := notFound(sql.ErrNoRows, service.ErrEventNotFound); !errors.Is(got, service.ErrEventNotFound) {
        t.Errorf("notFound(ErrNoRows) = %v, want ErrEventNotFound", got)
    }
    boom := errors.New("connection reset")
    if got := notFound(boom, service.ErrEventNotFound); got != boom {
        t.Errorf("notFound(boom) = %v, want passthrough", got)
    }
}

func TestIsHelpers(t *testing.T) {
    if !isDuplicateEntry(&mysql.MySQLError{Number: 1062}) {
        t.Error("1062 should be a duplicate entry")
    }
    if isDuplicateEntry(errors.New("duplicate but not a driver error")) {
        t.Error("plain errors are not duplicate entries")
    }
    if !isTransient(&mysql.MySQLError{Number: 1205}) || !isTransient(&mysql.MySQLError{Number: 1213}) {
        t.Error("1205 and 1213 should be transient")
    }
    if isTransient(&mysql.MySQLError{Number: 1062}) {
        t.Error("1062 is not transient")
    }
}

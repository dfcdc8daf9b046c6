// Package repository contains the raw SQL data access layer.  Domain
// error kinds live in the service package; this file holds the helpers
// that translate MySQL driver errors into those kinds so higher layers
// never see driver specific failures.
package repository

import (
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"

    "github.com/gatherly/event-registration/internal/service"
)

// MySQL server error numbers the repositories care about.
const (
    mysqlDupEntry        = 1062 // ER_DUP_ENTRY: unique index violation
    mysqlLockWaitTimeout = 1205 // ER_LOCK_WAIT_TIMEOUT
    mysqlDeadlock        = 1213 // ER_LOCK_DEADLOCK
)

// isDuplicateEntry reports whether err is a unique index violation.
func isDuplicateEntry(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == mysqlDupEntry
}

// isTransient reports whether err is a retryable storage contention
// failure (deadlock or lock wait timeout).
func isTransient(err error) bool {
    var me *mysql.MySQLError
    if !errors.As(err, &me) {
        return false
    }
    return me.Number == mysqlLockWaitTimeout || me.Number == mysqlDeadlock
}

// translateErr maps driver level failures to the service error kinds.
// Errors that are already service sentinels pass through untouched so
// precondition failures keep their identity across the transaction
// boundary.
func translateErr(err error) error {
    switch {
    case err == nil:
        return nil
    case errors.Is(err, service.ErrEventNotFound),
        errors.Is(err, service.ErrRegistrationNotFound),
        errors.Is(err, service.ErrForbidden),
        errors.Is(err, service.ErrEventNotApproved),
        errors.Is(err, service.ErrAlreadyRegistered),
        errors.Is(err, service.ErrEventFull),
        errors.Is(err, service.ErrInvalidInput),
        errors.Is(err, service.ErrTransient):
        return err
    case isDuplicateEntry(err):
        return service.ErrAlreadyRegistered
    case isTransient(err):
        return service.ErrTransient
    default:
        return err
    }
}

// notFound converts sql.ErrNoRows into the given sentinel, passing any
// other error through.
func notFound(err, sentinel error) error {
    if errors.Is(err, sql.ErrNoRows) {
        return sentinel
    }
    return err
}

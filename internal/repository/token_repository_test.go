package repository

import (
    "context"
    "database/sql"
    "errors"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
)

// The refresh token contract between repo and schema: revocation is a
// nullable revoked_at timestamp, not a boolean flag.  These tests pin
// the column set so the queries and schema.sql cannot drift apart
// silently again.

func newTokenRepo(t *testing.T) (*TokenRepo, sqlmock.Sqlmock, func()) {
    t.Helper()
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    return NewTokenRepo(db), mock, func() { _ = db.Close() }
}

const validateQuery = "SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1"

func TestValidateRefresh(t *testing.T) {
    ctx := context.Background()
    future := time.Now().UTC().Add(24 * time.Hour)

    t.Run("live token", func(t *testing.T) {
        repo, mock, done := newTokenRepo(t)
        defer done()
        mock.ExpectQuery(regexp.QuoteMeta(validateQuery)).
            WithArgs("hash-a").
            WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
                AddRow(42, future, nil))

        uid, err := repo.ValidateRefresh(ctx, "hash-a")
        if err != nil || uid != 42 {
            t.Errorf("ValidateRefresh = %d, %v; want 42, nil", uid, err)
        }
        if err := mock.ExpectationsWereMet(); err != nil {
            t.Error(err)
        }
    })

    t.Run("revoked token rejected", func(t *testing.T) {
        repo, mock, done := newTokenRepo(t)
        defer done()
        revoked := time.Now().UTC().Add(-time.Hour)
        mock.ExpectQuery(regexp.QuoteMeta(validateQuery)).
            WithArgs("hash-b").
            WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
                AddRow(42, future, revoked))

        if _, err := repo.ValidateRefresh(ctx, "hash-b"); !errors.Is(err, sql.ErrNoRows) {
            t.Errorf("err = %v, want sql.ErrNoRows", err)
        }
    })

    t.Run("expired token rejected", func(t *testing.T) {
        repo, mock, done := newTokenRepo(t)
        defer done()
        past := time.Now().UTC().Add(-time.Hour)
        mock.ExpectQuery(regexp.QuoteMeta(validateQuery)).
            WithArgs("hash-c").
            WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
                AddRow(42, past, nil))

        if _, err := repo.ValidateRefresh(ctx, "hash-c"); !errors.Is(err, sql.ErrNoRows) {
            t.Errorf("err = %v, want sql.ErrNoRows", err)
        }
    })

    t.Run("unknown hash", func(t *testing.T) {
        repo, mock, done := newTokenRepo(t)
        defer done()
        mock.ExpectQuery(regexp.QuoteMeta(validateQuery)).
            WithArgs("hash-d").
            WillReturnError(sql.ErrNoRows)

        if _, err := repo.ValidateRefresh(ctx, "hash-d"); !errors.Is(err, sql.ErrNoRows) {
            t.Errorf("err = %v, want sql.ErrNoRows", err)
        }
    })
}

func TestRevokeByHash(t *testing.T) {
    repo, mock, done := newTokenRepo(t)
    defer done()
    mock.ExpectExec(regexp.QuoteMeta(
        "UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL")).
        WithArgs("hash-a").
        WillReturnResult(sqlmock.NewResult(0, 1))

    if err := repo.RevokeByHash(context.Background(), "hash-a"); err != nil {
        t.Errorf("RevokeByHash: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Error(err)
    }
}

func TestRevokeAllForUser(t *testing.T) {
    repo, mock, done := newTokenRepo(t)
    defer done()
    mock.ExpectExec(regexp.QuoteMeta(
        "UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL")).
        WithArgs(uint64(42)).
        WillReturnResult(sqlmock.NewResult(0, 3))

    if err := repo.RevokeAllForUser(context.Background(), 42); err != nil {
        t.Errorf("RevokeAllForUser: %v", err)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Error(err)
    }
}

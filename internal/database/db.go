package database

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    _ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection before returning.
// parseTime turns DATE/TIMESTAMP columns into time.Time and loc=UTC
// keeps every timestamp in UTC, matching how the repositories store
// them.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
    auth := user
    if pass != "" {
        auth = fmt.Sprintf("%s:%s", user, pass)
    }
    dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
        auth, host, port, name)

    db, err := sql.Open("mysql", dsn)
    if err != nil {
        return nil, err
    }

    // Admission transactions hold the event row lock only for the
    // check-and-insert step, so connections turn over quickly; a modest
    // pool is enough even during a popular event launch.  MaxIdleConns
    // matches MaxOpenConns so hot connections are not churned.
    db.SetMaxOpenConns(40)
    db.SetMaxIdleConns(40)
    db.SetConnMaxLifetime(30 * time.Minute)
    db.SetConnMaxIdleTime(5 * time.Minute)

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        return nil, err
    }
    return db, nil
}

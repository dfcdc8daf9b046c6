package model

import "time"

// RegistrationStatus enumerates the lifecycle of a registration.  A
// registration is live while REGISTERED and stops counting against the
// event capacity once CANCELLED.  Cancelled rows never return to
// REGISTERED; re-registering creates a new row.
type RegistrationStatus string

const (
    RegistrationRegistered RegistrationStatus = "REGISTERED" // live, counts against capacity
    RegistrationCancelled  RegistrationStatus = "CANCELLED"  // released, capacity freed
)

// Registration represents a row in the `registrations` table.  It links a
// user to an event.  At most one REGISTERED row may exist per (user,
// event) pair; the table enforces this with a unique index over a
// generated "live" column so the rule holds even when the application
// level check is bypassed by a race.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – user who registered.
//  EventID      – event registered for.
//  Status       – REGISTERED or CANCELLED.
//  RegisteredAt – timestamp the row was created.
//  UpdatedAt    – timestamp of last status change.
type Registration struct {
    ID           uint64             `json:"id"`            // registrations.id
    UserID       uint64             `json:"user_id"`       // registrations.user_id
    EventID      uint64             `json:"event_id"`      // registrations.event_id
    Status       RegistrationStatus `json:"status"`        // registrations.status
    RegisteredAt time.Time          `json:"registered_at"` // registrations.registered_at
    UpdatedAt    time.Time          `json:"updated_at"`    // registrations.updated_at
}

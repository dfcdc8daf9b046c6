// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer that
// turns them into an audit log.
package queue

// RegistrationConfirmedEvent is published after an admission commits.
// It contains enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type RegistrationConfirmedEvent struct {
    RegistrationID uint64 `json:"registration_id"`
    UserID         uint64 `json:"user_id"`
    EventID        uint64 `json:"event_id"`
    EventTitle     string `json:"event_title"`
    EventDate      string `json:"event_date"`
    EventTime      string `json:"event_time"`
    Location       string `json:"location"`
    RegisteredAt   string `json:"registered_at"`
}

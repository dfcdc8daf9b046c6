package model

import "time"

// EventState enumerates the approval lifecycle of an event.  Every event
// starts out PENDING and moves to APPROVED or REJECTED through the
// moderation endpoints.  Approved and rejected are both re-reachable from
// each other; there is no terminal state.
type EventState string

const (
    EventPending  EventState = "PENDING"  // newly created, awaiting review
    EventApproved EventState = "APPROVED" // visible to the public and open for registration
    EventRejected EventState = "REJECTED" // hidden from the public, closed for registration
)

// Event represents a row in the `events` table.  An event is created by
// an organizer with a fixed capacity and becomes registrable only once a
// platform manager approves it.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – short human readable name.
//  Description – free form description, may be empty.
//  Date        – calendar date of the event ("2006-01-02").
//  Time        – start time of the event ("15:04").
//  Location    – venue or city name.
//  Capacity    – maximum number of live registrations; always >= 1.
//  CreatedBy   – user ID of the organizer who created the event.
//  State       – approval state (PENDING, APPROVED, REJECTED).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Event struct {
    ID          uint64     `json:"id"`          // events.id
    Title       string     `json:"title"`       // events.title
    Description string     `json:"description"` // events.description
    Date        string     `json:"date"`        // events.event_date
    Time        string     `json:"time"`        // events.event_time
    Location    string     `json:"location"`    // events.location
    Capacity    uint32     `json:"capacity"`    // events.capacity
    CreatedBy   uint64     `json:"created_by"`  // events.created_by
    State       EventState `json:"state"`       // events.state
    CreatedAt   time.Time  `json:"created_at"`  // events.created_at
    UpdatedAt   time.Time  `json:"updated_at"`  // events.updated_at
}

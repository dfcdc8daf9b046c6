// Package policy implements role based access decisions.  It is a pure
// decision layer: given who is calling, what they want to do and who owns
// the target resource, Allow answers permit or deny.  It performs no I/O
// and touches no state, so every mutation path can consult it cheaply
// before doing any work.
package policy

// Role is the coarse grained capability tag carried in the JWT "role"
// claim.  The spelling matches the values stored in the users table.
type Role string

const (
    RolePlatformManager Role = "PLATFORM_MANAGER" // moderates events, sees admin listings
    RoleOrganizer       Role = "ORGANIZER"        // creates and manages own events
    RoleApplicant       Role = "APPLICANT"        // browses approved events, registers
)

// Valid reports whether r is one of the known role tags.
func (r Role) Valid() bool {
    switch r {
    case RolePlatformManager, RoleOrganizer, RoleApplicant:
        return true
    }
    return false
}

// Action identifies a class of operation guarded by the policy.
type Action int

const (
    ActionCreateEvent        Action = iota // create a new event
    ActionEditEvent                        // update fields of an existing event
    ActionDeleteEvent                      // delete an existing event
    ActionModerateEvent                    // approve or reject an event
    ActionViewAdminListings                // pending events, all registrations
    ActionRegister                         // register for an event
    ActionCancelRegistration               // cancel an existing registration
)

// Principal is an authenticated caller: an identity plus a role tag.  It
// is extracted from the JWT by middleware before any core call.
type Principal struct {
    UserID uint64
    Role   Role
}

// Allow reports whether the principal may perform action on a resource
// owned by ownerID.  The role level check always runs first; the object
// level ownership check only applies once the role class permits the
// action, so a resource the caller does not own is denied even when the
// role would otherwise allow the action class.  Pass ownerID 0 for
// actions without an owned target.
func Allow(p Principal, action Action, ownerID uint64) bool {
    switch action {
    case ActionCreateEvent:
        return p.Role == RoleOrganizer
    case ActionEditEvent, ActionDeleteEvent:
        // Organizers manage only the events they created.  The platform
        // manager's override covers moderation and admin listings, not
        // editing someone else's event.
        if p.Role != RoleOrganizer {
            return false
        }
        return p.UserID != 0 && p.UserID == ownerID
    case ActionModerateEvent, ActionViewAdminListings:
        return p.Role == RolePlatformManager
    case ActionRegister:
        // Any authenticated user may attempt to register; capacity and
        // approval checks are the admission controller's job.
        return p.UserID != 0 && p.Role.Valid()
    case ActionCancelRegistration:
        return p.UserID != 0 && p.UserID == ownerID
    }
    return false
}

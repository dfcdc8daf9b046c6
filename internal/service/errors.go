// Package service houses the core business operations of the platform:
// capacity bounded admission of registrations and the event approval
// lifecycle.  Handlers translate the sentinel errors defined here into
// distinct HTTP responses; none of them are swallowed.
package service

import "errors"

// ErrEventNotFound indicates the referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrRegistrationNotFound indicates the referenced registration does not exist.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own or lacks the role required for the action.
// Handlers translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEventNotApproved is returned when registering for an event that has
// not been approved by a platform manager.
var ErrEventNotApproved = errors.New("event is not approved")

// ErrAlreadyRegistered is returned when the user already holds a live
// registration for the event.  It is produced both by the pre-check and
// by the store's uniqueness constraint when a concurrent duplicate slips
// past the pre-check.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrEventFull is returned when the event has no remaining capacity.
var ErrEventFull = errors.New("event is full")

// ErrInvalidInput is returned for malformed fields, e.g. a capacity
// below one.
var ErrInvalidInput = errors.New("invalid input")

// ErrTransient is returned when a storage level failure (lock wait
// timeout, deadlock) aborted the operation.  It is the only error a
// caller may retry without re-validating business state.
var ErrTransient = errors.New("transient storage failure")

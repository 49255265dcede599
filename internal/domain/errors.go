package domain

import "errors"

// Sentinel errors returned by services. Callers match them with errors.Is; services wrap
// them with detail, e.g. fmt.Errorf("%w: status %s", ErrInvalidState, status).
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateName        = errors.New("name already exists")
	ErrHasDependents        = errors.New("resource has dependents")
	ErrInvalidRange         = errors.New("end time cannot be before start time")
	ErrInvalidState         = errors.New("invalid state")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAlreadyRegistered    = errors.New("user is already registered for this event")
	ErrEventInPast          = errors.New("cannot register for past events")
	ErrCapacityExceeded     = errors.New("event has reached maximum capacity")
	ErrAlreadyCancelled     = errors.New("registration is already cancelled")
	ErrEventAlreadyStarted  = errors.New("event has already started")
	ErrOutsideCheckInWindow = errors.New("check-in is only available from 1 hour before event start until event end")
	ErrEventNotEnded        = errors.New("event has not ended yet")
	ErrNotAttended          = errors.New("can only rate events you have attended")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrTooEarly             = errors.New("cannot record attendance before event starts")
)

package domain

import (
	"context"
	"strings"
	"time"
)

// RegistrationStatus is the state of a user's enrollment in an event.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "REGISTERED"
	RegistrationStatusAttended   RegistrationStatus = "ATTENDED"
	RegistrationStatusCancelled  RegistrationStatus = "CANCELLED"
)

// ParseRegistrationStatus converts s (any casing) to a RegistrationStatus.
func ParseRegistrationStatus(s string) (RegistrationStatus, bool) {
	st := RegistrationStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case RegistrationStatusRegistered, RegistrationStatusAttended, RegistrationStatusCancelled:
		return st, true
	}
	return "", false
}

// EventRegistration links a user to an event. There is one row per (event, user).
// swagger:model EventRegistration
type EventRegistration struct {
	ID               string             `json:"id"`
	EventID          string             `json:"event_id"`
	EventTitle       string             `json:"event_title"`
	UserID           string             `json:"user_id"`
	UserName         string             `json:"user_name"`
	UserEmail        string             `json:"user_email"`
	Status           RegistrationStatus `json:"status"`
	CheckInTime      *time.Time         `json:"check_in_time"`
	Feedback         *string            `json:"feedback"`
	Rating           *int               `json:"rating"`
	RegistrationTime time.Time          `json:"registration_time"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewEventRegistration returns a REGISTERED registration. ID is set by the repository on create.
func NewEventRegistration(eventID, userID, userName, userEmail string, now time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:          eventID,
		UserID:           userID,
		UserName:         userName,
		UserEmail:        userEmail,
		Status:           RegistrationStatusRegistered,
		RegistrationTime: now,
		UpdatedAt:        now,
	}
}

// RegistrationOverwrite is a direct field overwrite with no transition checks. Nil means unchanged.
type RegistrationOverwrite struct {
	Status      *RegistrationStatus
	CheckInTime *time.Time
	Feedback    *string
	Rating      *int
}

// EventRegistrationRepository defines storage for registrations. Read methods fill EventTitle.
type EventRegistrationRepository interface {
	// CreateWithinCapacity locks the event row, counts its REGISTERED rows and inserts reg only
	// when the count is below the event's max participants. It returns ErrCapacityExceeded when
	// full and ErrAlreadyRegistered when a row for (event, user) already exists.
	CreateWithinCapacity(ctx context.Context, reg *EventRegistration) error
	GetByID(ctx context.Context, id string) (*EventRegistration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	List(ctx context.Context, params PaginationParams) ([]*EventRegistration, int, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventRegistration, error)
	ListByUserID(ctx context.Context, userID string) ([]*EventRegistration, error)
	// ListUpcomingByUserID returns the user's registrations whose event starts at or after now,
	// ascending by event start.
	ListUpcomingByUserID(ctx context.Context, userID string, now time.Time) ([]*EventRegistration, error)
	// ListPastByUserID returns the user's registrations whose event ended before now,
	// descending by event start.
	ListPastByUserID(ctx context.Context, userID string, now time.Time) ([]*EventRegistration, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	CountByEventIDAndStatus(ctx context.Context, eventID string, status RegistrationStatus) (int, error)
	Update(ctx context.Context, reg *EventRegistration) error
}

// RegistrationService defines the registration operations.
type RegistrationService interface {
	// Register creates a registration, or reactivates a cancelled one for the same pair.
	Register(ctx context.Context, eventID, userID, userName, userEmail string) (*EventRegistration, error)
	Cancel(ctx context.Context, id string) (*EventRegistration, error)
	CheckIn(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	SubmitFeedback(ctx context.Context, eventID, userID, feedback string, rating *int) (*EventRegistration, error)
	// OverwriteRegistration applies the given fields as-is without validating transitions.
	OverwriteRegistration(ctx context.Context, id string, ow RegistrationOverwrite) (*EventRegistration, error)
	GetRegistration(ctx context.Context, id string) (*EventRegistration, error)
	ListRegistrations(ctx context.Context, params PaginationParams) ([]*EventRegistration, int, error)
	ListEventRegistrations(ctx context.Context, eventID string) ([]*EventRegistration, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]*EventRegistration, error)
	ListUpcomingUserRegistrations(ctx context.Context, userID string) ([]*EventRegistration, error)
	ListPastUserRegistrations(ctx context.Context, userID string) ([]*EventRegistration, error)
}

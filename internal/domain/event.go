package domain

import (
	"context"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusDraft       EventStatus = "DRAFT"
	EventStatusScheduled   EventStatus = "SCHEDULED"
	EventStatusRescheduled EventStatus = "RESCHEDULED"
	EventStatusCancelled   EventStatus = "CANCELLED"
	EventStatusCompleted   EventStatus = "COMPLETED"
	EventStatusOngoing     EventStatus = "ONGOING"
)

// ParseEventStatus converts s (any casing) to an EventStatus.
func ParseEventStatus(s string) (EventStatus, bool) {
	st := EventStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case EventStatusDraft, EventStatusScheduled, EventStatusRescheduled,
		EventStatusCancelled, EventStatusCompleted, EventStatusOngoing:
		return st, true
	}
	return "", false
}

// AcceptsRegistrations reports whether new registrations may be created in this status.
func (s EventStatus) AcceptsRegistrations() bool {
	return s == EventStatusScheduled || s == EventStatusRescheduled
}

// Event represents a scheduled campus activity.
// swagger:model Event
type Event struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	CategoryID           string      `json:"category_id"`
	CategoryName         string      `json:"category_name"`
	StartTime            time.Time   `json:"start_time"`
	EndTime              time.Time   `json:"end_time"`
	Location             string      `json:"location"`
	VenueID              *int64      `json:"venue_id"`
	MaxParticipants      int         `json:"max_participants"`
	Organizer            string      `json:"organizer"`
	OrganizerID          string      `json:"organizer_id"`
	ImageURL             *string     `json:"image_url"`
	Tags                 []string    `json:"tags"`
	Status               EventStatus `json:"status"`
	CurrentRegistrations int         `json:"current_registrations"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// Window returns the [StartTime, EndTime] window of the event.
func (e *Event) Window() Window {
	return NewWindow(e.StartTime, e.EndTime)
}

// HasAllTags reports whether the event carries every tag in tags.
func (e *Event) HasAllTags(tags []string) bool {
	have := make(map[string]struct{}, len(e.Tags))
	for _, t := range e.Tags {
		have[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := have[t]; !ok {
			return false
		}
	}
	return true
}

// EventUpdate holds the optional fields of a partial event update. Nil means unchanged.
type EventUpdate struct {
	Title           *string
	Description     *string
	CategoryID      *string
	StartTime       *time.Time
	EndTime         *time.Time
	Location        *string
	VenueID         *int64
	MaxParticipants *int
	ImageURL        *string
	Tags            []string
	Status          *EventStatus
}

// EventSearchCriteria filters events. Zero values mean "no filter".
type EventSearchCriteria struct {
	CategoryID string
	Keyword    string
	StartFrom  *time.Time
	StartTo    *time.Time
	Status     *EventStatus
	Tags       []string
}

// Matches applies every criterion to e in memory.
func (c EventSearchCriteria) Matches(e *Event) bool {
	if c.CategoryID != "" && e.CategoryID != c.CategoryID {
		return false
	}
	if len(c.Tags) > 0 && !e.HasAllTags(c.Tags) {
		return false
	}
	if c.Keyword != "" {
		kw := strings.ToLower(c.Keyword)
		if !strings.Contains(strings.ToLower(e.Title), kw) && !strings.Contains(strings.ToLower(e.Description), kw) {
			return false
		}
	}
	if c.StartFrom != nil && e.StartTime.Before(*c.StartFrom) {
		return false
	}
	if c.StartTo != nil && e.StartTime.After(*c.StartTo) {
		return false
	}
	if c.Status != nil && e.Status != *c.Status {
		return false
	}
	return true
}

// EventSummary is a compact view of an event with its registration count.
// swagger:model EventSummary
type EventSummary struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	CategoryName      string      `json:"category_name"`
	StartTime         time.Time   `json:"start_time"`
	EndTime           time.Time   `json:"end_time"`
	Location          string      `json:"location"`
	Organizer         string      `json:"organizer"`
	Status            EventStatus `json:"status"`
	RegistrationCount int         `json:"registration_count"`
	MaxParticipants   int         `json:"max_participants"`
}

// EventRepository defines storage for events. Read methods fill CategoryName and
// CurrentRegistrations.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByIDs returns the events that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	ListByCategoryID(ctx context.Context, categoryID string) ([]*Event, error)
	// ListUpcoming returns events in status with StartTime >= now, ascending by StartTime.
	ListUpcoming(ctx context.Context, status EventStatus, now time.Time) ([]*Event, error)
	// Search applies every criterion except Tags in a single query.
	Search(ctx context.Context, c EventSearchCriteria) ([]*Event, error)
	// ListByAllTags returns events carrying every tag in tags.
	ListByAllTags(ctx context.Context, tags []string) ([]*Event, error)
	CountByCategoryID(ctx context.Context, categoryID string) (int, error)
	Update(ctx context.Context, e *Event) error
	SetVenue(ctx context.Context, id string, venueID int64, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the event lifecycle operations.
type EventService interface {
	CreateEvent(ctx context.Context, e *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	// DeleteEvent hard-deletes an event without registrations and cancels it otherwise.
	// The returned bool is true when the row was removed.
	DeleteEvent(ctx context.Context, id string) (bool, error)
	SearchEvents(ctx context.Context, c EventSearchCriteria) ([]*Event, error)
	GetUpcomingEvents(ctx context.Context) ([]*Event, error)
	ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	ListEventsByCategory(ctx context.Context, categoryID string) ([]*Event, error)
	AllocateVenueForEvent(ctx context.Context, id string) (*VenueAllocationResult, error)
	GetEventSummary(ctx context.Context, id string) (*EventSummary, error)
	// Shutdown waits for background venue allocations started by CreateEvent.
	Shutdown(ctx context.Context) error
}

package domain

import (
	"context"
	"time"
)

// EventAttendance records whether a user showed up, independent of registration status.
// swagger:model EventAttendance
type EventAttendance struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Attended   bool      `json:"attended"`
	RecordedAt time.Time `json:"recorded_at"`
}

// AttendanceRecord is an attendance row with its rating eligibility.
// swagger:model AttendanceRecord
type AttendanceRecord struct {
	EventAttendance
	CanRate bool `json:"can_rate"`
}

// CanRate reports whether an attendee may rate an event that ends at end.
func CanRate(end, now time.Time, attended bool) bool {
	return attended && now.After(end)
}

// AttendedEvent is an attended event as seen by the attendee.
// swagger:model AttendedEvent
type AttendedEvent struct {
	EventID          string    `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	EventDescription string    `json:"event_description"`
	CategoryID       string    `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Location         string    `json:"location"`
	VenueID          *int64    `json:"venue_id"`
	Organizer        string    `json:"organizer"`
	AttendedAt       time.Time `json:"attended_at"`
	HasRated         bool      `json:"has_rated"`
	UserRating       *int      `json:"user_rating"`
	CanRate          bool      `json:"can_rate"`
}

// EventAttendanceRepository defines storage for attendance rows.
type EventAttendanceRepository interface {
	// Upsert inserts or replaces the row for (EventID, UserID) and sets a.ID.
	Upsert(ctx context.Context, a *EventAttendance) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventAttendance, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventAttendance, error)
	// ListAttendedByUserID returns rows with attended = true, most recently recorded first.
	ListAttendedByUserID(ctx context.Context, userID string) ([]*EventAttendance, error)
}

// AttendanceService defines the attendance operations.
type AttendanceService interface {
	RecordAttendance(ctx context.Context, eventID, userID string, attended bool) (*AttendanceRecord, error)
	GetAttendedEventsForUser(ctx context.Context, userID string) ([]*AttendedEvent, error)
	// GetUserAttendance returns nil when the user has no attendance row for the event.
	GetUserAttendance(ctx context.Context, eventID, userID string) (*AttendanceRecord, error)
	ListEventAttendees(ctx context.Context, eventID string) ([]*AttendanceRecord, error)
}

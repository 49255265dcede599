package domain

import (
	"context"
	"time"
)

// VenueUnavailableMessage is the result message when the venue service cannot be reached.
const VenueUnavailableMessage = "Venue service is unavailable. Please try again later."

// VenueAllocationRequest asks the venue service to book a venue for an event.
type VenueAllocationRequest struct {
	EventID            string    `json:"eventId"`
	EventName          string    `json:"eventName"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	AttendeeCount      int       `json:"attendeeCount"`
	RequiredAmenities  []string  `json:"requiredAmenities,omitempty"`
	PreferredVenueType string    `json:"preferredVenueType,omitempty"`
	PreferredLocation  string    `json:"preferredLocation,omitempty"`
	Notes              string    `json:"notes,omitempty"`
}

// VenueAllocationResult is the outcome of an allocation attempt. A failed attempt is a
// result with Success false, not an error.
// swagger:model VenueAllocationResult
type VenueAllocationResult struct {
	Success   bool    `json:"success"`
	VenueID   *int64  `json:"venue_id"`
	VenueName *string `json:"venue_name"`
	Message   string  `json:"message"`
}

// Venue is a bookable location owned by the venue service.
type Venue struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"`
}

// VenueAllocator is the venue service gateway. Its methods never fail; an unreachable
// service yields a fallback value.
type VenueAllocator interface {
	Allocate(ctx context.Context, req VenueAllocationRequest) VenueAllocationResult
	GetVenue(ctx context.Context, id int64) Venue
	CheckAvailability(ctx context.Context, id int64, start, end time.Time) bool
}

package domain

import (
	"context"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether r is within [MinRating, MaxRating].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// EventRating is a user's score for an event, with optional per-aspect scores.
// swagger:model EventRating
type EventRating struct {
	ID         string         `json:"id"`
	EventID    string         `json:"event_id"`
	UserID     string         `json:"user_id"`
	Rating     int            `json:"rating"`
	Comment    *string        `json:"comment"`
	Categories map[string]int `json:"categories,omitempty"`
	RatedAt    time.Time      `json:"rated_at"`
}

// RatingSummary aggregates an event's ratings. CategoryAverages is nil when no rating
// carries sub-category scores.
// swagger:model RatingSummary
type RatingSummary struct {
	EventID          string             `json:"event_id"`
	AverageRating    float64            `json:"average_rating"`
	TotalRatings     int                `json:"total_ratings"`
	Distribution     map[int]int        `json:"rating_distribution"`
	CategoryAverages map[string]float64 `json:"category_averages"`
}

// Summarize aggregates ratings of one event.
func Summarize(eventID string, ratings []*EventRating) *RatingSummary {
	s := &RatingSummary{EventID: eventID, Distribution: map[int]int{}}
	if len(ratings) == 0 {
		return s
	}
	sum := 0
	catSum := map[string]int{}
	catCount := map[string]int{}
	for _, r := range ratings {
		sum += r.Rating
		s.Distribution[r.Rating]++
		for k, v := range r.Categories {
			catSum[k] += v
			catCount[k]++
		}
	}
	s.TotalRatings = len(ratings)
	s.AverageRating = float64(sum) / float64(len(ratings))
	if len(catCount) > 0 {
		s.CategoryAverages = make(map[string]float64, len(catCount))
		for k, n := range catCount {
			s.CategoryAverages[k] = float64(catSum[k]) / float64(n)
		}
	}
	return s
}

// EventRatingRepository defines storage for ratings.
type EventRatingRepository interface {
	// Upsert inserts or replaces the row for (EventID, UserID) and sets r.ID.
	Upsert(ctx context.Context, r *EventRating) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventRating, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventRating, error)
	// ListByUserAndEventIDs returns the user's ratings for any of eventIDs.
	ListByUserAndEventIDs(ctx context.Context, userID string, eventIDs []string) ([]*EventRating, error)
}

// RatingSummaryCache stores computed summaries under a per-event generation. Bump advances
// the generation, so a summary written under an older one is never read again.
// Get returns ErrNotFound on a miss.
type RatingSummaryCache interface {
	Generation(ctx context.Context, eventID string) (int64, error)
	Get(ctx context.Context, eventID string, gen int64) (*RatingSummary, error)
	Set(ctx context.Context, gen int64, summary *RatingSummary) error
	Bump(ctx context.Context, eventID string) error
}

// RatingService defines the rating operations.
type RatingService interface {
	RateEvent(ctx context.Context, eventID, userID string, rating int, comment *string, categories map[string]int) (*EventRating, error)
	GetSummary(ctx context.Context, eventID string) (*RatingSummary, error)
	// GetUserRating returns nil when the user has not rated the event.
	GetUserRating(ctx context.Context, eventID, userID string) (*EventRating, error)
	ListEventRatings(ctx context.Context, eventID string) ([]*EventRating, error)
}

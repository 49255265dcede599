package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

type ratingService struct {
	ratingRepo     domain.EventRatingRepository
	attendanceRepo domain.EventAttendanceRepository
	eventRepo      domain.EventRepository
	cache          domain.RatingSummaryCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewRatingService returns a RatingService. Summaries are read through cache.
func NewRatingService(
	ratingRepo domain.EventRatingRepository,
	attendanceRepo domain.EventAttendanceRepository,
	eventRepo domain.EventRepository,
	cache domain.RatingSummaryCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RatingService {
	return &ratingService{
		ratingRepo:     ratingRepo,
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *ratingService) RateEvent(ctx context.Context, eventID, userID string, rating int, comment *string, categories map[string]int) (*domain.EventRating, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	now := s.now()
	if now.Before(event.EndTime) {
		return nil, domain.ErrEventNotEnded
	}

	attendance, err := s.attendanceRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	if attendance == nil || !attendance.Attended {
		return nil, domain.ErrNotAttended
	}

	if !domain.ValidRating(rating) {
		return nil, domain.ErrInvalidRating
	}
	for name, v := range categories {
		if !domain.ValidRating(v) {
			return nil, fmt.Errorf("%w: category %q", domain.ErrInvalidRating, name)
		}
	}

	r := &domain.EventRating{
		EventID:    eventID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
		Categories: categories,
		RatedAt:    now,
	}
	if err := s.ratingRepo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("save rating: %w", err)
	}
	if err := s.cache.Bump(ctx, eventID); err != nil {
		s.logger.ErrorContext(ctx, "bump rating summary generation", "event_id", eventID, "err", err)
	}
	s.logger.InfoContext(ctx, "event rated", "event_id", eventID, "user_id", userID, "rating", rating)
	return r, nil
}

func (s *ratingService) GetSummary(ctx context.Context, eventID string) (*domain.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The generation is read before the ratings, so a rating saved in between
	// bumps it and the summary below lands under a key nobody reads.
	gen, err := s.cache.Generation(ctx, eventID)
	if err != nil {
		s.logger.WarnContext(ctx, "read rating summary generation", "event_id", eventID, "err", err)
		return s.summarize(ctx, eventID)
	}

	cached, err := s.cache.Get(ctx, eventID, gen)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.WarnContext(ctx, "read rating summary cache", "event_id", eventID, "err", err)
	}

	summary, err := s.summarize(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, gen, summary); err != nil {
		s.logger.WarnContext(ctx, "write rating summary cache", "event_id", eventID, "err", err)
	}
	return summary, nil
}

func (s *ratingService) summarize(ctx context.Context, eventID string) (*domain.RatingSummary, error) {
	ratings, err := s.ratingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return domain.Summarize(eventID, ratings), nil
}

func (s *ratingService) GetUserRating(ctx context.Context, eventID, userID string) (*domain.EventRating, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	r, err := s.ratingRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return r, nil
}

func (s *ratingService) ListEventRatings(ctx context.Context, eventID string) ([]*domain.EventRating, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ratings, err := s.ratingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	if ratings == nil {
		ratings = []*domain.EventRating{}
	}
	return ratings, nil
}

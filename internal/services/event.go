package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"campusevents/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	categoryRepo     domain.EventCategoryRepository
	registrationRepo domain.EventRegistrationRepository
	venues           domain.VenueAllocator
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time

	// background tracks venue allocations started by CreateEvent.
	background sync.WaitGroup
}

func NewEventService(
	eventRepo domain.EventRepository,
	categoryRepo domain.EventCategoryRepository,
	registrationRepo domain.EventRegistrationRepository,
	venues domain.VenueAllocator,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		categoryRepo:     categoryRepo,
		registrationRepo: registrationRepo,
		venues:           venues,
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	category, err := s.categoryRepo.GetByID(ctx, event.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("category %s: %w", event.CategoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("get category: %w", err)
	}
	if !event.Window().Valid() {
		return domain.ErrInvalidRange
	}
	if event.MaxParticipants <= 0 {
		return fmt.Errorf("%w: max participants must be positive", domain.ErrInvalidInput)
	}

	now := s.now()
	event.CategoryName = category.Name
	event.Tags = normalizeTags(event.Tags)
	event.Status = domain.EventStatusScheduled
	event.CurrentRegistrations = 0
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "title", event.Title)

	if event.VenueID == nil {
		s.background.Add(1)
		go s.allocateInBackground(context.WithoutCancel(ctx), event.ID)
	}
	return nil
}

// allocateInBackground requests a venue for a freshly created event. Failures are only logged.
func (s *eventService) allocateInBackground(ctx context.Context, eventID string) {
	defer s.background.Done()

	res, err := s.AllocateVenueForEvent(ctx, eventID)
	if err != nil {
		s.logger.WarnContext(ctx, "automatic venue allocation failed", "event_id", eventID, "err", err)
		return
	}
	if !res.Success {
		s.logger.WarnContext(ctx, "automatic venue allocation declined", "event_id", eventID, "message", res.Message)
	}
}

func (s *eventService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.background.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.getEvent(ctx, id)
}

func (s *eventService) getEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return nonNilEvents(events), total, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *upd.CategoryID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("category %s: %w", *upd.CategoryID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
		event.CategoryID = category.ID
		event.CategoryName = category.Name
	}

	// A single changed bound is checked against the stored value of the other.
	if upd.StartTime != nil {
		event.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		event.EndTime = *upd.EndTime
	}
	if !event.Window().Valid() {
		return nil, domain.ErrInvalidRange
	}

	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.VenueID != nil {
		event.VenueID = upd.VenueID
	}
	if upd.MaxParticipants != nil {
		if *upd.MaxParticipants <= 0 {
			return nil, fmt.Errorf("%w: max participants must be positive", domain.ErrInvalidInput)
		}
		event.MaxParticipants = *upd.MaxParticipants
	}
	if upd.ImageURL != nil {
		event.ImageURL = upd.ImageURL
	}
	if upd.Tags != nil {
		event.Tags = normalizeTags(upd.Tags)
	}
	if upd.Status != nil {
		event.Status = *upd.Status
	}
	event.UpdatedAt = s.now()

	rescheduled := upd.StartTime != nil || upd.EndTime != nil || upd.VenueID != nil
	if rescheduled && event.VenueID != nil && !s.venues.CheckAvailability(ctx, *event.VenueID, event.StartTime, event.EndTime) {
		s.logger.WarnContext(ctx, "venue may be unavailable for updated schedule", "event_id", id, "venue_id", *event.VenueID)
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.logger.InfoContext(ctx, "event updated", "event_id", event.ID, "status", event.Status)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return false, err
	}

	count, err := s.registrationRepo.CountByEventID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("count registrations: %w", err)
	}
	if count > 0 {
		event.Status = domain.EventStatusCancelled
		event.UpdatedAt = s.now()
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return false, fmt.Errorf("cancel event: %w", err)
		}
		s.logger.InfoContext(ctx, "event cancelled instead of deleted", "event_id", id, "registrations", count)
		return false, nil
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		return false, fmt.Errorf("delete event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", id)
	return true, nil
}

func (s *eventService) SearchEvents(ctx context.Context, c domain.EventSearchCriteria) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tags := normalizeTags(c.Tags)
	if len(tags) == 0 {
		events, err := s.eventRepo.Search(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
		return nonNilEvents(events), nil
	}

	tagged, err := s.eventRepo.ListByAllTags(ctx, tags)
	if err != nil {
		return nil, fmt.Errorf("list events by tags: %w", err)
	}
	c.Tags = tags
	out := make([]*domain.Event, 0, len(tagged))
	for _, e := range tagged {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *eventService) GetUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListUpcoming(ctx, domain.EventStatusScheduled, s.now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return nonNilEvents(events), nil
}

func (s *eventService) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events by organizer: %w", err)
	}
	return nonNilEvents(events), nil
}

func (s *eventService) ListEventsByCategory(ctx context.Context, categoryID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list events by category: %w", err)
	}
	return nonNilEvents(events), nil
}

func (s *eventService) AllocateVenueForEvent(ctx context.Context, id string) (*domain.VenueAllocationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status == domain.EventStatusCancelled {
		return nil, fmt.Errorf("%w: cannot allocate venue for cancelled event", domain.ErrInvalidState)
	}

	res := s.venues.Allocate(ctx, domain.VenueAllocationRequest{
		EventID:           event.ID,
		EventName:         event.Title,
		StartTime:         event.StartTime,
		EndTime:           event.EndTime,
		AttendeeCount:     event.MaxParticipants,
		PreferredLocation: event.Location,
		Notes:             "Event allocation for " + event.Title,
	})
	if !res.Success || res.VenueID == nil {
		s.logger.WarnContext(ctx, "venue allocation failed", "event_id", id, "message", res.Message)
		return &res, nil
	}

	if res.VenueName == nil {
		name := s.venues.GetVenue(ctx, *res.VenueID).Name
		res.VenueName = &name
	}
	if err := s.eventRepo.SetVenue(ctx, id, *res.VenueID, s.now()); err != nil {
		return nil, fmt.Errorf("set event venue: %w", err)
	}
	s.logger.InfoContext(ctx, "venue allocated", "event_id", id, "venue_id", *res.VenueID)
	return &res, nil
}

func (s *eventService) GetEventSummary(ctx context.Context, id string) (*domain.EventSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.EventSummary{
		ID:                event.ID,
		Title:             event.Title,
		CategoryName:      event.CategoryName,
		StartTime:         event.StartTime,
		EndTime:           event.EndTime,
		Location:          event.Location,
		Organizer:         event.Organizer,
		Status:            event.Status,
		RegistrationCount: event.CurrentRegistrations,
		MaxParticipants:   event.MaxParticipants,
	}, nil
}

// normalizeTags trims tags, drops empties and removes duplicates, keeping first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func nonNilEvents(events []*domain.Event) []*domain.Event {
	if events == nil {
		return []*domain.Event{}
	}
	return events
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"campusevents/internal/domain"
)

type attendanceService struct {
	attendanceRepo domain.EventAttendanceRepository
	eventRepo      domain.EventRepository
	ratingRepo     domain.EventRatingRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo domain.EventAttendanceRepository,
	eventRepo domain.EventRepository,
	ratingRepo domain.EventRatingRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		ratingRepo:     ratingRepo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *attendanceService) RecordAttendance(ctx context.Context, eventID, userID string, attended bool) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if event.Window().NotStarted(now) {
		return nil, domain.ErrTooEarly
	}

	a := &domain.EventAttendance{
		EventID:    eventID,
		UserID:     userID,
		Attended:   attended,
		RecordedAt: now,
	}
	if err := s.attendanceRepo.Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("save attendance: %w", err)
	}
	s.logger.InfoContext(ctx, "attendance recorded", "event_id", eventID, "user_id", userID, "attended", attended)
	return &domain.AttendanceRecord{
		EventAttendance: *a,
		CanRate:         domain.CanRate(event.EndTime, now, attended),
	}, nil
}

func (s *attendanceService) GetAttendedEventsForUser(ctx context.Context, userID string) ([]*domain.AttendedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rows, err := s.attendanceRepo.ListAttendedByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attended events: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.AttendedEvent{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, a := range rows {
		ids = append(ids, a.EventID)
	}
	events, err := s.eventRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get attended events: %w", err)
	}
	eventsByID := make(map[string]*domain.Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}
	ratings, err := s.ratingRepo.ListByUserAndEventIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	ratingsByEvent := make(map[string]*domain.EventRating, len(ratings))
	for _, r := range ratings {
		ratingsByEvent[r.EventID] = r
	}

	now := s.now()
	out := make([]*domain.AttendedEvent, 0, len(rows))
	for _, a := range rows {
		e, ok := eventsByID[a.EventID]
		if !ok {
			continue
		}
		item := &domain.AttendedEvent{
			EventID:          e.ID,
			EventTitle:       e.Title,
			EventDescription: e.Description,
			CategoryID:       e.CategoryID,
			CategoryName:     e.CategoryName,
			StartTime:        e.StartTime,
			EndTime:          e.EndTime,
			Location:         e.Location,
			VenueID:          e.VenueID,
			Organizer:        e.Organizer,
			AttendedAt:       a.RecordedAt,
		}
		if r, ok := ratingsByEvent[e.ID]; ok {
			rating := r.Rating
			item.HasRated = true
			item.UserRating = &rating
		}
		item.CanRate = domain.CanRate(e.EndTime, now, true) && !item.HasRated
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AttendedAt.After(out[j].AttendedAt)
	})
	return out, nil
}

func (s *attendanceService) GetUserAttendance(ctx context.Context, eventID, userID string) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.attendanceRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &domain.AttendanceRecord{
		EventAttendance: *a,
		CanRate:         domain.CanRate(event.EndTime, s.now(), a.Attended),
	}, nil
}

func (s *attendanceService) ListEventAttendees(ctx context.Context, eventID string) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rows, err := s.attendanceRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	now := s.now()
	out := make([]*domain.AttendanceRecord, 0, len(rows))
	for _, a := range rows {
		out = append(out, &domain.AttendanceRecord{
			EventAttendance: *a,
			CanRate:         domain.CanRate(event.EndTime, now, a.Attended),
		})
	}
	return out, nil
}

func (s *attendanceService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

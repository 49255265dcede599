package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

type registrationService struct {
	registrationRepo domain.EventRegistrationRepository
	eventRepo        domain.EventRepository
	emailService     domain.EmailService
	publisher        domain.NoticePublisher
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time
}

// NewRegistrationService returns a RegistrationService. emailService and publisher receive
// best-effort notices after state changes.
func NewRegistrationService(
	registrationRepo domain.EventRegistrationRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	publisher domain.NoticePublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		emailService:     emailService,
		publisher:        publisher,
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, eventID, userID, userName, userEmail string) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	existing, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	switch {
	case err == nil:
		if existing.Status != domain.RegistrationStatusCancelled {
			return nil, domain.ErrAlreadyRegistered
		}
		existing.Status = domain.RegistrationStatusRegistered
		existing.UpdatedAt = s.now()
		if err := s.registrationRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("reactivate registration: %w", err)
		}
		s.logger.InfoContext(ctx, "registration reactivated", "registration_id", existing.ID, "event_id", eventID, "user_id", userID)
		s.notify(ctx, domain.NoticeReactivated, existing, event)
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get registration: %w", err)
	}

	if !event.Status.AcceptsRegistrations() {
		return nil, fmt.Errorf("%w: cannot register for event with status %s", domain.ErrInvalidState, event.Status)
	}
	now := s.now()
	if event.StartTime.Before(now) {
		return nil, domain.ErrEventInPast
	}

	reg := domain.NewEventRegistration(eventID, userID, userName, userEmail, now)
	reg.EventTitle = event.Title
	if err := s.registrationRepo.CreateWithinCapacity(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) || errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	s.logger.InfoContext(ctx, "user registered", "registration_id", reg.ID, "event_id", eventID, "user_id", userID)
	s.notify(ctx, domain.NoticeRegistered, reg, event)
	return reg, nil
}

func (s *registrationService) Cancel(ctx context.Context, id string) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.getRegistration(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}
	event, err := s.getEvent(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if event.StartTime.Before(s.now()) {
		return nil, domain.ErrEventAlreadyStarted
	}

	reg.Status = domain.RegistrationStatusCancelled
	reg.UpdatedAt = s.now()
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("cancel registration: %w", err)
	}
	s.logger.InfoContext(ctx, "registration cancelled", "registration_id", reg.ID, "event_id", reg.EventID)
	s.notify(ctx, domain.NoticeCancelled, reg, event)
	return reg, nil
}

func (s *registrationService) CheckIn(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.getByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if reg.Status != domain.RegistrationStatusRegistered {
		return nil, fmt.Errorf("%w: cannot check in registration with status %s", domain.ErrInvalidState, reg.Status)
	}
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !domain.CheckInWindow(event.StartTime, event.EndTime).Contains(now) {
		return nil, domain.ErrOutsideCheckInWindow
	}

	reg.Status = domain.RegistrationStatusAttended
	reg.CheckInTime = &now
	reg.UpdatedAt = now
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("check in registration: %w", err)
	}
	s.logger.InfoContext(ctx, "attendee checked in", "registration_id", reg.ID, "event_id", eventID, "user_id", userID)
	s.notify(ctx, domain.NoticeCheckedIn, reg, event)
	return reg, nil
}

func (s *registrationService) SubmitFeedback(ctx context.Context, eventID, userID, feedback string, rating *int) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.getByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if rating != nil && !domain.ValidRating(*rating) {
		return nil, domain.ErrInvalidRating
	}
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if s.now().Before(event.EndTime) {
		return nil, domain.ErrEventNotEnded
	}

	reg.Feedback = &feedback
	reg.Rating = rating
	reg.UpdatedAt = s.now()
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return reg, nil
}

func (s *registrationService) OverwriteRegistration(ctx context.Context, id string, ow domain.RegistrationOverwrite) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.getRegistration(ctx, id)
	if err != nil {
		return nil, err
	}
	if ow.Status != nil {
		reg.Status = *ow.Status
	}
	if ow.CheckInTime != nil {
		reg.CheckInTime = ow.CheckInTime
	}
	if ow.Feedback != nil {
		reg.Feedback = ow.Feedback
	}
	if ow.Rating != nil {
		reg.Rating = ow.Rating
	}
	reg.UpdatedAt = s.now()
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("overwrite registration: %w", err)
	}
	s.logger.InfoContext(ctx, "registration overwritten", "registration_id", reg.ID, "status", reg.Status)
	return reg, nil
}

func (s *registrationService) GetRegistration(ctx context.Context, id string) (*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.getRegistration(ctx, id)
}

func (s *registrationService) ListRegistrations(ctx context.Context, params domain.PaginationParams) ([]*domain.EventRegistration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, total, err := s.registrationRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return nonNilRegistrations(regs), total, nil
}

func (s *registrationService) ListEventRegistrations(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	return nonNilRegistrations(regs), nil
}

func (s *registrationService) ListUserRegistrations(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	return nonNilRegistrations(regs), nil
}

func (s *registrationService) ListUpcomingUserRegistrations(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListUpcomingByUserID(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming registrations: %w", err)
	}
	return nonNilRegistrations(regs), nil
}

func (s *registrationService) ListPastUserRegistrations(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListPastByUserID(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list past registrations: %w", err)
	}
	return nonNilRegistrations(regs), nil
}

func (s *registrationService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *registrationService) getRegistration(ctx context.Context, id string) (*domain.EventRegistration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("registration %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) getByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("registration for event %s and user %s: %w", eventID, userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// notify publishes a registration notice and mails the attendee. Failures are logged only.
func (s *registrationService) notify(ctx context.Context, kind string, reg *domain.EventRegistration, event *domain.Event) {
	notice := domain.RegistrationNotice{
		Kind:           kind,
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
		Status:         reg.Status,
		OccurredAt:     reg.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, notice); err != nil {
		s.logger.WarnContext(ctx, "publish registration notice", "kind", kind, "registration_id", reg.ID, "err", err)
	}

	if reg.UserEmail == "" {
		return
	}
	data := &domain.RegistrationEmailData{
		Email:      reg.UserEmail,
		UserName:   reg.UserName,
		EventTitle: event.Title,
		StartTime:  event.StartTime,
		Location:   event.Location,
	}
	var err error
	switch kind {
	case domain.NoticeRegistered, domain.NoticeReactivated:
		err = s.emailService.SendRegistrationConfirmed(ctx, data)
	case domain.NoticeCancelled:
		err = s.emailService.SendRegistrationCancelled(ctx, data)
	default:
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "send registration email", "kind", kind, "registration_id", reg.ID, "err", err)
	}
}

func nonNilRegistrations(regs []*domain.EventRegistration) []*domain.EventRegistration {
	if regs == nil {
		return []*domain.EventRegistration{}
	}
	return regs
}

package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the response envelope and, when out is non-nil, its data field.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, out any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if out != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return envelope
}

type fakeCategoryService struct {
	category *domain.EventCategory
	list     []*domain.EventCategory
	err      error

	lastID          string
	lastName        string
	lastDescription *string
	lastColor       *string
}

func (f *fakeCategoryService) CreateCategory(ctx context.Context, name string, description, color *string) (*domain.EventCategory, error) {
	f.lastName, f.lastDescription, f.lastColor = name, description, color
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventCategory{ID: "cat-1", Name: name, Description: description, Color: color}, nil
}

func (f *fakeCategoryService) UpdateCategory(ctx context.Context, id, name string, description, color *string) (*domain.EventCategory, error) {
	f.lastID, f.lastName, f.lastDescription, f.lastColor = id, name, description, color
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventCategory{ID: id, Name: name, Description: description, Color: color}, nil
}

func (f *fakeCategoryService) DeleteCategory(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeCategoryService) ListCategories(ctx context.Context) ([]*domain.EventCategory, error) {
	return f.list, f.err
}

func (f *fakeCategoryService) GetCategory(ctx context.Context, id string) (*domain.EventCategory, error) {
	f.lastID = id
	return f.category, f.err
}

type fakeEventService struct {
	event    *domain.Event
	events   []*domain.Event
	total    int
	deleted  bool
	summary  *domain.EventSummary
	venueRes *domain.VenueAllocationResult
	err      error

	lastID       string
	lastCreated  *domain.Event
	lastUpdate   domain.EventUpdate
	lastParams   domain.PaginationParams
	lastCriteria domain.EventSearchCriteria
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	f.lastCreated = e
	if f.err != nil {
		return f.err
	}
	e.ID = "ev-created"
	e.Status = domain.EventStatusScheduled
	return nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastParams = params
	return f.events, f.total, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastID, f.lastUpdate = id, upd
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) (bool, error) {
	f.lastID = id
	return f.deleted, f.err
}

func (f *fakeEventService) SearchEvents(ctx context.Context, c domain.EventSearchCriteria) ([]*domain.Event, error) {
	f.lastCriteria = c
	return f.events, f.err
}

func (f *fakeEventService) GetUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	f.lastID = organizerID
	return f.events, f.err
}

func (f *fakeEventService) ListEventsByCategory(ctx context.Context, categoryID string) ([]*domain.Event, error) {
	f.lastID = categoryID
	return f.events, f.err
}

func (f *fakeEventService) AllocateVenueForEvent(ctx context.Context, id string) (*domain.VenueAllocationResult, error) {
	f.lastID = id
	return f.venueRes, f.err
}

func (f *fakeEventService) GetEventSummary(ctx context.Context, id string) (*domain.EventSummary, error) {
	f.lastID = id
	return f.summary, f.err
}

func (f *fakeEventService) Shutdown(ctx context.Context) error { return nil }

type fakeRegistrationService struct {
	reg   *domain.EventRegistration
	regs  []*domain.EventRegistration
	total int
	err   error

	lastID        string
	lastEventID   string
	lastUserID    string
	lastUserName  string
	lastUserEmail string
	lastFeedback  string
	lastRating    *int
	lastOverwrite domain.RegistrationOverwrite
	lastParams    domain.PaginationParams
}

func (f *fakeRegistrationService) Register(ctx context.Context, eventID, userID, userName, userEmail string) (*domain.EventRegistration, error) {
	f.lastEventID, f.lastUserID, f.lastUserName, f.lastUserEmail = eventID, userID, userName, userEmail
	return f.reg, f.err
}

func (f *fakeRegistrationService) Cancel(ctx context.Context, id string) (*domain.EventRegistration, error) {
	f.lastID = id
	return f.reg, f.err
}

func (f *fakeRegistrationService) CheckIn(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	return f.reg, f.err
}

func (f *fakeRegistrationService) SubmitFeedback(ctx context.Context, eventID, userID, feedback string, rating *int) (*domain.EventRegistration, error) {
	f.lastEventID, f.lastUserID, f.lastFeedback, f.lastRating = eventID, userID, feedback, rating
	return f.reg, f.err
}

func (f *fakeRegistrationService) OverwriteRegistration(ctx context.Context, id string, ow domain.RegistrationOverwrite) (*domain.EventRegistration, error) {
	f.lastID, f.lastOverwrite = id, ow
	return f.reg, f.err
}

func (f *fakeRegistrationService) GetRegistration(ctx context.Context, id string) (*domain.EventRegistration, error) {
	f.lastID = id
	return f.reg, f.err
}

func (f *fakeRegistrationService) ListRegistrations(ctx context.Context, params domain.PaginationParams) ([]*domain.EventRegistration, int, error) {
	f.lastParams = params
	return f.regs, f.total, f.err
}

func (f *fakeRegistrationService) ListEventRegistrations(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	f.lastEventID = eventID
	return f.regs, f.err
}

func (f *fakeRegistrationService) ListUserRegistrations(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	f.lastUserID = userID
	return f.regs, f.err
}

func (f *fakeRegistrationService) ListUpcomingUserRegistrations(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	f.lastUserID = userID
	return f.regs, f.err
}

func (f *fakeRegistrationService) ListPastUserRegistrations(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	f.lastUserID = userID
	return f.regs, f.err
}

type fakeAttendanceService struct {
	record   *domain.AttendanceRecord
	records  []*domain.AttendanceRecord
	attended []*domain.AttendedEvent
	err      error

	lastEventID  string
	lastUserID   string
	lastAttended bool
}

func (f *fakeAttendanceService) RecordAttendance(ctx context.Context, eventID, userID string, attended bool) (*domain.AttendanceRecord, error) {
	f.lastEventID, f.lastUserID, f.lastAttended = eventID, userID, attended
	return f.record, f.err
}

func (f *fakeAttendanceService) GetAttendedEventsForUser(ctx context.Context, userID string) ([]*domain.AttendedEvent, error) {
	f.lastUserID = userID
	return f.attended, f.err
}

func (f *fakeAttendanceService) GetUserAttendance(ctx context.Context, eventID, userID string) (*domain.AttendanceRecord, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	return f.record, f.err
}

func (f *fakeAttendanceService) ListEventAttendees(ctx context.Context, eventID string) ([]*domain.AttendanceRecord, error) {
	f.lastEventID = eventID
	return f.records, f.err
}

type fakeRatingService struct {
	rating  *domain.EventRating
	ratings []*domain.EventRating
	summary *domain.RatingSummary
	err     error

	lastEventID    string
	lastUserID     string
	lastRating     int
	lastComment    *string
	lastCategories map[string]int
}

func (f *fakeRatingService) RateEvent(ctx context.Context, eventID, userID string, rating int, comment *string, categories map[string]int) (*domain.EventRating, error) {
	f.lastEventID, f.lastUserID, f.lastRating, f.lastComment, f.lastCategories = eventID, userID, rating, comment, categories
	return f.rating, f.err
}

func (f *fakeRatingService) GetSummary(ctx context.Context, eventID string) (*domain.RatingSummary, error) {
	f.lastEventID = eventID
	return f.summary, f.err
}

func (f *fakeRatingService) GetUserRating(ctx context.Context, eventID, userID string) (*domain.EventRating, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	return f.rating, f.err
}

func (f *fakeRatingService) ListEventRatings(ctx context.Context, eventID string) ([]*domain.EventRating, error) {
	f.lastEventID = eventID
	return f.ratings, f.err
}

package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events. organizer_id defaults to the caller.
type CreateEventRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=5000"`
	CategoryID      string    `json:"category_id" validate:"required"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" validate:"required"`
	Location        string    `json:"location" validate:"required"`
	VenueID         *int64    `json:"venue_id" validate:"omitempty,gt=0"`
	MaxParticipants int       `json:"max_participants" validate:"required,gt=0"`
	Organizer       string    `json:"organizer" validate:"required"`
	OrganizerID     string    `json:"organizer_id"`
	ImageURL        *string   `json:"image_url" validate:"omitempty,url"`
	Tags            []string  `json:"tags"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	if !c.StartTime.IsZero() && !c.EndTime.IsZero() && c.EndTime.Before(c.StartTime) {
		return []string{"end_time must not be before start_time"}
	}
	return nil
}

// UpdateEventRequest is the request body for PUT /api/events/{id}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string    `json:"description" validate:"omitempty,max=5000"`
	CategoryID      *string    `json:"category_id" validate:"omitempty,min=1"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	Location        *string    `json:"location"`
	VenueID         *int64     `json:"venue_id" validate:"omitempty,gt=0"`
	MaxParticipants *int       `json:"max_participants" validate:"omitempty,gt=0"`
	ImageURL        *string    `json:"image_url" validate:"omitempty,url"`
	Tags            []string   `json:"tags"`
	Status          *string    `json:"status"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	if u.Status != nil {
		if _, ok := domain.ParseEventStatus(*u.Status); !ok {
			return []string{"status must be one of: DRAFT SCHEDULED RESCHEDULED CANCELLED COMPLETED ONGOING"}
		}
	}
	return nil
}

func (u UpdateEventRequest) toDomain() domain.EventUpdate {
	upd := domain.EventUpdate{
		Title:           u.Title,
		Description:     u.Description,
		CategoryID:      u.CategoryID,
		StartTime:       u.StartTime,
		EndTime:         u.EndTime,
		Location:        u.Location,
		VenueID:         u.VenueID,
		MaxParticipants: u.MaxParticipants,
		ImageURL:        u.ImageURL,
		Tags:            u.Tags,
	}
	if u.Status != nil {
		st, _ := domain.ParseEventStatus(*u.Status)
		upd.Status = &st
	}
	return upd
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for unpaginated event lists.
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PaginatedEventsResponse is the data payload of GET /api/events.
type PaginatedEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// PaginatedEventsSuccessResponse is the success response envelope for GET /api/events.
type PaginatedEventsSuccessResponse struct {
	Data  PaginatedEventsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// DeleteEventResponse tells whether the event row was removed or only cancelled.
type DeleteEventResponse struct {
	Deleted bool `json:"deleted"`
}

// EventSummarySuccessResponse is the success response envelope for GET /api/events/{id}/summary.
type EventSummarySuccessResponse struct {
	Data  *domain.EventSummary `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// VenueAllocationSuccessResponse is the success response envelope for POST /api/events/{id}/allocate-venue.
type VenueAllocationSuccessResponse struct {
	Data  *domain.VenueAllocationResult `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Paginated list ordered by start time.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.PaginatedEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PaginatedEventsResponse{
		Items:      events,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// CreateEvent godoc
// @Summary Create an event
// @Description The event starts SCHEDULED. Without venue_id a venue is requested in the background.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (category)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	organizerID := req.OrganizerID
	if organizerID == "" {
		organizerID, _ = middleware.UserIDFromContext(r.Context())
	}
	event := &domain.Event{
		Title:           req.Title,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		VenueID:         req.VenueID,
		MaxParticipants: req.MaxParticipants,
		Organizer:       req.Organizer,
		OrganizerID:     organizerID,
		ImageURL:        req.ImageURL,
		Tags:            req.Tags,
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEventByID(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update. The time range is checked against stored values when only one bound changes.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("id"), req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Events without registrations are removed; others are set to CANCELLED.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.DeleteEventResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.Service.DeleteEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Deleted: deleted})
}

// SearchEvents godoc
// @Summary Search events
// @Description All filters are optional and combined with AND. tags may repeat; an event must carry every tag.
// @Tags events
// @Produce json
// @Param categoryId query string false "Category ID"
// @Param keyword query string false "Case-insensitive match on title or description"
// @Param startFrom query string false "RFC3339 lower bound on start time"
// @Param startTo query string false "RFC3339 upper bound on start time"
// @Param tags query []string false "Required tags" collectionFormat(multi)
// @Param status query string false "Event status"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/search [get]
func (c *EventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	criteria, msg := parseSearchCriteria(r)
	if msg != "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, msg)
		return
	}
	events, err := c.Service.SearchEvents(r.Context(), criteria)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

func parseSearchCriteria(r *http.Request) (domain.EventSearchCriteria, string) {
	q := r.URL.Query()
	criteria := domain.EventSearchCriteria{
		CategoryID: q.Get("categoryId"),
		Keyword:    q.Get("keyword"),
	}
	for _, tag := range q["tags"] {
		if tag != "" {
			criteria.Tags = append(criteria.Tags, tag)
		}
	}
	if s := q.Get("startFrom"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return criteria, "startFrom must be an RFC3339 timestamp"
		}
		criteria.StartFrom = &t
	}
	if s := q.Get("startTo"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return criteria, "startTo must be an RFC3339 timestamp"
		}
		criteria.StartTo = &t
	}
	if s := q.Get("status"); s != "" {
		st, ok := domain.ParseEventStatus(s)
		if !ok {
			return criteria, "status is invalid"
		}
		criteria.Status = &st
	}
	return criteria, ""
}

// UpcomingEvents godoc
// @Summary List upcoming events
// @Description Scheduled events that have not started, soonest first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/upcoming [get]
func (c *EventController) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.GetUpcomingEvents(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// EventSummary godoc
// @Summary Get an event summary
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.EventSummarySuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/summary [get]
func (c *EventController) EventSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Service.GetEventSummary(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// AllocateVenue godoc
// @Summary Request a venue for an event
// @Description Returns the venue service outcome. An unreachable venue service yields success=false, not an error.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.VenueAllocationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (cancelled event)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/allocate-venue [post]
func (c *EventController) AllocateVenue(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.AllocateVenueForEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// OrganizerEvents godoc
// @Summary List events of an organizer
// @Tags events
// @Produce json
// @Param organizerID path string true "Organizer ID"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/{organizerID}/events [get]
func (c *EventController) OrganizerEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEventsByOrganizer(r.Context(), r.PathValue("organizerID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

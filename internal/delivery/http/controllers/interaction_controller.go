package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// RecordAttendanceRequest is the request body for POST /api/events/{eventID}/attendance.
type RecordAttendanceRequest struct {
	Attended *bool `json:"attended" validate:"required"`
}

// RateEventRequest is the request body for POST /api/events/{eventID}/rating.
type RateEventRequest struct {
	Rating     *int           `json:"rating" validate:"required"`
	Comment    *string        `json:"comment" validate:"omitempty,max=2000"`
	Categories map[string]int `json:"categories"`
}

// AttendanceSuccessResponse is the success response envelope for a single attendance record.
// Data is null when the caller has no record.
type AttendanceSuccessResponse struct {
	Data  *domain.AttendanceRecord `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// RatingSuccessResponse is the success response envelope for a single rating.
// Data is null when the caller has not rated the event.
type RatingSuccessResponse struct {
	Data  *domain.EventRating `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// RatingSummarySuccessResponse is the success response envelope for GET /api/events/{eventID}/ratings/summary.
type RatingSummarySuccessResponse struct {
	Data  *domain.RatingSummary `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// AttendedEventsSuccessResponse is the success response envelope for GET /api/users/me/attended-events.
type AttendedEventsSuccessResponse struct {
	Data  []*domain.AttendedEvent `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// InteractionController serves attendance and rating endpoints. Routes under /me require the
// X-Auth-User header.
type InteractionController struct {
	Logger     *slog.Logger
	Attendance domain.AttendanceService
	Ratings    domain.RatingService
}

func NewInteractionController(logger *slog.Logger, attendance domain.AttendanceService, ratings domain.RatingService) *InteractionController {
	return &InteractionController{
		Logger:     logger,
		Attendance: attendance,
		Ratings:    ratings,
	}
}

// RecordAttendance godoc
// @Summary Record the caller's attendance
// @Description Allowed once the event has started. A second call replaces the first.
// @Tags interactions
// @Accept json
// @Produce json
// @Param X-Auth-User header string true "Caller user ID"
// @Param eventID path string true "Event ID"
// @Param attendance body RecordAttendanceRequest true "Attendance"
// @Success 200 {object} controllers.AttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendance [post]
func (c *InteractionController) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var req RecordAttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	rec, err := c.Attendance.RecordAttendance(r.Context(), r.PathValue("eventID"), userID, *req.Attended)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rec)
}

// MyAttendance godoc
// @Summary Get the caller's attendance for an event
// @Tags interactions
// @Produce json
// @Param X-Auth-User header string true "Caller user ID"
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.AttendanceSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendance/me [get]
func (c *InteractionController) MyAttendance(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	rec, err := c.Attendance.GetUserAttendance(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rec)
}

// EventAttendees godoc
// @Summary List attendance records of an event
// @Tags interactions
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains attendance records"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *InteractionController) EventAttendees(w http.ResponseWriter, r *http.Request) {
	list, err := c.Attendance.ListEventAttendees(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// RateEvent godoc
// @Summary Rate an event
// @Description Only attendees may rate, and only after the event has ended. A second call replaces the first.
// @Tags interactions
// @Accept json
// @Produce json
// @Param X-Auth-User header string true "Caller user ID"
// @Param eventID path string true "Event ID"
// @Param rating body RateEventRequest true "Rating"
// @Success 201 {object} controllers.RatingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rating [post]
func (c *InteractionController) RateEvent(w http.ResponseWriter, r *http.Request) {
	var req RateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	rating, err := c.Ratings.RateEvent(r.Context(), r.PathValue("eventID"), userID, *req.Rating, req.Comment, req.Categories)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rating)
}

// MyRating godoc
// @Summary Get the caller's rating for an event
// @Tags interactions
// @Produce json
// @Param X-Auth-User header string true "Caller user ID"
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.RatingSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rating/me [get]
func (c *InteractionController) MyRating(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	rating, err := c.Ratings.GetUserRating(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rating)
}

// EventRatings godoc
// @Summary List ratings of an event
// @Tags interactions
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains ratings, newest first"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ratings [get]
func (c *InteractionController) EventRatings(w http.ResponseWriter, r *http.Request) {
	list, err := c.Ratings.ListEventRatings(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// RatingSummary godoc
// @Summary Get the rating summary of an event
// @Tags interactions
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.RatingSummarySuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/ratings/summary [get]
func (c *InteractionController) RatingSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Ratings.GetSummary(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// MyAttendedEvents godoc
// @Summary List events the caller attended
// @Description Most recently recorded first, with rating status.
// @Tags interactions
// @Produce json
// @Param X-Auth-User header string true "Caller user ID"
// @Success 200 {object} controllers.AttendedEventsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/attended-events [get]
func (c *InteractionController) MyAttendedEvents(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	list, err := c.Attendance.GetAttendedEventsForUser(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// RegisterRequest is the request body for POST /api/event-registrations/register.
// user_id defaults to the caller.
type RegisterRequest struct {
	EventID   string `json:"event_id" validate:"required"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name" validate:"required,max=200"`
	UserEmail string `json:"user_email" validate:"required,email"`
}

// OverwriteRegistrationRequest is the request body for PUT /api/event-registrations/{id}.
// Fields are written as given with no transition checks.
type OverwriteRegistrationRequest struct {
	Status      *string    `json:"status"`
	CheckInTime *time.Time `json:"check_in_time"`
	Feedback    *string    `json:"feedback" validate:"omitempty,max=2000"`
	Rating      *int       `json:"rating"`
}

// Validate implements Validator.
func (o OverwriteRegistrationRequest) Validate() []string {
	if o.Status != nil {
		if _, ok := domain.ParseRegistrationStatus(*o.Status); !ok {
			return []string{"status must be one of: REGISTERED ATTENDED CANCELLED"}
		}
	}
	return nil
}

func (o OverwriteRegistrationRequest) toDomain() domain.RegistrationOverwrite {
	ow := domain.RegistrationOverwrite{
		CheckInTime: o.CheckInTime,
		Feedback:    o.Feedback,
		Rating:      o.Rating,
	}
	if o.Status != nil {
		st, _ := domain.ParseRegistrationStatus(*o.Status)
		ow.Status = &st
	}
	return ow
}

// RegistrationSuccessResponse is the success response envelope for a single registration.
type RegistrationSuccessResponse struct {
	Data  *domain.EventRegistration `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListRegistrationsSuccessResponse is the success response envelope for unpaginated registration lists.
type ListRegistrationsSuccessResponse struct {
	Data  []*domain.EventRegistration `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// PaginatedRegistrationsResponse is the data payload of GET /api/event-registrations.
type PaginatedRegistrationsResponse struct {
	Items      []*domain.EventRegistration `json:"items"`
	Pagination helpers.PaginationMeta      `json:"pagination"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// ListRegistrations godoc
// @Summary List registrations
// @Description Paginated, most recent first.
// @Tags registrations
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	regs, total, err := c.Service.ListRegistrations(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PaginatedRegistrationsResponse{
		Items:      regs,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// GetRegistration godoc
// @Summary Get a registration
// @Tags registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/{id} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	reg, err := c.Service.GetRegistration(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// OverwriteRegistration godoc
// @Summary Overwrite registration fields
// @Description Administrative path. Status, check-in time, feedback and rating are written without transition checks.
// @Tags registrations
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param registration body OverwriteRegistrationRequest true "Fields to write"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/{id} [put]
func (c *RegistrationController) OverwriteRegistration(w http.ResponseWriter, r *http.Request) {
	var req OverwriteRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.OverwriteRegistration(r.Context(), r.PathValue("id"), req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// CancelRegistration godoc
// @Summary Cancel a registration
// @Description Only possible before the event starts.
// @Tags registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/{id}/cancel [put]
func (c *RegistrationController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	reg, err := c.Service.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// Register godoc
// @Summary Register for an event
// @Description Re-registering after a cancellation reactivates the existing registration.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registration data"
// @Success 201 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID := req.UserID
	if userID == "" {
		var ok bool
		if userID, ok = middleware.UserIDFromContext(r.Context()); !ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "user_id is required")
			return
		}
	}
	reg, err := c.Service.Register(r.Context(), req.EventID, userID, req.UserName, req.UserEmail)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// EventRegistrations godoc
// @Summary List registrations of an event
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/event/{eventID} [get]
func (c *RegistrationController) EventRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := c.Service.ListEventRegistrations(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// UserRegistrations godoc
// @Summary List registrations of a user
// @Tags registrations
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/user/{userID} [get]
func (c *RegistrationController) UserRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := c.Service.ListUserRegistrations(r.Context(), r.PathValue("userID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// UpcomingUserRegistrations godoc
// @Summary List a user's upcoming registrations
// @Tags registrations
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/user/{userID}/upcoming [get]
func (c *RegistrationController) UpcomingUserRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := c.Service.ListUpcomingUserRegistrations(r.Context(), r.PathValue("userID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// PastUserRegistrations godoc
// @Summary List a user's past registrations
// @Tags registrations
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/user/{userID}/past [get]
func (c *RegistrationController) PastUserRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := c.Service.ListPastUserRegistrations(r.Context(), r.PathValue("userID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// CheckIn godoc
// @Summary Check a user in
// @Description Allowed from one hour before the event starts until it ends.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/event/{eventID}/user/{userID}/check-in [post]
func (c *RegistrationController) CheckIn(w http.ResponseWriter, r *http.Request) {
	reg, err := c.Service.CheckIn(r.Context(), r.PathValue("eventID"), r.PathValue("userID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// SubmitFeedback godoc
// @Summary Submit feedback for a registration
// @Description Allowed once the event has ended.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID"
// @Param feedback query string true "Feedback text"
// @Param rating query int false "Rating 1-5"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/event/{eventID}/user/{userID}/feedback [post]
func (c *RegistrationController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	feedback := q.Get("feedback")
	if feedback == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "feedback is required")
		return
	}
	var rating *int
	if s := q.Get("rating"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "rating must be an integer")
			return
		}
		rating = &v
	}
	reg, err := c.Service.SubmitFeedback(r.Context(), r.PathValue("eventID"), r.PathValue("userID"), feedback, rating)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// CategoryRequest is the request body for POST and PUT /api/event-categories.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

// Validate implements Validator.
func (c CategoryRequest) Validate() []string {
	if c.Name != "" && strings.TrimSpace(c.Name) == "" {
		return []string{"name must not be blank"}
	}
	return nil
}

// CategorySuccessResponse is the success response envelope for a single category.
type CategorySuccessResponse struct {
	Data  *domain.EventCategory `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListCategoriesSuccessResponse is the success response envelope for GET /api/event-categories.
type ListCategoriesSuccessResponse struct {
	Data  []*domain.EventCategory `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type CategoryController struct {
	Logger  *slog.Logger
	Service domain.EventCategoryService
	Events  domain.EventService
}

func NewCategoryController(logger *slog.Logger, svc domain.EventCategoryService, events domain.EventService) *CategoryController {
	return &CategoryController{
		Logger:  logger,
		Service: svc,
		Events:  events,
	}
}

// ListCategories godoc
// @Summary List event categories
// @Description Returns every category with its live event count, ordered by name.
// @Tags categories
// @Produce json
// @Success 200 {object} controllers.ListCategoriesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-categories [get]
func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListCategories(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// CreateCategory godoc
// @Summary Create an event category
// @Description Names are unique regardless of case.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category data"
// @Success 201 {object} controllers.CategorySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-categories [post]
func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Service.CreateCategory(r.Context(), strings.TrimSpace(req.Name), req.Description, req.Color)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cat)
}

// GetCategory godoc
// @Summary Get an event category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} controllers.CategorySuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-categories/{id} [get]
func (c *CategoryController) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := c.Service.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}

// UpdateCategory godoc
// @Summary Update an event category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body CategoryRequest true "Category data"
// @Success 200 {object} controllers.CategorySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-categories/{id} [put]
func (c *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Service.UpdateCategory(r.Context(), r.PathValue("id"), strings.TrimSpace(req.Name), req.Description, req.Color)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}

// DeleteCategory godoc
// @Summary Delete an event category
// @Description Fails with bad_request while any event references the category.
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-categories/{id} [delete]
func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategoryEvents godoc
// @Summary List events in a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-categories/{id}/events [get]
func (c *CategoryController) ListCategoryEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.ListEventsByCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/domain"
)

// Field length limits mirroring the events table schema.
const (
	maxTitleLen    = 150
	maxLocationLen = 150
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
}

// Validate implements Validator. Returns error messages for required and length rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if len(c.Title) > maxTitleLen {
		errs = append(errs, "title must be at most 150 characters")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if len(c.Location) > maxLocationLen {
		errs = append(errs, "location must be at most 150 characters")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
}

// Validate implements Validator. Set fields must still satisfy the create rules.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" {
			errs = append(errs, "title must not be empty")
		}
		if len(*u.Title) > maxTitleLen {
			errs = append(errs, "title must be at most 150 characters")
		}
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		errs = append(errs, "description must not be empty")
	}
	if u.Date != nil && u.Date.IsZero() {
		errs = append(errs, "date must not be zero")
	}
	if u.Location != nil {
		if strings.TrimSpace(*u.Location) == "" {
			errs = append(errs, "location must not be empty")
		}
		if len(*u.Location) > maxLocationLen {
			errs = append(errs, "location must be at most 150 characters")
		}
	}
	return errs
}

// ListEventsResponse is the response body for GET /events.
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// UnapprovedEventsResponse is the response body for GET /events/unapproved.
type UnapprovedEventsResponse struct {
	UnapprovedEvents []*domain.Event `json:"unapproved_events"`
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
// @Description Lists events visible to the requester. Anonymous and non-staff callers see approved events only; staff see all. Supports filtering and ordering via query parameters.
// @Tags events
// @Produce json
// @Param search query string false "Case-insensitive substring match on title or description"
// @Param location query string false "Case-insensitive substring match on location"
// @Param start_date query string false "Keep events on or after this date (RFC3339 or YYYY-MM-DD)"
// @Param end_date query string false "Keep events on or before this date (RFC3339 or YYYY-MM-DD)"
// @Param is_approved query bool false "Approval state filter; honored for staff only"
// @Param ordering query string false "One of date, -date, title, -title"
// @Success 200 {object} helpers.APIResponse "data contains events"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := helpers.ParseEventFilter(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidationError, err.Error())
		return
	}
	requester := middleware.RequesterFromContext(r.Context())
	events, err := c.Service.ListEvents(r.Context(), requester, filter)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Events: events})
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a new event owned by the authenticated user. Events start unapproved and are invisible to the public until a staff member approves them.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	requester := middleware.RequesterFromContext(r.Context())
	if requester == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), requester, domain.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event. Unapproved events are only visible to staff and to their organizer; other callers get 403.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	requester := middleware.RequesterFromContext(r.Context())
	event, err := c.Service.GetEvent(r.Context(), requester, eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event. Only the organizer or staff may update; omitted fields are unchanged. Organizer, approval state, and timestamps cannot be changed here.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	requester := middleware.RequesterFromContext(r.Context())
	event, err := c.Service.UpdateEvent(r.Context(), requester, eventID, domain.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event. Only the organizer or staff may delete. The organizer is notified by email.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	requester := middleware.RequesterFromContext(r.Context())
	if err := c.Service.DeleteEvent(r.Context(), requester, eventID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApproveEvent godoc
// @Summary Approve an event
// @Description Marks an event as approved, making it publicly visible. Staff only. The organizer is notified by email.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the approved event"
// @Failure 400 {object} helpers.APIResponse "error.code: already_approved"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/approve/{eventID} [post]
func (c *EventController) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	requester := middleware.RequesterFromContext(r.Context())
	event, err := c.Service.ApproveEvent(r.Context(), requester, eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListUnapproved godoc
// @Summary List unapproved events
// @Description Lists all events awaiting approval. Staff only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains unapproved_events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/unapproved [get]
func (c *EventController) ListUnapproved(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterFromContext(r.Context())
	events, err := c.Service.ListUnapproved(r.Context(), requester)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UnapprovedEventsResponse{UnapprovedEvents: events})
}

// writeServiceError maps domain errors to HTTP responses. Unknown errors are
// logged and returned as 500 without the internal message.
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidationError, err.Error())
	case errors.Is(err, domain.ErrAlreadyApproved):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeAlreadyApproved, "event is already approved")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}

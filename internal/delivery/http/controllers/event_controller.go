package controllers

import (
	"log/slog"
	"net/http"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

type EventController struct {
	Logger              *slog.Logger
	EventService        domain.EventService
	RegistrationService domain.RegistrationService
}

func NewEventController(logger *slog.Logger, eventSvc domain.EventService, regSvc domain.RegistrationService) *EventController {
	return &EventController{
		Logger:              logger,
		EventService:        eventSvc,
		RegistrationService: regSvc,
	}
}

// EventListResponse is the data payload for GET /events.
type EventListResponse struct {
	Events     []*domain.Event  `json:"events"`
	Pagination h.PaginationMeta `json:"pagination"`
}

// ListEvents godoc
// @Summary List events
// @Description Returns events sorted by date ascending. Supports page and page_size query parameters.
// @Tags events
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePagination(r)
	events, total, err := c.EventService.ListEvents(r.Context(), params)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events:     events,
		Pagination: h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	event, err := c.EventService.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// RegisterRequest is the request body for POST /events/{eventID}/register.
type RegisterRequest struct {
	TeamName    string   `json:"team_name"`
	TeamMembers []string `json:"team_members"`
}

// Validate implements helpers.Validator.
func (req RegisterRequest) Validate() []string {
	if req.TeamName == "" && len(req.TeamMembers) > 0 {
		return []string{"team_name is required when team_members are given"}
	}
	return nil
}

// RegisterResult is the data payload for a successful registration.
type RegisterResult struct {
	Registration *domain.Registration `json:"registration"`
	Team         *domain.Team         `json:"team,omitempty"`
}

// Register godoc
// @Summary Register the current user for an event
// @Description Registers the authenticated user. When team_name is given a team is created with the user as leader and a pending invite per member email. Team creation and registration commit atomically.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterRequest false "Optional team data"
// @Success 201 {object} helpers.APIResponse "data contains registration and team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or deadline_expired"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req RegisterRequest
	if r.ContentLength > 0 {
		if !h.DecodeAndValidate(w, r, &req) {
			return
		}
	}

	reg, team, err := c.RegistrationService.RegisterForEvent(r.Context(), eventID, userID, req.TeamName, req.TeamMembers)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, RegisterResult{
		Registration: reg,
		Team:         team,
	})
}

// ListEventRegistrations godoc
// @Summary List registrations for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of registrations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *EventController) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	regs, err := c.RegistrationService.ListEventRegistrations(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, regs)
}

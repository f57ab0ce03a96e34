package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

type TeamController struct {
	Logger  *slog.Logger
	Service domain.TeamService
}

func NewTeamController(logger *slog.Logger, svc domain.TeamService) *TeamController {
	return &TeamController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateTeamRequest is the request body for POST /teams.
type CreateTeamRequest struct {
	Name    string   `json:"name"`
	Event   string   `json:"event"`
	Members []string `json:"members"`
}

// Validate implements helpers.Validator.
func (req CreateTeamRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !uuidRegex.MatchString(req.Event) {
		errs = append(errs, "event must be a valid event ID")
	}
	for _, email := range req.Members {
		if !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(email))) {
			errs = append(errs, "invalid member email: "+email)
		}
	}
	return errs
}

// CreateTeam godoc
// @Summary Create a team for an event
// @Description Creates a team with the authenticated user as leader and a pending invite per member email.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTeamRequest true "Team data"
// @Success 201 {object} helpers.APIResponse "data contains the created team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams [post]
func (c *TeamController) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateTeamRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	team, err := c.Service.CreateTeam(r.Context(), req.Event, userID, req.Name, req.Members)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, team)
}

// GetTeam godoc
// @Summary Get a team by ID
// @Description Returns the team with members and invites resolved.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{teamID} [get]
func (c *TeamController) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("teamID")
	if !uuidRegex.MatchString(teamID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid teamID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	team, err := c.Service.GetTeam(r.Context(), teamID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, team)
}

// SendInviteRequest is the request body for POST /teams/{teamID}/invite.
type SendInviteRequest struct {
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (req SendInviteRequest) Validate() []string {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return []string{"email is required"}
	}
	if !emailRegexp.MatchString(email) {
		return []string{"invalid email format"}
	}
	return nil
}

// SendInvite godoc
// @Summary Invite an email to join a team
// @Description Only the team leader may send invites. A pending invite for the same email is rejected with 409.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path string true "Team ID (UUID)"
// @Param body body SendInviteRequest true "Invitee email"
// @Success 201 {object} helpers.APIResponse "data contains the created invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate pending invite)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{teamID}/invite [post]
func (c *TeamController) SendInvite(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("teamID")
	if !uuidRegex.MatchString(teamID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid teamID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SendInviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	inv, err := c.Service.SendInvite(r.Context(), teamID, userID, req.Email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// RespondToInviteRequest is the request body for POST /teams/invite/{inviteID}/respond.
type RespondToInviteRequest struct {
	Response string `json:"response"`
}

// Validate implements helpers.Validator.
func (req RespondToInviteRequest) Validate() []string {
	switch domain.InviteStatus(req.Response) {
	case domain.InviteAccepted, domain.InviteRejected:
		return nil
	}
	return []string{`response must be "accepted" or "rejected"`}
}

// RespondToInvite godoc
// @Summary Accept or reject a team invite
// @Description The authenticated user's account email must match the invite's email. Accepting appends the user as a team member; resolving the last pending invite completes the team.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param inviteID path string true "Invite ID (UUID)"
// @Param body body RespondToInviteRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains the updated team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (invite is for another email)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (invite already processed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/invite/{inviteID}/respond [post]
func (c *TeamController) RespondToInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if !uuidRegex.MatchString(inviteID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid inviteID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RespondToInviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	team, err := c.Service.RespondToInvite(r.Context(), inviteID, userID, domain.InviteStatus(req.Response))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, team)
}

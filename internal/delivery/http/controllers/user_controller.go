package controllers

import (
	"log/slog"
	"net/http"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

type UserController struct {
	Logger              *slog.Logger
	UserService         domain.UserService
	RegistrationService domain.RegistrationService
	TeamService         domain.TeamService
	CouncilService      domain.CouncilService
}

func NewUserController(
	logger *slog.Logger,
	users domain.UserService,
	registrations domain.RegistrationService,
	teams domain.TeamService,
	councils domain.CouncilService,
) *UserController {
	return &UserController{
		Logger:              logger,
		UserService:         users,
		RegistrationService: registrations,
		TeamService:         teams,
		CouncilService:      councils,
	}
}

// GetMe godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	user, err := c.UserService.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateProfileRequest is the request body for PUT /users/me.
type UpdateProfileRequest struct {
	Phone      string `json:"phone"`
	RollNumber string `json:"roll_number"`
	Bio        string `json:"bio"`
}

// Validate implements helpers.Validator.
func (req UpdateProfileRequest) Validate() []string {
	var errs []string
	if len(req.Phone) > 20 {
		errs = append(errs, "phone must be at most 20 characters")
	}
	if len(req.RollNumber) > 50 {
		errs = append(errs, "roll_number must be at most 50 characters")
	}
	if len(req.Bio) > 1000 {
		errs = append(errs, "bio must be at most 1000 characters")
	}
	return errs
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Description Updates the mutable profile fields (phone, roll number, bio).
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [put]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateProfileRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.UserService.UpdateProfile(r.Context(), userID, req.Phone, req.RollNumber, req.Bio)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, user)
}

// ListMyEvents godoc
// @Summary List events the authenticated user is registered for
// @Description Returns the user's registrations joined with the event details.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains registrations with events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/events [get]
func (c *UserController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	regs, err := c.RegistrationService.ListMyRegisteredEvents(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]any{"registrations": regs})
}

// ListMyTeams godoc
// @Summary List teams the authenticated user belongs to
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains teams"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/teams [get]
func (c *UserController) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	teams, err := c.TeamService.ListMyTeams(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]any{"teams": teams})
}

// ListMyApplications godoc
// @Summary List the authenticated user's council applications
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains applications"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/applications [get]
func (c *UserController) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	apps, err := c.CouncilService.ListMyApplications(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]any{"applications": apps})
}

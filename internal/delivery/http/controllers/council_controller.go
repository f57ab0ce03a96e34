package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

type CouncilController struct {
	Logger  *slog.Logger
	Service domain.CouncilService
}

func NewCouncilController(logger *slog.Logger, svc domain.CouncilService) *CouncilController {
	return &CouncilController{
		Logger:  logger,
		Service: svc,
	}
}

// ListCouncils godoc
// @Summary List councils
// @Description Returns councils ordered by name, paginated.
// @Tags councils
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Items per page (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains councils and pagination meta"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /councils [get]
func (c *CouncilController) ListCouncils(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePagination(r)

	councils, total, err := c.Service.ListCouncils(r.Context(), params)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]any{
		"councils":   councils,
		"pagination": h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetCouncil godoc
// @Summary Get a council by ID
// @Description Returns a council including its current members.
// @Tags councils
// @Produce json
// @Param councilID path string true "Council ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the council"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /councils/{councilID} [get]
func (c *CouncilController) GetCouncil(w http.ResponseWriter, r *http.Request) {
	councilID := r.PathValue("councilID")
	if !uuidRegex.MatchString(councilID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid councilID")
		return
	}

	council, err := c.Service.GetCouncilByID(r.Context(), councilID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, council)
}

// ApplyRequest is the request body for POST /councils/{councilID}/apply.
type ApplyRequest struct {
	Position string `json:"position"`
	Message  string `json:"message"`
}

// Validate implements helpers.Validator.
func (req ApplyRequest) Validate() []string {
	if strings.TrimSpace(req.Position) == "" {
		return []string{"position is required"}
	}
	return nil
}

// Apply godoc
// @Summary Apply to join a council
// @Description Creates a pending application. A user may have at most one pending application per council; a second attempt returns 409.
// @Tags councils
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param councilID path string true "Council ID (UUID)"
// @Param body body ApplyRequest true "Application data"
// @Success 201 {object} helpers.APIResponse "data contains the created application"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (pending application exists)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /councils/{councilID}/apply [post]
func (c *CouncilController) Apply(w http.ResponseWriter, r *http.Request) {
	councilID := r.PathValue("councilID")
	if !uuidRegex.MatchString(councilID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid councilID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ApplyRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.Service.Apply(r.Context(), councilID, userID, req.Position, req.Message)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, app)
}

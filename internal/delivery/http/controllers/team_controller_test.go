package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTeamID   = "2b4e28ba-2fa1-11d2-883f-0016d3cca427"
	testInviteID = "3b4e28ba-2fa1-11d2-883f-0016d3cca427"
)

// fakeTeamService implements domain.TeamService for handler tests.
type fakeTeamService struct {
	createErr     error
	createResult  *domain.Team
	inviteErr     error
	inviteResult  *domain.TeamInvite
	respondErr    error
	respondResult *domain.Team
	getErr        error
	getResult     *domain.Team
	lastDecision  domain.InviteStatus
	lastEmail     string
}

func (f *fakeTeamService) CreateTeam(ctx context.Context, eventID, leaderUserID, name string, memberEmails []string) (*domain.Team, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeTeamService) SendInvite(ctx context.Context, teamID, requesterUserID, email string) (*domain.TeamInvite, error) {
	f.lastEmail = email
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	return f.inviteResult, nil
}

func (f *fakeTeamService) RespondToInvite(ctx context.Context, inviteID, respondingUserID string, decision domain.InviteStatus) (*domain.Team, error) {
	f.lastDecision = decision
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	return f.respondResult, nil
}

func (f *fakeTeamService) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeTeamService) ListMyTeams(ctx context.Context, userID string) ([]*domain.Team, error) {
	return nil, nil
}

func TestTeamController_CreateTeam(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		authed     bool
		svc        *fakeTeamService
		wantStatus int
		wantCode   string
	}{
		{
			name:   "success",
			body:   `{"name":"Null Pointers","event":"` + testEventID + `","members":["b@college.edu"]}`,
			authed: true,
			svc: &fakeTeamService{
				createResult: &domain.Team{ID: testTeamID, Name: "Null Pointers", Status: domain.TeamForming},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unauthenticated",
			body:       `{"name":"X","event":"` + testEventID + `"}`,
			authed:     false,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "missing name",
			body:       `{"name":"  ","event":"` + testEventID + `"}`,
			authed:     true,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "bad event id",
			body:       `{"name":"X","event":"nope"}`,
			authed:     true,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "bad member email",
			body:       `{"name":"X","event":"` + testEventID + `","members":["not-an-email"]}`,
			authed:     true,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown event",
			body:       `{"name":"X","event":"` + testEventID + `"}`,
			authed:     true,
			svc:        &fakeTeamService{createErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewTeamController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewBufferString(tt.body))
			if tt.authed {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rec := httptest.NewRecorder()

			ctrl.CreateTeam(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestTeamController_SendInvite(t *testing.T) {
	tests := []struct {
		name       string
		teamID     string
		body       string
		svc        *fakeTeamService
		wantStatus int
		wantCode   string
	}{
		{
			name:   "success",
			teamID: testTeamID,
			body:   `{"email":"new@college.edu"}`,
			svc: &fakeTeamService{
				inviteResult: &domain.TeamInvite{ID: testInviteID, Email: "new@college.edu", Status: domain.InvitePending},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid team id",
			teamID:     "nope",
			body:       `{"email":"new@college.edu"}`,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "invalid email",
			teamID:     testTeamID,
			body:       `{"email":"nope"}`,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "not the leader",
			teamID:     testTeamID,
			body:       `{"email":"new@college.edu"}`,
			svc:        &fakeTeamService{inviteErr: domain.ErrForbidden},
			wantStatus: http.StatusForbidden,
			wantCode:   helpers.ErrCodeForbidden,
		},
		{
			name:       "duplicate pending invite",
			teamID:     testTeamID,
			body:       `{"email":"dupe@college.edu"}`,
			svc:        &fakeTeamService{inviteErr: domain.ErrDuplicateInvite},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewTeamController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "http://test/teams/"+tt.teamID+"/invite", bytes.NewBufferString(tt.body))
			req.SetPathValue("teamID", tt.teamID)
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			rec := httptest.NewRecorder()

			ctrl.SendInvite(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			}
		})
	}
}

func TestTeamController_GetTeam(t *testing.T) {
	tests := []struct {
		name       string
		teamID     string
		authed     bool
		svc        *fakeTeamService
		wantStatus int
	}{
		{
			name:   "found",
			teamID: testTeamID,
			authed: true,
			svc: &fakeTeamService{
				getResult: &domain.Team{ID: testTeamID, Name: "Null Pointers", Status: domain.TeamComplete},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid id",
			teamID:     "nope",
			authed:     true,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unauthenticated",
			teamID:     testTeamID,
			authed:     false,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not found",
			teamID:     testTeamID,
			authed:     true,
			svc:        &fakeTeamService{getErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewTeamController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodGet, "http://test/teams/"+tt.teamID, nil)
			req.SetPathValue("teamID", tt.teamID)
			if tt.authed {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rec := httptest.NewRecorder()

			ctrl.GetTeam(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTeamController_RespondToInvite(t *testing.T) {
	tests := []struct {
		name       string
		inviteID   string
		body       string
		svc        *fakeTeamService
		wantStatus int
		wantCode   string
	}{
		{
			name:     "accept",
			inviteID: testInviteID,
			body:     `{"response":"accepted"}`,
			svc: &fakeTeamService{
				respondResult: &domain.Team{ID: testTeamID, Status: domain.TeamComplete},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "reject",
			inviteID: testInviteID,
			body:     `{"response":"rejected"}`,
			svc: &fakeTeamService{
				respondResult: &domain.Team{ID: testTeamID, Status: domain.TeamForming},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid decision",
			inviteID:   testInviteID,
			body:       `{"response":"maybe"}`,
			svc:        &fakeTeamService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "invite for another email",
			inviteID:   testInviteID,
			body:       `{"response":"accepted"}`,
			svc:        &fakeTeamService{respondErr: domain.ErrForbidden},
			wantStatus: http.StatusForbidden,
			wantCode:   helpers.ErrCodeForbidden,
		},
		{
			name:       "already processed",
			inviteID:   testInviteID,
			body:       `{"response":"accepted"}`,
			svc:        &fakeTeamService{respondErr: domain.ErrInviteNotPending},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "unknown invite",
			inviteID:   testInviteID,
			body:       `{"response":"accepted"}`,
			svc:        &fakeTeamService{respondErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewTeamController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "http://test/teams/invite/"+tt.inviteID+"/respond", bytes.NewBufferString(tt.body))
			req.SetPathValue("inviteID", tt.inviteID)
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			rec := httptest.NewRecorder()

			ctrl.RespondToInvite(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			assert.NotEmpty(t, tt.svc.lastDecision)
		})
	}
}

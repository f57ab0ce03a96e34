package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testEventID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events  []*domain.Event
	total   int
	byID    map[string]*domain.Event
	listErr error
	getErr  error
}

func (f *fakeEventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.events, f.total, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[eventID]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	registerErr     error
	registerReg     *domain.Registration
	registerTeam    *domain.Team
	lastEventID     string
	lastUserID      string
	lastTeamName    string
	lastTeamMembers []string
	listMineResult  []*domain.RegistrationWithEvent
	listMineErr     error
	listByEventRes  []*domain.Registration
	listByEventErr  error
}

func (f *fakeRegistrationService) RegisterForEvent(ctx context.Context, eventID, userID, teamName string, teamMemberEmails []string) (*domain.Registration, *domain.Team, error) {
	f.lastEventID = eventID
	f.lastUserID = userID
	f.lastTeamName = teamName
	f.lastTeamMembers = teamMemberEmails
	if f.registerErr != nil {
		return nil, nil, f.registerErr
	}
	return f.registerReg, f.registerTeam, nil
}

func (f *fakeRegistrationService) ListMyRegisteredEvents(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	return f.listMineResult, f.listMineErr
}

func (f *fakeRegistrationService) ListEventRegistrations(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return f.listByEventRes, f.listByEventErr
}

func TestEventController_Register(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		eventID    string
		body       string
		authed     bool
		svc        *fakeRegistrationService
		wantStatus int
		wantCode   string
	}{
		{
			name:    "solo registration",
			eventID: testEventID,
			authed:  true,
			svc: &fakeRegistrationService{
				registerReg: &domain.Registration{ID: "reg-1", EventID: testEventID, UserID: "user-123", Status: domain.RegistrationConfirmed, RegisteredAt: now},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:    "team registration passes team fields through",
			eventID: testEventID,
			body:    `{"team_name":"Null Pointers","team_members":["b@college.edu"]}`,
			authed:  true,
			svc: &fakeRegistrationService{
				registerReg:  &domain.Registration{ID: "reg-1", TeamID: "team-1"},
				registerTeam: &domain.Team{ID: "team-1", Name: "Null Pointers", Status: domain.TeamForming},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid event id",
			eventID:    "not-a-uuid",
			authed:     true,
			svc:        &fakeRegistrationService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unauthenticated",
			eventID:    testEventID,
			authed:     false,
			svc:        &fakeRegistrationService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "unknown event",
			eventID:    testEventID,
			authed:     true,
			svc:        &fakeRegistrationService{registerErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "deadline passed",
			eventID:    testEventID,
			authed:     true,
			svc:        &fakeRegistrationService{registerErr: domain.ErrDeadlinePassed},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeDeadlineExpired,
		},
		{
			name:       "already registered",
			eventID:    testEventID,
			authed:     true,
			svc:        &fakeRegistrationService{registerErr: domain.ErrAlreadyRegistered},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "invalid team input",
			eventID:    testEventID,
			body:       `{"team_name":"Crowd","team_members":["a@c.edu","b@c.edu","c@c.edu","d@c.edu"]}`,
			authed:     true,
			svc:        &fakeRegistrationService{registerErr: domain.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, &fakeEventService{}, tt.svc)

			var body io.Reader
			if tt.body != "" {
				body = bytes.NewBufferString(tt.body)
			}
			req := httptest.NewRequest(http.MethodPost, "http://test/events/"+tt.eventID+"/register", body)
			req.SetPathValue("eventID", tt.eventID)
			if tt.authed {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rec := httptest.NewRecorder()

			ctrl.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			assert.Equal(t, tt.eventID, tt.svc.lastEventID)
			assert.Equal(t, "user-123", tt.svc.lastUserID)
			if tt.body != "" {
				assert.Equal(t, "Null Pointers", tt.svc.lastTeamName)
			}
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	svc := &fakeEventService{byID: map[string]*domain.Event{
		testEventID: {ID: testEventID, Title: "HackNight 24h"},
	}}
	ctrl := NewEventController(testLogger, svc, &fakeRegistrationService{})

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://test/events/"+testEventID, nil)
		req.SetPathValue("eventID", testEventID)
		rec := httptest.NewRecorder()

		ctrl.GetEvent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://test/events/nope", nil)
		req.SetPathValue("eventID", "nope")
		rec := httptest.NewRecorder()

		ctrl.GetEvent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		missing := "9b4e28ba-2fa1-11d2-883f-0016d3cca427"
		req := httptest.NewRequest(http.MethodGet, "http://test/events/"+missing, nil)
		req.SetPathValue("eventID", missing)
		rec := httptest.NewRecorder()

		ctrl.GetEvent(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

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

const testCouncilID = "4b4e28ba-2fa1-11d2-883f-0016d3cca427"

// fakeCouncilService implements domain.CouncilService for handler tests.
type fakeCouncilService struct {
	councils []*domain.Council
	total    int
	listErr  error
	getErr   error
	council  *domain.Council
	applyErr error
	app      *domain.CouncilApplication
}

func (f *fakeCouncilService) ListCouncils(ctx context.Context, params domain.PaginationParams) ([]*domain.Council, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.councils, f.total, nil
}

func (f *fakeCouncilService) GetCouncilByID(ctx context.Context, councilID string) (*domain.Council, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.council, nil
}

func (f *fakeCouncilService) Apply(ctx context.Context, councilID, userID, position, message string) (*domain.CouncilApplication, error) {
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	return f.app, nil
}

func (f *fakeCouncilService) ListMyApplications(ctx context.Context, userID string) ([]*domain.CouncilApplication, error) {
	return nil, nil
}

func TestCouncilController_ListCouncils(t *testing.T) {
	svc := &fakeCouncilService{
		councils: []*domain.Council{
			{ID: testCouncilID, Name: "Technical Council", Type: domain.CouncilTechnical},
		},
		total: 27,
	}
	ctrl := NewCouncilController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/councils?page=2&page_size=10", nil)
	rec := httptest.NewRecorder()

	ctrl.ListCouncils(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["councils"], 1)

	meta, ok := data["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(10), meta["page_size"])
	assert.Equal(t, float64(27), meta["total"])
	assert.Equal(t, float64(3), meta["total_pages"])
}

func TestCouncilController_Apply(t *testing.T) {
	tests := []struct {
		name       string
		councilID  string
		body       string
		authed     bool
		svc        *fakeCouncilService
		wantStatus int
		wantCode   string
	}{
		{
			name:      "success",
			councilID: testCouncilID,
			body:      `{"position":"Secretary","message":"I organize things."}`,
			authed:    true,
			svc: &fakeCouncilService{
				app: &domain.CouncilApplication{ID: "app-1", Position: "Secretary", Status: domain.ApplicationPending},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing position",
			councilID:  testCouncilID,
			body:       `{"message":"no role given"}`,
			authed:     true,
			svc:        &fakeCouncilService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unauthenticated",
			councilID:  testCouncilID,
			body:       `{"position":"Secretary"}`,
			authed:     false,
			svc:        &fakeCouncilService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "unknown council",
			councilID:  testCouncilID,
			body:       `{"position":"Secretary"}`,
			authed:     true,
			svc:        &fakeCouncilService{applyErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "pending application exists",
			councilID:  testCouncilID,
			body:       `{"position":"Secretary"}`,
			authed:     true,
			svc:        &fakeCouncilService{applyErr: domain.ErrAlreadyApplied},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCouncilController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "http://test/councils/"+tt.councilID+"/apply", bytes.NewBufferString(tt.body))
			req.SetPathValue("councilID", tt.councilID)
			if tt.authed {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rec := httptest.NewRecorder()

			ctrl.Apply(rec, req)

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

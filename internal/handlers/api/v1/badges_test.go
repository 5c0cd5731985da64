package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"craftpin/internal/models"
	"craftpin/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBadgeService serves a fixed catalog for handler tests
type mockBadgeService struct {
	catalog      []*models.Badge
	statuses     []*models.BadgeWithStatus
	listErr      error
	userBadgeErr error
}

func (m *mockBadgeService) EvaluateAndAward(ctx context.Context, userID int64) ([]int64, error) {
	return nil, nil
}

func (m *mockBadgeService) TriggerBadgeCheck(userID int64) {}

func (m *mockBadgeService) GetUserBadges(ctx context.Context, userID int64) ([]*models.BadgeWithStatus, error) {
	if m.userBadgeErr != nil {
		return nil, m.userBadgeErr
	}
	return m.statuses, nil
}

func (m *mockBadgeService) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.catalog, nil
}

func newBadgeRouter(svc services.BadgeService) http.Handler {
	handler := NewBadgeHandler(svc)

	r := chi.NewRouter()
	r.Get("/badges", handler.List)
	r.Get("/users/{id}/badges", handler.ListForUser)
	return r
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestListBadgesHandler(t *testing.T) {
	svc := &mockBadgeService{catalog: []*models.Badge{
		{ID: 1, Name: "First Pin", Category: models.BadgeCategoryMilestone},
		{ID: 2, Name: "Rising Star", Category: models.BadgeCategoryCommunity},
	}}
	router := newBadgeRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/badges", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)

	var badges []*models.Badge
	require.NoError(t, json.Unmarshal(envelope.Data, &badges))
	require.Len(t, badges, 2)
	assert.Equal(t, "First Pin", badges[0].Name)
}

func TestListUserBadgesHandler(t *testing.T) {
	svc := &mockBadgeService{statuses: []*models.BadgeWithStatus{
		{Badge: &models.Badge{ID: 1, Name: "First Pin"}, Earned: true},
		{Badge: &models.Badge{ID: 2, Name: "Rising Star"}, Earned: false},
	}}
	router := newBadgeRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/7/badges", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	var statuses []*models.BadgeWithStatus
	require.NoError(t, json.Unmarshal(envelope.Data, &statuses))
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Earned)
	assert.False(t, statuses[1].Earned)
}

func TestListUserBadgesHandlerInvalidID(t *testing.T) {
	router := newBadgeRouter(&mockBadgeService{})

	req := httptest.NewRequest(http.MethodGet, "/users/abc/badges", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Type)
}

func TestListBadgesHandlerServiceError(t *testing.T) {
	svc := &mockBadgeService{listErr: services.NewInternalError("catalog unavailable")}
	router := newBadgeRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/badges", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	// Internal detail is masked on the wire.
	assert.Equal(t, "internal server error", envelope.Error.Message)
}

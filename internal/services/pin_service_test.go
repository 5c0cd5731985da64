package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"craftpin/internal/events"
	"craftpin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockBus records published events without delivering them
type mockBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (m *mockBus) Publish(ctx context.Context, event events.Event) error {
	return m.PublishAsync(event)
}

func (m *mockBus) PublishAsync(event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return nil
}

func (m *mockBus) Subscribe(eventType string, handler events.EventHandler) {}
func (m *mockBus) Start()                                                  {}
func (m *mockBus) Stop(ctx context.Context) error                          { return nil }
func (m *mockBus) Stats() events.BusStats                                  { return events.BusStats{} }

func (m *mockBus) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, len(m.published))
	for i, e := range m.published {
		types[i] = e.GetEventType()
	}
	return types
}

// mockPinRepo is a minimal in-memory pin store
type mockPinRepo struct {
	pins      map[int64]*models.Pin
	nextID    int64
	likes     map[[2]int64]struct{}
	createErr error
}

func newMockPinRepo() *mockPinRepo {
	return &mockPinRepo{
		pins:  make(map[int64]*models.Pin),
		likes: make(map[[2]int64]struct{}),
	}
}

func (m *mockPinRepo) Create(ctx context.Context, pin *models.Pin) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	pin.ID = m.nextID
	m.pins[pin.ID] = pin
	return nil
}

func (m *mockPinRepo) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Pin, error) {
	return m.pins[id], nil
}

func (m *mockPinRepo) ListByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error) {
	return &models.PaginatedResponse[*models.Pin]{}, nil
}

func (m *mockPinRepo) List(ctx context.Context, category *string, params models.PaginationParams) (*models.PaginatedResponse[*models.Pin], error) {
	return &models.PaginatedResponse[*models.Pin]{}, nil
}

func (m *mockPinRepo) Delete(ctx context.Context, pinID, userID int64) error {
	pin, ok := m.pins[pinID]
	if !ok || pin.UserID != userID {
		return sql.ErrNoRows
	}
	delete(m.pins, pinID)
	return nil
}

func (m *mockPinRepo) AddLike(ctx context.Context, pinID, userID int64) (bool, error) {
	key := [2]int64{pinID, userID}
	if _, ok := m.likes[key]; ok {
		return false, nil
	}
	m.likes[key] = struct{}{}
	return true, nil
}

func (m *mockPinRepo) RemoveLike(ctx context.Context, pinID, userID int64) error {
	delete(m.likes, [2]int64{pinID, userID})
	return nil
}

func TestCreatePinPublishesCreatorEvent(t *testing.T) {
	repo := newMockPinRepo()
	bus := &mockBus{}
	svc := NewPinService(repo, bus, zap.NewNop())

	category := "sewing"
	pin, err := svc.CreatePin(context.Background(), &CreatePinRequest{
		UserID:   7,
		Title:    "Tote bag pattern",
		ImageURL: "https://example.com/tote.jpg",
		Category: &category,
	})
	require.NoError(t, err)
	assert.NotZero(t, pin.ID)

	require.Equal(t, []string{events.EventPinCreated}, bus.eventTypes())
	assert.Equal(t, int64(7), bus.published[0].GetUserID())
}

func TestCreatePinValidation(t *testing.T) {
	repo := newMockPinRepo()
	bus := &mockBus{}
	svc := NewPinService(repo, bus, zap.NewNop())

	_, err := svc.CreatePin(context.Background(), &CreatePinRequest{UserID: 7})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Empty(t, bus.eventTypes())
}

func TestCreatePinRepoFailurePublishesNothing(t *testing.T) {
	repo := newMockPinRepo()
	repo.createErr = errors.New("insert failed")
	bus := &mockBus{}
	svc := NewPinService(repo, bus, zap.NewNop())

	_, err := svc.CreatePin(context.Background(), &CreatePinRequest{
		UserID:   7,
		Title:    "Tote bag pattern",
		ImageURL: "https://example.com/tote.jpg",
	})
	require.Error(t, err)
	assert.Empty(t, bus.eventTypes())
}

func TestLikePinTargetsOwner(t *testing.T) {
	repo := newMockPinRepo()
	repo.pins[42] = &models.Pin{ID: 42, UserID: 3}
	bus := &mockBus{}
	svc := NewPinService(repo, bus, zap.NewNop())

	require.NoError(t, svc.LikePin(context.Background(), 42, 9))

	require.Len(t, bus.published, 1)
	// The owner's likes-received count changed, not the liker's stats.
	assert.Equal(t, int64(3), bus.published[0].GetUserID())
	assert.Equal(t, events.EventPinLiked, bus.published[0].GetEventType())
}

func TestLikePinTwiceIsNoOp(t *testing.T) {
	repo := newMockPinRepo()
	repo.pins[42] = &models.Pin{ID: 42, UserID: 3}
	bus := &mockBus{}
	svc := NewPinService(repo, bus, zap.NewNop())

	require.NoError(t, svc.LikePin(context.Background(), 42, 9))
	require.NoError(t, svc.LikePin(context.Background(), 42, 9))

	assert.Len(t, bus.published, 1)
}

func TestLikePinNotFound(t *testing.T) {
	svc := NewPinService(newMockPinRepo(), &mockBus{}, zap.NewNop())

	err := svc.LikePin(context.Background(), 42, 9)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestUnlikePinPublishesNothing(t *testing.T) {
	repo := newMockPinRepo()
	repo.pins[42] = &models.Pin{ID: 42, UserID: 3}
	repo.likes[[2]int64{42, 9}] = struct{}{}
	bus := &mockBus{}
	svc := NewPinService(repo, bus, zap.NewNop())

	require.NoError(t, svc.UnlikePin(context.Background(), 42, 9))
	assert.Empty(t, bus.eventTypes())
}

func TestDeletePinOwnership(t *testing.T) {
	repo := newMockPinRepo()
	repo.pins[42] = &models.Pin{ID: 42, UserID: 3}
	svc := NewPinService(repo, &mockBus{}, zap.NewNop())

	err := svc.DeletePin(context.Background(), 42, 9)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))

	require.NoError(t, svc.DeletePin(context.Background(), 42, 3))
}

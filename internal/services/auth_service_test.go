package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"craftpin/internal/config"
	"craftpin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockAuthUserRepo struct {
	createErr error
	byEmail   *models.User
	nextID    int64
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	user.ID = m.nextID
	return nil
}

func (m *mockAuthUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, nil
}

func (m *mockAuthUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}

func (m *mockAuthUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.byEmail, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BCryptCost: bcrypt.MinCost,
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	repo := &mockAuthUserRepo{}
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "maker",
		Email:    "maker@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.UserID)
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	repo := &mockAuthUserRepo{createErr: errors.New("username or email already taken")}
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "maker",
		Email:    "maker@example.com",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "CONFLICT", svcErr.Type)
	assert.Equal(t, "USER_EXISTS", svcErr.Code)
	assert.Equal(t, http.StatusConflict, svcErr.GetStatusCode())
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockAuthUserRepo{byEmail: &models.User{ID: 3, PasswordHash: string(hash)}}
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "maker@example.com",
		Password: "battery staple",
	})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.GetStatusCode())
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	repo := &mockAuthUserRepo{}
	svc := NewAuthService(repo, testAuthConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "battery staple",
	})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.GetStatusCode())
}

package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelhub/internal/repository"
	"reelhub/internal/storage"
	"reelhub/pkg/models"
)

func newTestAuth(t *testing.T) AuthService {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewAuthService(repository.NewUserRepository(store), "test-secret", "reelhub-test", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "user", user.Role)
	assert.Empty(t, user.PasswordHash)

	resp, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "ab", Password: "password123"})
	assert.Error(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "short"})
	assert.Error(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password456"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.ValidateToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()
	repo := repository.NewUserRepository(store)
	ctx := context.Background()

	signer := NewAuthService(repo, "secret-one", "reelhub-test", time.Hour)
	verifier := NewAuthService(repo, "secret-two", "reelhub-test", time.Hour)

	_, err := signer.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	resp, err := signer.Login(ctx, models.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()
	repo := repository.NewUserRepository(store)
	ctx := context.Background()

	svc := NewAuthService(repo, "test-secret", "reelhub-test", -time.Minute)

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUserByID(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUserByID(ctx, "missing")
	assert.Error(t, err)
}

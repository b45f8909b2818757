package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fathima-sithara/socialnet/internal/auth"
)

func newAuthService() (*AuthService, *fakeUserRepo, *auth.Manager) {
	repo := newFakeUserRepo()
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(repo, tokens, zap.NewNop()), repo, tokens
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo, _ := newAuthService()

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "s3cret", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[u.ID].Password), []byte("s3cret")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Imposter", "alice@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthService()
	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	token, got, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	userID, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthService()
	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

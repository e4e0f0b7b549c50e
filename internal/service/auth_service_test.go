package service

import (
	"testing"
	"time"

	"cognilab_backend/internal/config"
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"cognilab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	db := newTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func registerUser(t *testing.T, svc *AuthService, email, password string) *model.User {
	t.Helper()
	user := &model.User{
		FullName: "Test User",
		Email:    email,
		Password: password,
		Role:     model.Student,
		IsActive: true,
	}
	require.NoError(t, svc.Register(user))
	return user
}

func TestRegisterHashesPasswordAndRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	user := registerUser(t, svc, "a@example.com", "secret123")
	assert.NotEqual(t, "secret123", user.Password)

	dup := &model.User{Email: "a@example.com", Password: "other", IsActive: true}
	assert.ErrorIs(t, svc.Register(dup), util.ErrEmailRegistered)
}

func TestLoginReturnsValidToken(t *testing.T) {
	svc := newAuthService(t)

	user := registerUser(t, svc, "a@example.com", "secret123")

	token, err := svc.Login("a@example.com", "secret123")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	registerUser(t, svc, "a@example.com", "secret123")

	_, err := svc.Login("a@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc := newAuthService(t)

	user := registerUser(t, svc, "a@example.com", "secret123")
	require.NoError(t, svc.UserRepo.DB.Model(user).Update("is_active", false).Error)

	_, err := svc.Login("a@example.com", "secret123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

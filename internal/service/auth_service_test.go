package service

import (
	"context"
	"testing"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/config"
	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    2,
	}
}

func seedCredentials(t *testing.T, users *stubUserRepo, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Email:        username + "@inventario.local",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestTokenLogin(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testConfig())
	seedCredentials(t, users, "ana", "secreta123")

	resp, err := svc.Token(context.Background(), dto.TokenRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.Equal(t, "ana", resp.User.Username)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	// Login by email works too
	resp, err = svc.Token(context.Background(), dto.TokenRequest{Username: "ana@inventario.local", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.User.Username)
}

func TestTokenBadCredentials(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testConfig())
	seedCredentials(t, users, "ana", "secreta123")

	_, err := svc.Token(context.Background(), dto.TokenRequest{Username: "ana", Password: "incorrecta"})
	assert.True(t, apierror.IsKind(err, apierror.KindAuthentication))

	_, err = svc.Token(context.Background(), dto.TokenRequest{Username: "nadie", Password: "secreta123"})
	assert.True(t, apierror.IsKind(err, apierror.KindAuthentication))
}

func TestRefresh(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testConfig())
	u := seedCredentials(t, users, "ana", "secreta123")

	resp, err := svc.Token(context.Background(), dto.TokenRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), resp.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)
	assert.Equal(t, "ana", refreshed.User.Username)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.True(t, apierror.IsKind(err, apierror.KindAuthentication))

	// Deactivated user cannot refresh
	require.NoError(t, users.SoftDelete(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), resp.Refresh)
	assert.True(t, apierror.IsKind(err, apierror.KindAuthentication))
}

func TestMe(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testConfig())
	u := seedCredentials(t, users, "ana", "secreta123")

	resp, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, model.RoleAdmin, resp.Role)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.True(t, apierror.IsKind(err, apierror.KindAuthentication))

	// Deactivated account has no valid session
	require.NoError(t, users.SoftDelete(context.Background(), u.ID))
	_, err = svc.Me(context.Background(), u.ID)
	assert.True(t, apierror.IsKind(err, apierror.KindAuthentication))
}

func TestCreateUserConflicts(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testConfig())
	seedCredentials(t, users, "ana", "secreta123")

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "ana", Email: "otra@inventario.local", Password: "12345678", Role: model.RoleIntern,
	})
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	_, err = svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "otra", Email: "ana@inventario.local", Password: "12345678", Role: model.RoleIntern,
	})
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "otra", Email: "otra@inventario.local", Password: "12345678", Role: model.RoleIntern,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleIntern, resp.Role)
	assert.True(t, resp.Active)
}

func TestDeactivateUser(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testConfig())
	u := seedCredentials(t, users, "ana", "secreta123")

	require.NoError(t, svc.DeactivateUser(context.Background(), u.ID))

	// Deactivated accounts cannot log in
	_, err := svc.Token(context.Background(), dto.TokenRequest{Username: "ana", Password: "secreta123"})
	assert.True(t, apierror.IsKind(err, apierror.KindAuthentication))
}

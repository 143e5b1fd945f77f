package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/auth"
	"github.com/yigit/mentoraid/internal/pkg/session"
)

func newTestAuthService(t *testing.T, cfg AuthConfig) (*AuthService, *session.MemoryStore, *auth.JWTService) {
	t.Helper()
	store := session.NewMemoryStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "mentoraid.test",
	})
	return NewAuthService(cfg, store, jwtService, nil, zerolog.Nop()), store, jwtService
}

func TestNameAndRoleFromEmail(t *testing.T) {
	tests := []struct {
		email string
		name  string
		role  models.RoleType
	}{
		{"jane.doe@school.edu", "Jane Doe", models.RoleTeacher},
		{"sam_mentor@school.edu", "Sam Mentor", models.RoleMentor},
		{"head.admin@school.edu", "Head Admin", models.RoleAdmin},
		{"admin.mentor@school.edu", "Admin Mentor", models.RoleAdmin},
		{"bob@school.edu", "Bob", models.RoleTeacher},
		{"o'neil-ray@school.edu", "O'Neil-Ray", models.RoleTeacher},
		{"Admin@school.edu", "Admin", models.RoleTeacher},
		{"MENTOR.lee@school.edu", "MENTOR Lee", models.RoleTeacher},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.name, NameFromEmail(tt.email))
			assert.Equal(t, tt.role, RoleFromEmail(tt.email))
		})
	}
}

func TestAuthServiceLoginIssuesSessionToken(t *testing.T) {
	svc, store, jwtService := newTestAuthService(t, AuthConfig{SessionTTL: time.Hour})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane.mentor@school.edu", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "1", Email: "jane.mentor@school.edu", Name: "Jane Mentor", Role: models.RoleMentor}, resp.User)
	assert.Equal(t, "Bearer", resp.Token.TokenType)

	claims, err := jwtService.ValidateAndExtractClaims(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	me, err := svc.Me(ctx, claims.SessionID())
	require.NoError(t, err)
	assert.Equal(t, "Jane Mentor", me.Name)

	require.NoError(t, svc.Logout(ctx, claims.SessionID()))
	_, err = svc.Me(ctx, claims.SessionID())
	assert.True(t, errors.Is(err, apperrors.ErrSessionNotFound))
}

func TestAuthServiceLogoutRunsHook(t *testing.T) {
	var loggedOut []string
	svc, _, jwtService := newTestAuthService(t, AuthConfig{
		SessionTTL: time.Hour,
		OnLogout:   func(sessionID string) { loggedOut = append(loggedOut, sessionID) },
	})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@school.edu", Password: "x"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAndExtractClaims(resp.Token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.SessionID()))
	assert.Equal(t, []string{claims.SessionID()}, loggedOut)
}

func TestAuthServiceAccessCode(t *testing.T) {
	hash, err := auth.HashAccessCode("letmein")
	require.NoError(t, err)
	svc, _, _ := newTestAuthService(t, AuthConfig{AccessCodeHash: hash})

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@school.edu", Password: "wrong"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@school.edu", Password: "letmein"})
	assert.NoError(t, err)
}

func TestAuthServiceRejectsBadEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t, AuthConfig{})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestAuthServiceLoginWithProvider(t *testing.T) {
	svc, _, _ := newTestAuthService(t, AuthConfig{})
	ctx := context.Background()

	resp, err := svc.LoginWithProvider(ctx, "Google")
	require.NoError(t, err)
	assert.Equal(t, "Google User", resp.User.Name)
	assert.Equal(t, models.RoleMentor, resp.User.Role)

	resp, err = svc.LoginWithProvider(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, "user@icloud.com", resp.User.Email)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)

	_, err = svc.LoginWithProvider(ctx, "github")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownProvider))
}

func TestAuthServiceLoginHonoursCancellation(t *testing.T) {
	svc, store, _ := newTestAuthService(t, AuthConfig{LoginLatency: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@school.edu", Password: "x"})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, store.Len())
}

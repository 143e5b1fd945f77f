package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/auth"
	"github.com/yigit/mentoraid/internal/pkg/helpers"
	"github.com/yigit/mentoraid/internal/pkg/metrics"
	"github.com/yigit/mentoraid/internal/pkg/session"
)

// Login providers
const (
	ProviderGoogle = "google"
	ProviderApple  = "apple"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

var providerUsers = map[string]models.User{
	ProviderGoogle: {ID: "2", Email: "user@gmail.com", Name: "Google User", Role: models.RoleMentor},
	ProviderApple:  {ID: "3", Email: "user@icloud.com", Name: "Apple User", Role: models.RoleTeacher},
}

// AuthConfig tunes the mock sign-in flow
type AuthConfig struct {
	LoginLatency    time.Duration
	ProviderLatency time.Duration
	AccessCodeHash  string
	SessionTTL      time.Duration

	// OnLogout runs after a session is cleared
	OnLogout func(sessionID string)
}

// AuthService handles sign-in and sessions
type AuthService struct {
	config     AuthConfig
	sessions   session.Store
	jwtService *auth.JWTService
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	config AuthConfig,
	sessions session.Store,
	jwtService *auth.JWTService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		config:     config,
		sessions:   sessions,
		jwtService: jwtService,
		metrics:    m,
		now:        time.Now,
		logger:     logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	if !emailRegex.MatchString(strings.ToLower(email)) {
		return apperrors.NewValidationError("invalid email format")
	}
	return nil
}

// Login signs in with email and password. Any password is accepted unless an
// access code hash is configured.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	resp, err := s.login(ctx, req)
	s.metrics.LoginAttempt("password", err)
	return resp, err
}

func (s *AuthService) login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := s.validateEmail(email); err != nil {
		return nil, err
	}

	if err := helpers.Sleep(ctx, s.config.LoginLatency); err != nil {
		return nil, err
	}

	if s.config.AccessCodeHash != "" && !auth.CheckAccessCode(s.config.AccessCodeHash, req.Password) {
		s.logger.Warn().Str("email", email).Msg("Login rejected: access code mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	user := models.User{
		ID:    "1",
		Email: email,
		Name:  NameFromEmail(email),
		Role:  RoleFromEmail(email),
	}
	return s.startSession(ctx, user)
}

// LoginWithProvider signs in through a social provider
func (s *AuthService) LoginWithProvider(ctx context.Context, provider string) (*dto.AuthResponse, error) {
	provider = strings.ToLower(provider)
	resp, err := s.loginWithProvider(ctx, provider)
	s.metrics.LoginAttempt(provider, err)
	return resp, err
}

func (s *AuthService) loginWithProvider(ctx context.Context, provider string) (*dto.AuthResponse, error) {
	user, ok := providerUsers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownProvider, provider)
	}

	if err := helpers.Sleep(ctx, s.config.ProviderLatency); err != nil {
		return nil, err
	}
	return s.startSession(ctx, user)
}

// Logout ends the session
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return err
	}
	if s.config.OnLogout != nil {
		s.config.OnLogout(sessionID)
	}
	s.logger.Info().Str("sessionID", sessionID).Msg("Session cleared")
	return nil
}

// Me returns the user of a live session
func (s *AuthService) Me(ctx context.Context, sessionID string) (*models.User, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrSessionNotFound, sessionID)
		}
		return nil, err
	}
	return &sess.User, nil
}

// startSession stores a session and issues its access token
func (s *AuthService) startSession(ctx context.Context, user models.User) (*dto.AuthResponse, error) {
	now := s.now()
	sessionID := uuid.New().String()

	sess := session.Session{
		ID:        sessionID,
		User:      user,
		CreatedAt: now,
	}
	if s.config.SessionTTL > 0 {
		sess.ExpiresAt = now.Add(s.config.SessionTTL)
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to generate access token")
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.sessions.Set(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info().
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Str("sessionID", sessionID).
		Msg("User signed in")

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: user,
	}, nil
}

// NameFromEmail turns the local part of an address into a display name:
// dots and underscores become spaces and each word character that follows a
// non-word character is capitalised, so "o'neil-ray" reads "O'Neil-Ray".
func NameFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ").Replace(local)

	r := []rune(local)
	for i := range r {
		if isWordRune(r[i]) && (i == 0 || !isWordRune(r[i-1])) {
			r[i] = unicode.ToUpper(r[i])
		}
	}
	return strings.Join(strings.Fields(string(r)), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || (r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// RoleFromEmail picks the role hinted by the address. Matching is case-sensitive.
func RoleFromEmail(email string) models.RoleType {
	switch {
	case strings.Contains(email, "admin"):
		return models.RoleAdmin
	case strings.Contains(email, "mentor"):
		return models.RoleMentor
	default:
		return models.RoleTeacher
	}
}

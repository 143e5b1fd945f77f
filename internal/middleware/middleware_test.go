package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/auth"
	"github.com/yigit/mentoraid/internal/pkg/notify"
	"github.com/yigit/mentoraid/internal/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type authFixture struct {
	jwt      *auth.JWTService
	sessions *session.MemoryStore
	router   *gin.Engine
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "mentoraid.test",
		}),
		sessions: session.NewMemoryStore(),
	}

	mw := NewAuthMiddleware(f.jwt, f.sessions)
	f.router = gin.New()
	f.router.GET("/me", mw.JWTAuth(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		recipient, _ := notify.RecipientFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"name": user.Name, "session": c.GetString(ContextSessionID), "recipient": recipient})
	})
	f.router.GET("/admin", mw.JWTAuth(), mw.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return f
}

func (f *authFixture) signIn(t *testing.T, user models.User, sessionID string) string {
	t.Helper()
	require.NoError(t, f.sessions.Set(context.Background(), sessionID, session.Session{User: user}))
	token, _, err := f.jwt.GenerateAccessToken(user, sessionID)
	require.NoError(t, err)
	return token
}

func TestJWTAuth(t *testing.T) {
	f := newAuthFixture()
	user := models.User{ID: "1", Email: "jane@school.edu", Name: "Jane", Role: models.RoleTeacher}
	token := f.signIn(t, user, "s-1")

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Jane","session":"s-1","recipient":"s-1"}`, w.Body.String())
	})

	t.Run("query parameter", func(t *testing.T) {
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?access_token="+token, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeTokenNotFound, decode(t, w).Error.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer a.b.c")
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, decode(t, w).Error.Code)
	})

	t.Run("cleared session", func(t *testing.T) {
		other := f.signIn(t, user, "s-2")
		require.NoError(t, f.sessions.Clear(context.Background(), "s-2"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeSessionNotFound, decode(t, w).Error.Code)
	})
}

func TestRoleRequired(t *testing.T) {
	f := newAuthFixture()
	teacher := f.signIn(t, models.User{ID: "1", Email: "t@school.edu", Role: models.RoleTeacher}, "t")
	admin := f.signIn(t, models.User{ID: "1", Email: "admin@school.edu", Role: models.RoleAdmin}, "a")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+teacher)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"student not found", fmt.Errorf("%w: id 9", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
		{"validation message", apperrors.NewValidationError("Please fill in all required fields."), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Please fill in all required fields."},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"unknown provider", fmt.Errorf("%w: github", apperrors.ErrUnknownProvider), http.StatusBadRequest, dto.ErrorCodeUnknownProvider, "Unknown login provider"},
		{"generation failed", fmt.Errorf("%w: boom", apperrors.ErrGenerationFailed), http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Text generation failed"},
		{"cancelled", context.Canceled, StatusClientClosedRequest, dto.ErrorCodeRequestCancelled, "Request cancelled"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.Equal(t, tt.message, env.Error.Message)
		})
	}
}

type scoreBody struct {
	Value *int   `json:"value" binding:"required"`
	Kind  string `json:"kind" binding:"omitempty,oneof=a b"`
}

func TestValidateRequest(t *testing.T) {
	router := gin.New()
	router.POST("/", ValidateRequest(func() *scoreBody { return &scoreBody{} }), func(c *gin.Context) {
		body, ok := ValidatedBody[scoreBody](c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"value": *body.Value})
	})

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	w := post(`{"value": 3}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":3}`, w.Body.String())

	w = post(`{"kind": "c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decode(t, w).Error.Code)

	w = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", decode(t, w).Error.Message)
}

func TestRequestLoggerAndMetricsPassThrough(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()), RequestMetrics(nil))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

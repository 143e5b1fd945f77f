package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/config"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type testApp struct {
	deps   *Dependencies
	router *gin.Engine
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.BaseURL = "https://mentoraid.test:9443"
	cfg.Server.Mode = "production"
	cfg.Server.StoragePath = t.TempDir()
	cfg.Server.ShutdownTimeout = "1s"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "mentoraid.test"
	cfg.Dataset.Size = 30
	cfg.Dataset.Seed = 7
	cfg.Simulation.AILatency = "0s"
	cfg.Simulation.LoginLatency = "0s"
	cfg.Simulation.ProviderLatency = "0s"
	cfg.Simulation.ProcessingLatency = "0s"
	cfg.Auth.SessionTTL = "1h"
	cfg.Notifications.DefaultDuration = "5s"
	cfg.Notifications.HistorySize = 20
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	return cfg
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testConfig(t)
	deps, err := BuildDependencies(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(deps.Bus.Close)

	return &testApp{deps: deps, router: SetupRouter(cfg, deps, zerolog.Nop())}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token.AccessToken)
	return resp.Token.AccessToken
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	t.Run("me requires a token", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "not-an-email", Password: "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login, me and logout", func(t *testing.T) {
		token := app.login(t, "jane.mentor@school.edu")

		w := app.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var user models.User
		decode(t, w, &user)
		assert.Equal(t, "Jane Mentor", user.Name)
		assert.Equal(t, models.RoleMentor, user.Role)

		w = app.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = app.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("provider login", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/auth/login/google", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.AuthResponse
		decode(t, w, &resp)
		assert.Equal(t, "Google User", resp.User.Name)

		w = app.do(t, http.MethodPost, "/api/v1/auth/login/myspace", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDashboardAndStudents(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "jane.mentor@school.edu")

	w := app.do(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard dto.DashboardResponse
	decode(t, w, &dashboard)
	assert.Equal(t, 30, dashboard.Stats.TotalStudents)
	dist := dashboard.Charts.RiskDistribution
	assert.Equal(t, 30, dist.Low+dist.Medium+dist.High)
	assert.Len(t, dashboard.Charts.AttendanceTrend, 6)

	w = app.do(t, http.MethodGet, "/api/v1/students?size=5&page=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.StudentListResponse
	decode(t, w, &list)
	assert.Len(t, list.Students, 5)
	assert.Equal(t, int64(30), list.Pagination.TotalItems)
	assert.Equal(t, 2, list.Pagination.CurrentPage)

	w = app.do(t, http.MethodGet, "/api/v1/students?riskLevel=critical", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/students/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.StudentDetailResponse
	decode(t, w, &detail)
	assert.Equal(t, "1", detail.Student.ID)
	assert.Equal(t, detail.Student.Attendance, detail.Metrics.Attendance.Value)

	w = app.do(t, http.MethodGet, "/api/v1/students/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportStudents(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "teacher@school.edu")

	w := app.do(t, http.MethodGet, "/api/v1/students/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "30", w.Header().Get("X-Total-Count"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 31)
}

func TestRegenerateRequiresStaffRole(t *testing.T) {
	app := newTestApp(t)

	teacher := app.login(t, "teacher@school.edu")
	w := app.do(t, http.MethodPost, "/api/v1/students/regenerate", teacher, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	before := app.deps.Repos.RosterRepository.Current().Version

	admin := app.login(t, "admin@school.edu")
	w = app.do(t, http.MethodPost, "/api/v1/students/regenerate", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dto.DashboardStats
	decode(t, w, &stats)
	assert.Equal(t, 30, stats.TotalStudents)
	assert.Greater(t, app.deps.Repos.RosterRepository.Current().Version, before)
}

func TestInterventions(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "jane.mentor@school.edu")

	w := app.do(t, http.MethodPost, "/api/v1/students/1/interventions", token, dto.CreateInterventionRequest{Title: "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "Please fill in all required fields.", env.Error.Message)

	w = app.do(t, http.MethodPost, "/api/v1/students/1/interventions", token, dto.CreateInterventionRequest{
		Type:        "call",
		Title:       "Check-in call",
		Description: "Talked about missed classes.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Intervention
	decode(t, w, &created)
	assert.Equal(t, "Jane Mentor", created.Mentor)
	assert.Equal(t, models.OutcomeScheduled, created.Outcome)

	w = app.do(t, http.MethodGet, "/api/v1/students/1/interventions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.Intervention
	decode(t, w, &history)
	require.NotEmpty(t, history)
	assert.Equal(t, created.ID, history[0].ID)
}

func TestInsightsAndEmail(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "jane.mentor@school.edu")

	w := app.do(t, http.MethodPost, "/api/v1/students/1/insights/risk_story", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var insight dto.InsightResponse
	decode(t, w, &insight)
	assert.Equal(t, "risk_story", insight.Kind)
	assert.NotEmpty(t, insight.Content)

	w = app.do(t, http.MethodPost, "/api/v1/students/1/insights/syllabus", token, dto.InsightRequest{Input: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/students/1/insights/horoscope", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/students/1/email", token, dto.SendEmailRequest{
		To:      "parent@example.com",
		Subject: "Checking in",
		Body:    "Hello",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sent dto.SendEmailResponse
	decode(t, w, &sent)
	assert.True(t, sent.Delivered)
}

func TestRiskEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "jane.mentor@school.edu")

	w := app.do(t, http.MethodPost, "/api/v1/risk/score", token, map[string]any{
		"attendance":   40,
		"averageMarks": 30,
		"feeStatus":    "overdue",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var score dto.RiskScoreResponse
	decode(t, w, &score)
	assert.Equal(t, models.RiskHigh, score.RiskLevel)

	w = app.do(t, http.MethodPost, "/api/v1/risk/score", token, map[string]any{"feeStatus": "paid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &score)
	assert.Equal(t, 100, score.RiskScore)
	assert.Equal(t, models.RiskHigh, score.RiskLevel)

	w = app.do(t, http.MethodPost, "/api/v1/risk/score", token, map[string]any{"feeStatus": "late"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/students?page=92233720368547760&size=100", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/risk/predict/defaults", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	defaults := decode(t, w, nil).Data

	req := httptest.NewRequest(http.MethodPost, "/api/v1/risk/predict", bytes.NewReader(defaults))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestUploadPublishesNotifications(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "jane.mentor@school.edu")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range map[string]string{"grades.csv": "id,score\n1,90\n", "notes.pdf": "%PDF"} {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var resp dto.UploadResponse
	decode(t, w, &resp)
	assert.Len(t, resp.Accepted, 1)
	assert.Len(t, resp.Skipped, 1)

	app.deps.UploadService.Wait()

	w = app.do(t, http.MethodGet, "/api/v1/notifications?limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recent []notify.Notification
	decode(t, w, &recent)

	var messages []string
	for _, n := range recent {
		messages = append(messages, n.Message)
	}
	assert.Contains(t, messages, "Data integration complete! Dashboard updated.")

	other := app.login(t, "someone.mentor@school.edu")
	w = app.do(t, http.MethodGet, "/api/v1/notifications", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var otherRecent []notify.Notification
	decode(t, w, &otherRecent)
	for _, n := range otherRecent {
		assert.NotEqual(t, "Data integration complete! Dashboard updated.", n.Message)
	}
}

func TestLogoutClosesNotificationSocket(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.deps.Hub.Run(ctx)

	server := httptest.NewServer(app.router)
	defer server.Close()

	token := app.login(t, "jane.mentor@school.edu")
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/notifications/ws?access_token=" + token
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return app.deps.Hub.ClientCount("") == 1 }, time.Second, 10*time.Millisecond)

	w := app.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, gorilla.IsCloseError(err, gorilla.CloseNoStatusReceived), "unexpected read result: %v", err)
	assert.Eventually(t, func() bool { return app.deps.Hub.ClientCount("") == 0 }, time.Second, 10*time.Millisecond)
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"students":30`)

	app.do(t, http.MethodGet, "/api/v1/dashboard", "", nil)
	w = app.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mentoraid_http_requests_total")

	w = app.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MentorAid API")
	assert.Contains(t, w.Body.String(), "mentoraid.test:9443")
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/mentoraid/internal/app/controllers"
	appRepos "github.com/yigit/mentoraid/internal/app/repositories"
	appRoutes "github.com/yigit/mentoraid/internal/app/routes"
	appServices "github.com/yigit/mentoraid/internal/app/services"
	"github.com/yigit/mentoraid/internal/config"
	appMiddleware "github.com/yigit/mentoraid/internal/middleware"
	pkgAuth "github.com/yigit/mentoraid/internal/pkg/auth"
	"github.com/yigit/mentoraid/internal/pkg/email"
	"github.com/yigit/mentoraid/internal/pkg/filestorage"
	"github.com/yigit/mentoraid/internal/pkg/helpers"
	"github.com/yigit/mentoraid/internal/pkg/logger"
	"github.com/yigit/mentoraid/internal/pkg/metrics"
	"github.com/yigit/mentoraid/internal/pkg/notify"
	"github.com/yigit/mentoraid/internal/pkg/scheduler"
	"github.com/yigit/mentoraid/internal/pkg/session"
	"github.com/yigit/mentoraid/internal/pkg/textgen"
	"github.com/yigit/mentoraid/internal/pkg/websocket"
	"github.com/yigit/mentoraid/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	StudentService      appServices.StudentService
	DashboardService    appServices.DashboardService
	InterventionService appServices.InterventionService
	InsightService      appServices.InsightService
	EmailService        appServices.EmailService
	RiskService         appServices.RiskService
	UploadService       appServices.UploadService

	AuthController         *appControllers.AuthController
	DashboardController    *appControllers.DashboardController
	StudentController      *appControllers.StudentController
	InterventionController *appControllers.InterventionController
	InsightController      *appControllers.InsightController
	RiskController         *appControllers.RiskController
	UploadController       *appControllers.UploadController
	NotificationController *appControllers.NotificationController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Sessions       *session.MemoryStore
	Bus            *notify.Bus
	Hub            *websocket.Hub
	WSHandler      *websocket.Handler
	Bridge         *websocket.Bridge
	Metrics        *metrics.Metrics
	FileStorage    *filestorage.LocalStorage
	Scheduler      *scheduler.Scheduler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: "mentoraid",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes repositories, services and controllers.
// Background work started by services is bound to baseCtx.
func BuildDependencies(baseCtx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var err error
	deps.Metrics, err = metrics.New()
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to register metrics")
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	deps.Bus = notify.NewBus(notify.Options{
		DefaultDuration: helpers.ParseDuration(cfg.Notifications.DefaultDuration, notify.DefaultDuration),
		HistorySize:     cfg.Notifications.HistorySize,
		OnPublish:       func(n notify.Notification) { deps.Metrics.NotificationPublished(string(n.Type)) },
		OnDrop:          func(notify.Notification) { deps.Metrics.NotificationDropped() },
	}, lgr.With().Str("component", "notify").Logger())

	deps.Sessions = session.NewMemoryStore()
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Repos = appRepos.NewRepositories()

	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	generator, err := textgen.NewSimulated(helpers.ParseDuration(cfg.Simulation.AILatency, textgen.DefaultLatency), lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to load insight templates")
		return nil, fmt.Errorf("failed to initialize text generator: %w", err)
	}

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
	}, lgr)
	if !sender.Configured() {
		lgr.Warn().Msg("SMTP not configured, guardian emails will only be logged")
	}

	// Initialize services
	deps.AuthService = appServices.NewAuthService(appServices.AuthConfig{
		LoginLatency:    helpers.ParseDuration(cfg.Simulation.LoginLatency, 2*time.Second),
		ProviderLatency: helpers.ParseDuration(cfg.Simulation.ProviderLatency, 1500*time.Millisecond),
		AccessCodeHash:  cfg.Auth.AccessCodeHash,
		SessionTTL:      helpers.ParseDuration(cfg.Auth.SessionTTL, 8*time.Hour),
		// Open dashboard sockets of the session stop receiving notifications
		OnLogout: func(sessionID string) { deps.Hub.Disconnect(sessionID) },
	}, deps.Sessions, deps.JWTService, deps.Metrics, lgr)

	deps.StudentService = appServices.NewStudentService(
		deps.Repos.RosterRepository,
		deps.Repos.InterventionRepository,
		seed.NewGenerator(cfg.Dataset.Seed),
		cfg.Dataset.Size,
		deps.Bus,
		deps.Metrics,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.RosterRepository, deps.StudentService, lgr)
	deps.InterventionService = appServices.NewInterventionService(
		deps.Repos.RosterRepository,
		deps.Repos.InterventionRepository,
		deps.Bus,
		lgr,
	)
	deps.InsightService = appServices.NewInsightService(deps.Repos.RosterRepository, generator, deps.Bus, deps.Metrics, lgr)
	deps.EmailService = appServices.NewEmailService(deps.Repos.RosterRepository, sender, deps.Bus, lgr)
	deps.RiskService = appServices.NewRiskService()
	deps.UploadService = appServices.NewUploadService(
		baseCtx,
		deps.FileStorage,
		helpers.ParseDuration(cfg.Simulation.ProcessingLatency, 2*time.Second),
		deps.Bus,
		deps.Metrics,
		lgr,
	)

	if _, err := deps.StudentService.Regenerate(baseCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to generate initial roster")
		return nil, fmt.Errorf("failed to generate initial roster: %w", err)
	}

	deps.Scheduler, err = buildScheduler(cfg, deps, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to schedule maintenance jobs")
		return nil, err
	}

	deps.Hub = websocket.NewHub(lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)
	deps.Bridge = websocket.NewBridge(deps.Bus, deps.Hub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Sessions)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.InterventionController = appControllers.NewInterventionController(deps.InterventionService, lgr)
	deps.InsightController = appControllers.NewInsightController(deps.InsightService, deps.EmailService)
	deps.RiskController = appControllers.NewRiskController(deps.RiskService)
	deps.UploadController = appControllers.NewUploadController(deps.UploadService, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.Bus)

	return deps, nil
}

// buildScheduler registers the session sweep and upload retention jobs
func buildScheduler(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*scheduler.Scheduler, error) {
	sched := scheduler.New(lgr.With().Str("component", "scheduler").Logger())

	err := sched.Add("session-sweep", cfg.Maintenance.SessionSweep, func(context.Context) error {
		if removed := deps.Sessions.Sweep(); removed > 0 {
			lgr.Debug().Int("removed", removed).Msg("Expired sessions swept")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	retention := helpers.ParseDuration(cfg.Maintenance.UploadRetention, 24*time.Hour)
	err = sched.Add("upload-cleanup", cfg.Maintenance.UploadCleanup, func(context.Context) error {
		_, err := deps.FileStorage.PruneBefore(time.Now().Add(-retention))
		return err
	})
	if err != nil {
		return nil, err
	}

	return sched, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.RequestMetrics(deps.Metrics))
	router.MaxMultipartMemory = appServices.MaxUploadSize

	appRoutes.SetupSwagger(router, cfg.Server.BaseURL)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.StudentController,
		deps.InterventionController,
		deps.InsightController,
		deps.RiskController,
		deps.UploadController,
		deps.NotificationController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.GET("/health", func(c *gin.Context) {
		snapshot := deps.Repos.RosterRepository.Current()
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"students":      snapshot.Len(),
			"rosterVersion": snapshot.Version,
			"clients":       deps.Hub.ClientCount(""),
		})
	})

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
		lgr.Info().Str("path", cfg.Metrics.Path).Msg("Prometheus metrics enabled")
	}

	return router
}

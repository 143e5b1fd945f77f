package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DotEnvFile is read from the working directory when present
const DotEnvFile = ".env"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath     string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		BaseURL         string `yaml:"base_url" env:"SERVER_BASE_URL"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Dataset struct {
		Size int   `yaml:"size" env:"DATASET_SIZE"`
		Seed int64 `yaml:"seed" env:"DATASET_SEED"`
	} `yaml:"dataset"`

	Simulation struct {
		AILatency         string `yaml:"ai_latency" env:"SIM_AI_LATENCY"`
		LoginLatency      string `yaml:"login_latency" env:"SIM_LOGIN_LATENCY"`
		ProviderLatency   string `yaml:"provider_latency" env:"SIM_PROVIDER_LATENCY"`
		ProcessingLatency string `yaml:"processing_latency" env:"SIM_PROCESSING_LATENCY"`
	} `yaml:"simulation"`

	Auth struct {
		AccessCodeHash string `yaml:"access_code_hash" env:"AUTH_ACCESS_CODE_HASH"`
		SessionTTL     string `yaml:"session_ttl" env:"AUTH_SESSION_TTL"`
	} `yaml:"auth"`

	Notifications struct {
		DefaultDuration string `yaml:"default_duration" env:"NOTIFY_DEFAULT_DURATION"`
		HistorySize     int    `yaml:"history_size" env:"NOTIFY_HISTORY_SIZE"`
		NATSURL         string `yaml:"nats_url" env:"NOTIFY_NATS_URL"`
		NATSSubject     string `yaml:"nats_subject" env:"NOTIFY_NATS_SUBJECT"`
	} `yaml:"notifications"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	Maintenance struct {
		SessionSweep    string `yaml:"session_sweep" env:"MAINTENANCE_SESSION_SWEEP"`
		UploadCleanup   string `yaml:"upload_cleanup" env:"MAINTENANCE_UPLOAD_CLEANUP"`
		UploadRetention string `yaml:"upload_retention" env:"MAINTENANCE_UPLOAD_RETENTION"`
	} `yaml:"maintenance"`

	Email struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"email"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; defaults plus env are enough to boot
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./storage/uploads"
	config.Server.BaseURL = "http://localhost:8080"
	config.Server.ShutdownTimeout = "10s"

	config.JWT.AccessTokenExpiration = "8h"
	config.JWT.Issuer = "mentoraid.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Dataset.Size = 150

	config.Simulation.AILatency = "2s"
	config.Simulation.LoginLatency = "2s"
	config.Simulation.ProviderLatency = "1500ms"
	config.Simulation.ProcessingLatency = "2s"

	config.Auth.SessionTTL = "8h"

	config.Notifications.DefaultDuration = "5s"
	config.Notifications.HistorySize = 50
	config.Notifications.NATSSubject = "mentoraid.notifications"

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	config.Maintenance.SessionSweep = "@every 1m"
	config.Maintenance.UploadCleanup = "@hourly"
	config.Maintenance.UploadRetention = "24h"

	config.Email.Port = 587
	config.Email.FromName = "MentorAid"
	config.Email.FromEmail = "noreply@school.edu"
}

// LoadDotEnv exports the variables of a dotenv file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Dataset.Size < 0 {
		return fmt.Errorf("dataset size must not be negative")
	}

	if config.Notifications.HistorySize < 0 {
		return fmt.Errorf("notification history size must not be negative")
	}

	durations := map[string]string{
		"JWT access token expiration":   config.JWT.AccessTokenExpiration,
		"server shutdown timeout":       config.Server.ShutdownTimeout,
		"simulation AI latency":         config.Simulation.AILatency,
		"simulation login latency":      config.Simulation.LoginLatency,
		"simulation provider latency":   config.Simulation.ProviderLatency,
		"simulation processing latency": config.Simulation.ProcessingLatency,
		"session TTL":                   config.Auth.SessionTTL,
		"notification default duration": config.Notifications.DefaultDuration,
		"upload retention":              config.Maintenance.UploadRetention,
	}
	for name, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if config.Auth.AccessCodeHash != "" {
		if _, err := bcrypt.Cost([]byte(config.Auth.AccessCodeHash)); err != nil {
			return fmt.Errorf("auth access code hash is not a bcrypt hash: %w", err)
		}
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/'")
	}

	return nil
}

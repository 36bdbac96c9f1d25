package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

type AppConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	Port          string `env:"PORT"    envDefault:"8088"`
	FrontendURL   string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	AdminUsername string `env:"APP_ADMIN_USERNAME"`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER"   envDefault:"postgres"`
	Host       string `env:"DB_HOST"     envDefault:"localhost"`
	Port       string `env:"DB_PORT"     envDefault:"5432"`
	User       string `env:"DB_USER"     envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD" envDefault:"password"`
	Name       string `env:"DB_NAME"     envDefault:"rosterhub_db"`
	SSLMode    string `env:"DB_SSLMODE"  envDefault:"disable"`
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"rosterhub.db"`
	MaxConns   int    `env:"DB_MAX_CONNS" envDefault:"10"`
	// ConnectTimeout bounds the startup retry loop for postgres.
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"30s"`
}

type JWTConfig struct {
	AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"  envDefault:"supersecret"`
	AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"60"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED"  envDefault:"false"`
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
	// EnqueueTimeout bounds a single enqueue from the request path.
	EnqueueTimeout time.Duration `env:"REDIS_ENQUEUE_TIMEOUT" envDefault:"2s"`
}

type RosterConfig struct {
	// InvitationTTL is how long a pending invitation may be accepted.
	InvitationTTL time.Duration `env:"ROSTER_INVITATION_TTL" envDefault:"336h"`
	// ExpirySchedule is the cron spec for the stale invitation sweep.
	ExpirySchedule string `env:"ROSTER_EXPIRY_SCHEDULE" envDefault:"@hourly"`
}

type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"5"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

type Config struct {
	App       AppConfig
	DB        DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Roster    RosterConfig
	RateLimit RateLimitConfig
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig reads an optional .env file and parses the environment into a Config.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found, relying on system environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JWT.AccessTokenSecret == "supersecret" {
		logger.Warn().Msg("Using default JWT secret. Set JWT_ACCESS_TOKEN_SECRET for production.")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		logger.Warn().Msg("Using default DB password in production. Set DB_PASSWORD.")
	}
	return &cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Roster.InvitationTTL <= 0 {
		return fmt.Errorf("ROSTER_INVITATION_TTL must be positive")
	}
	if c.JWT.AccessTokenExpiryMinutes <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_EXPIRY_MINUTES must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}
	return nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of the application.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg
		logger.Init(appConfig.App.LogLevel)

		if _, err = ConnectDB(appConfig); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It exits if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		logger.Fatal().Msg("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

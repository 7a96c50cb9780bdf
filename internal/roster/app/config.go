package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer    string // Issuer claim for session tokens
	PublicURL string // Base URL used in invitation links (default: http://localhost:8080)

	DatabaseFile string // Path to SQLite database file (default: ./rosterd.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	CookieName string // Session cookie name (default: rosterd_session)

	// Bootstrap credentials: when set and the store is empty, a super user
	// is created at startup.
	BootstrapEmail    string
	BootstrapPassword string
	BootstrapName     string

	// SMTP settings. When Host is empty, invitation mail is logged instead.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	SessionTTL    time.Duration // Session token lifetime (default: 720h)
	InvitationTTL time.Duration // Invitation redeemability window (default: 48h)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; a missing one is not an error.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:            getEnvOrDefault("ROSTERD_ISSUER", "rosterd"),
		PublicURL:         getEnvOrDefault("ROSTERD_PUBLIC_URL", "http://localhost:8080"),
		DatabaseFile:      getEnvOrDefault("ROSTERD_DATABASE_FILE", "rosterd.db"),
		PepperFile:        getEnvOrDefault("ROSTERD_PEPPER_FILE", "pepper"),
		CookieName:        getEnvOrDefault("ROSTERD_COOKIE_NAME", "rosterd_session"),
		BootstrapEmail:    os.Getenv("ROSTERD_BOOTSTRAP_EMAIL"),
		BootstrapPassword: os.Getenv("ROSTERD_BOOTSTRAP_PASSWORD"),
		BootstrapName:     getEnvOrDefault("ROSTERD_BOOTSTRAP_NAME", "Super User"),

		SMTPHost: os.Getenv("ROSTERD_SMTP_HOST"),
		SMTPPort: getEnvIntOrDefault("ROSTERD_SMTP_PORT", 587),
		SMTPUser: os.Getenv("ROSTERD_SMTP_USER"),
		SMTPPass: os.Getenv("ROSTERD_SMTP_PASS"),
		SMTPFrom: getEnvOrDefault("ROSTERD_SMTP_FROM", "noreply@localhost"),

		SessionTTL:    getEnvDurationOrDefault("ROSTERD_SESSION_TTL", 30*24*time.Hour),
		InvitationTTL: getEnvDurationOrDefault("ROSTERD_INVITATION_TTL", 48*time.Hour),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

// CookieSecure reports whether session cookies should carry the Secure
// attribute. Only plain-HTTP dev setups go without it.
func (c Config) CookieSecure() bool {
	return c.Env != "dev"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}

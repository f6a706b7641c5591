package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Token Issuer/Verifier
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// JWTClockSkew is the leeway applied when validating token timestamps.
	// Issuer/verifier clock drift is a real deployment concern, so the
	// tolerance is an explicit, tested constant rather than an implicit zero.
	JWTClockSkew time.Duration

	// Session Manager
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	// Email verification
	VerificationCodeTTL time.Duration

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Notification dispatch
	PostmarkServerToken string `mapstructure:"POSTMARK_SERVER_TOKEN"`
	EmailFromAddress    string `mapstructure:"EMAIL_FROM_ADDRESS"`

	// Analytics
	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
// In production the JWT secret and database URL are mandatory; the process
// refuses to start without them.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "168h")
	viper.SetDefault("JWT_ISSUER", "storynest-backend")
	viper.SetDefault("JWT_CLOCK_SKEW", "2m")
	viper.SetDefault("SESSION_TTL", "168h")
	viper.SetDefault("SESSION_SWEEP_INTERVAL", "1h")
	viper.SetDefault("VERIFICATION_CODE_TTL", "15m")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTMARK_SERVER_TOKEN", "")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "hello@storynest.app")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "dev-only-insecure-signing-key"
		log.Println("Warning: JWT_SECRET not set. Using insecure development key.")
	}

	if cfg.DatabaseURL == "" {
		if cfg.IsProduction {
			return nil, errors.New("PGSQL_URL must be set in production")
		}
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTExpiryDuration = parseDurationOrDefault("JWT_EXPIRY_DURATION", 168*time.Hour)
	cfg.JWTClockSkew = parseDurationOrDefault("JWT_CLOCK_SKEW", 2*time.Minute)
	cfg.SessionTTL = parseDurationOrDefault("SESSION_TTL", 168*time.Hour)
	cfg.SessionSweepInterval = parseDurationOrDefault("SESSION_SWEEP_INTERVAL", time.Hour)
	cfg.VerificationCodeTTL = parseDurationOrDefault("VERIFICATION_CODE_TTL", 15*time.Minute)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "storynest-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google OAuth will not function.")
	}

	cfg.PostmarkServerToken = viper.GetString("POSTMARK_SERVER_TOKEN")
	if cfg.PostmarkServerToken == "" {
		log.Println("Warning: POSTMARK_SERVER_TOKEN not set. Emails will be logged, not sent.")
	}
	cfg.EmailFromAddress = viper.GetString("EMAIL_FROM_ADDRESS")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

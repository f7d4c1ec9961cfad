package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string
	RateLimit          string
	RedisURL           string

	PosthogAPIKey          string
	NotificationBufferSize int

	// Policy holds the association defaults. Teams may override them in team_settings.
	Policy domain.Policy
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	defaults := domain.DefaultPolicy()

	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("NOTIFICATION_BUFFER_SIZE", 256)

	v.SetDefault("POLICY_REQUIRED_APPROVALS", defaults.RequiredApprovals)
	v.SetDefault("POLICY_MIN_INDEPENDENT_REPS", defaults.MinIndependentReps)
	v.SetDefault("POLICY_DUAL_APPROVAL_THRESHOLD_CENTS", defaults.DualApprovalThresholdCents)
	v.SetDefault("POLICY_RECEIPT_THRESHOLD", defaults.ReceiptThreshold.String())
	v.SetDefault("POLICY_TRANSACTION_LIMIT", defaults.TransactionLimit.String())
	v.SetDefault("POLICY_CATEGORY_OVERRUN_TOLERANCE_PERCENT", defaults.CategoryOverrunTolerancePercent.String())
	v.SetDefault("POLICY_CASH_LIKE_REQUIRES_REVIEW", defaults.CashLikeRequiresReview)
	v.SetDefault("POLICY_HIGH_SEVERITY_AMOUNT", defaults.HighSeverityAmount.String())
	v.SetDefault("POLICY_CHEQUE_IMAGE_THRESHOLD_CENTS", defaults.ChequeImageThresholdCents)
	v.SetDefault("POLICY_MATCH_WINDOW_DAYS", int(defaults.MatchWindow/(24*time.Hour)))
	v.SetDefault("POLICY_MAX_MATCH_CANDIDATES", defaults.MaxMatchCandidates)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:              v.GetString("RATE_LIMIT"),
		RedisURL:               v.GetString("REDIS_URL"),
		PosthogAPIKey:          v.GetString("POSTHOG_API_KEY"),
		NotificationBufferSize: v.GetInt("NOTIFICATION_BUFFER_SIZE"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set.", slog.String("default", cfg.Port))
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.Policy = policyFromViper(v)
	return cfg
}

func policyFromViper(v *viper.Viper) domain.Policy {
	p := domain.DefaultPolicy()
	p.RequiredApprovals = v.GetInt("POLICY_REQUIRED_APPROVALS")
	p.MinIndependentReps = v.GetInt("POLICY_MIN_INDEPENDENT_REPS")
	p.DualApprovalThresholdCents = v.GetInt64("POLICY_DUAL_APPROVAL_THRESHOLD_CENTS")
	p.ReceiptThreshold = decimalSetting(v, "POLICY_RECEIPT_THRESHOLD", p.ReceiptThreshold)
	p.TransactionLimit = decimalSetting(v, "POLICY_TRANSACTION_LIMIT", p.TransactionLimit)
	p.CategoryOverrunTolerancePercent = decimalSetting(v, "POLICY_CATEGORY_OVERRUN_TOLERANCE_PERCENT", p.CategoryOverrunTolerancePercent)
	p.CashLikeRequiresReview = v.GetBool("POLICY_CASH_LIKE_REQUIRES_REVIEW")
	p.HighSeverityAmount = decimalSetting(v, "POLICY_HIGH_SEVERITY_AMOUNT", p.HighSeverityAmount)
	p.ChequeImageThresholdCents = v.GetInt64("POLICY_CHEQUE_IMAGE_THRESHOLD_CENTS")
	p.MaxMatchCandidates = v.GetInt("POLICY_MAX_MATCH_CANDIDATES")

	if days := v.GetInt("POLICY_MATCH_WINDOW_DAYS"); days > 0 {
		p.MatchWindow = time.Duration(days) * 24 * time.Hour
	} else {
		slog.Warn("Invalid value for POLICY_MATCH_WINDOW_DAYS. Using default.", slog.Int("value", days))
	}
	return p
}

// decimalSetting parses a decimal key, keeping fallback when the value is not a number.
func decimalSetting(v *viper.Viper, key string, fallback decimal.Decimal) decimal.Decimal {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("Invalid decimal setting. Using default.",
			slog.String("key", key), slog.String("value", raw), slog.String("default", fallback.String()))
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(newTestViper(nil))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.NotEmpty(t, cfg.JWTSecret)

	assert.Equal(t, 2, cfg.Policy.RequiredApprovals)
	assert.Equal(t, 1, cfg.Policy.MinIndependentReps)
	assert.Equal(t, int64(20000), cfg.Policy.DualApprovalThresholdCents)
	assert.True(t, cfg.Policy.ReceiptThreshold.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.Policy.TransactionLimit.Equal(decimal.NewFromInt(5000)))
	assert.True(t, cfg.Policy.CashLikeRequiresReview)
	assert.Equal(t, int64(50000), cfg.Policy.ChequeImageThresholdCents)
	assert.Equal(t, 14*24*time.Hour, cfg.Policy.MatchWindow)
}

func TestFromViper_PolicyOverrides(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]any{
		"POLICY_REQUIRED_APPROVALS":                 3,
		"POLICY_RECEIPT_THRESHOLD":                  "75.50",
		"POLICY_CATEGORY_OVERRUN_TOLERANCE_PERCENT": "10",
		"POLICY_CASH_LIKE_REQUIRES_REVIEW":          false,
		"POLICY_MATCH_WINDOW_DAYS":                  7,
		"CORS_ALLOWED_ORIGINS":                      "https://a.example, https://b.example ,",
	}))

	assert.Equal(t, 3, cfg.Policy.RequiredApprovals)
	assert.True(t, cfg.Policy.ReceiptThreshold.Equal(decimal.RequireFromString("75.50")))
	assert.True(t, cfg.Policy.CategoryOverrunTolerancePercent.Equal(decimal.NewFromInt(10)))
	assert.False(t, cfg.Policy.CashLikeRequiresReview)
	assert.Equal(t, 7*24*time.Hour, cfg.Policy.MatchWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_BadValuesFallBack(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]any{
		"POLICY_TRANSACTION_LIMIT": "lots",
		"POLICY_MATCH_WINDOW_DAYS": 0,
	}))

	assert.True(t, cfg.Policy.TransactionLimit.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 14*24*time.Hour, cfg.Policy.MatchWindow)
}

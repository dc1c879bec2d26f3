package config_test

import (
	"testing"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PGSQL_URL", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "token", cfg.AuthCookieName)
	assert.Equal(t, 3*time.Second, cfg.ApprovalLockWait)
	assert.False(t, cfg.NotifyOnPlainApproval)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.AuditEnabled())
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("REPORT_CACHE_TTL", "soon")
	t.Setenv("APPROVAL_LOCK_TTL", "30s")
	t.Setenv("NOTIFY_ON_PLAIN_APPROVAL", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.ApprovalLockTTL)
	assert.True(t, cfg.NotifyOnPlainApproval)
	assert.True(t, cfg.RedisEnabled())
}

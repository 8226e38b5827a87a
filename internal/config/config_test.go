package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
jwt:
  secret: s
merchant:
  email: m@example.com
  password_hash: hash
checkout:
  payment_timeout: 3s
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "29.99", cfg.Checkout.AddOnPrice)
	assert.Equal(t, 3*time.Second, cfg.Checkout.PaymentTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Checkout.IdempotencyTTL)
	assert.Equal(t, time.Minute, cfg.Scheduler.SweepInterval)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadRequiresSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: prod\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

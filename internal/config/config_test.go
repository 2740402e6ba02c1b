package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("TREASURY_PRIME_USERNAME", "key-id")
	t.Setenv("TREASURY_PRIME_PASSWORD", "key-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCOUNT_ID", "acct_123")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultUpstreamURL, cfg.Upstream.BaseURL)
	assert.Equal(t, "key-id", cfg.Upstream.Username)
	assert.Equal(t, "key-secret", cfg.Upstream.Password)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "acct_123", cfg.Viewer.AccountID)
	assert.Equal(t, "http://localhost:3001", cfg.Viewer.ProxyURL)
	assert.NoError(t, cfg.ValidateProxy())
	assert.NoError(t, cfg.ValidateViewer())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yml := `
log_level: debug
upstream:
  base_url: https://bank.example.com/
  username: file-user
  password_secret: projects/p/secrets/tp-password/versions/latest
viewer:
  account_id: acct_file
  proxy_url: http://proxy.internal:3001/
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://bank.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "http://proxy.internal:3001", cfg.Viewer.ProxyURL)
	assert.Equal(t, "acct_file", cfg.Viewer.AccountID)
	assert.True(t, cfg.NeedsSecretManager())
	assert.False(t, cfg.NeedsKMS())
	assert.NoError(t, cfg.ValidateProxy())
}

func TestValidateProxy(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "3001"},
			Upstream: UpstreamConfig{BaseURL: DefaultUpstreamURL, Username: "u", Password: "p"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().ValidateProxy())
	})

	t.Run("missing username", func(t *testing.T) {
		cfg := base()
		cfg.Upstream.Username = ""
		assert.ErrorContains(t, cfg.ValidateProxy(), "username")
	})

	t.Run("missing password", func(t *testing.T) {
		cfg := base()
		cfg.Upstream.Password = ""
		assert.ErrorContains(t, cfg.ValidateProxy(), "password")
	})

	t.Run("ciphertext without key", func(t *testing.T) {
		cfg := base()
		cfg.Upstream.Password = ""
		cfg.Upstream.PasswordCiphertext = "c2VjcmV0"
		assert.ErrorContains(t, cfg.ValidateProxy(), "kms_key_name")

		cfg.GCP.KMSKeyName = "projects/p/locations/l/keyRings/r/cryptoKeys/k"
		assert.NoError(t, cfg.ValidateProxy())
		assert.True(t, cfg.NeedsKMS())
	})

	t.Run("bad base url", func(t *testing.T) {
		cfg := base()
		cfg.Upstream.BaseURL = "not a url"
		assert.Error(t, cfg.ValidateProxy())
	})
}

func TestValidateViewerRequiresAccount(t *testing.T) {
	cfg := &Config{Viewer: ViewerConfig{Port: "5173", ProxyURL: "http://localhost:3001"}}
	assert.Error(t, cfg.ValidateViewer())

	cfg.Viewer.AccountID = "acct_1"
	assert.NoError(t, cfg.ValidateViewer())
}

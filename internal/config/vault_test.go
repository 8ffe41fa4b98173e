package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ktsarnakliyski/JobSpresso/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *errors.Logger {
	logger, _ := errors.New("debug", "")
	return logger
}

func TestApplyGeminiKeyToConfig(t *testing.T) {
	t.Run("fills empty operation keys", func(t *testing.T) {
		config := &Config{}
		applyGeminiKeyToConfig(config, "vault-key")

		assert.Equal(t, "vault-key", config.AI.APIKey)
		assert.Equal(t, "vault-key", config.AI.Analyze.APIKey)
		assert.Equal(t, "vault-key", config.AI.Improve.APIKey)
	})

	t.Run("preserves explicit operation keys", func(t *testing.T) {
		config := &Config{}
		config.AI.Analyze.APIKey = "analyze-key"
		applyGeminiKeyToConfig(config, "vault-key")

		assert.Equal(t, "vault-key", config.AI.APIKey)
		assert.Equal(t, "analyze-key", config.AI.Analyze.APIKey)
		assert.Equal(t, "vault-key", config.AI.Improve.APIKey)
	})
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, newTestLogger())
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestResolveVaultToken(t *testing.T) {
	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "hvs.abc"})
		require.NoError(t, err)
		assert.Equal(t, "hvs.abc", token)
	})

	t.Run("token from file, trimmed", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("hvs.fromfile\n"), 0o600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile})
		require.NoError(t, err)
		assert.Equal(t, "hvs.fromfile", token)
	})

	t.Run("missing token is an error", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{})
		assert.Error(t, err)
	})

	t.Run("missing token file is an error", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token"})
		assert.Error(t, err)
	})
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{}
	assert.NoError(t, ApplyVaultSecrets(config, newTestLogger()))
}

func TestReadKVv2NilClient(t *testing.T) {
	var vc *VaultClient
	_, err := vc.readKVv2("secret/data/test")
	assert.Error(t, err)
}

func TestMaskSecretValue(t *testing.T) {
	assert.Equal(t, "", maskSecretValue(""))
	assert.Equal(t, "****", maskSecretValue("short"))
	assert.Equal(t, "sk-1****6789", maskSecretValue("sk-123456789"))
}

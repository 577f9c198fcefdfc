package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"resumelens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVaultToken(t *testing.T) {
	t.Run("direct token", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct-token"})

		assert.NoError(t, err)
		assert.Equal(t, "direct-token", token)
	})

	t.Run("token from file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  file-token\n"), 0600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile})

		assert.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("direct token takes precedence over file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("file-token"), 0600))

		token, err := resolveVaultToken(VaultConfig{Token: "direct-token", TokenFile: tokenFile})

		assert.NoError(t, err)
		assert.Equal(t, "direct-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read vault token file")
	})

	t.Run("no token configured", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})
}

func TestNewVaultClientDisabled(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	client, err := NewVaultClient(VaultConfig{Enabled: false}, logger)

	assert.NoError(t, err)
	assert.Nil(t, client)
}

// Test ApplyVaultSecrets function with disabled vault
func TestApplyVaultSecretsDisabled(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	config := &Config{
		Vault: VaultConfig{Enabled: false},
	}

	err := ApplyVaultSecrets(config, logger)

	assert.NoError(t, err)
	assert.Empty(t, config.Server.APIKeys)
	assert.Empty(t, config.AI.APIKey)
}

func TestGetSecretV2NilClient(t *testing.T) {
	var client *VaultClient

	_, err := client.GetSecretV2("secret/data/test")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vault client not initialized")
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_MissingVersion(t *testing.T) {
	// Unset ENV_SCHEMA_VERSION
	os.Unsetenv("ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	os.Setenv("ENV_SCHEMA_VERSION", "0.9")
	defer os.Unsetenv("ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	// Set version but leave others unset
	os.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	defer os.Unsetenv("ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
}

func TestValidateDiscordEnv_MissingFrontendVars(t *testing.T) {
	setRequiredVars(t)
	os.Unsetenv("DISCORD_TOKEN")
	os.Unsetenv("DISCORD_APP_ID")
	os.Unsetenv("ENGINE_BASE_URL")

	err := ValidateDiscordEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
	assert.Contains(t, err.Error(), "DISCORD_APP_ID")
}

func TestValidateDiscordEnv_AllSet(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "12345")
	t.Setenv("ENGINE_BASE_URL", "http://localhost:8080")

	require.NoError(t, ValidateDiscordEnv())
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("RIOT_API_KEY", "RGAPI-your-key-here")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	assert.Len(t, warnings, 3, "Should have 3 warnings")
	if len(warnings) >= 3 {
		assert.Contains(t, warnings[0], "DB_PASSWORD")
		assert.Contains(t, warnings[1], "API_KEY")
		assert.Contains(t, warnings[2], "RIOT_API_KEY")
	}
}

// setRequiredVars sets every engine-required variable to a placeholder value
func setRequiredVars(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	for _, envVar := range RequiredEnvVars {
		if envVar == "ENV_SCHEMA_VERSION" {
			continue
		}
		t.Setenv(envVar, "test_value")
	}
}

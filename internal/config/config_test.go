package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/talent",
		"chroma_url": "http://chroma:8000",
		"job_collection": "openings"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/talent", cfg.DatabaseURL)
	assert.Equal(t, "openings", cfg.JobCollection)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfigFile(t, "{not json")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/talent"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "http://localhost:8000", merged.ChromaURL)
	assert.Equal(t, "jobs", merged.JobCollection)
	assert.Equal(t, "candidates", merged.CandidateCollection)
	// Explicit values survive the merge.
	assert.Equal(t, "postgres://localhost/talent", merged.DatabaseURL)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_URL", "postgres://env/talent")
	t.Setenv("CANDIDATE_COLLECTION", "talent_pool")

	cfg := Config{Port: 8080, DatabaseURL: "postgres://file/talent"}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "postgres://env/talent", cfg.DatabaseURL)
	assert.Equal(t, "talent_pool", cfg.CandidateCollection)
}

func TestApplyEnv_BadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	cfg := Config{}
	assert.Error(t, cfg.ApplyEnv())
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.DatabaseURL = "postgres://localhost/talent"
	assert.NoError(t, cfg.Validate())

	missing := cfg
	missing.DatabaseURL = ""
	assert.Error(t, missing.Validate())

	badPort := cfg
	badPort.Port = 0
	assert.Error(t, badPort.Validate())

	badWeights := cfg
	badWeights.WeightsFile = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, badWeights.Validate())
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig_BadExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"job_url": "https://example.com/job",
		"model": "gemini-2.5-flash",
		"temperature": 0.4,
		"port": 9090,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 0.4, cfg.Temperature)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		Job:    "job.txt",
		JobURL: "https://example.com/job",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_TemperatureRange(t *testing.T) {
	cfg := &Config{Temperature: 1.5}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Temperature: 0.7}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: 8080}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingFiles(t *testing.T) {
	cfg := &Config{Resume: "/nonexistent/resume.pdf"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")

	cfg = &Config{Job: "/nonexistent/job.txt"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Model: "gemini-2.5-pro"}
	defaults := Config{
		Model:       "gemini-2.5-flash",
		APIKey:      "default-key",
		Temperature: 0.2,
		Port:        8080,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "gemini-2.5-pro", merged.Model, "explicit value wins")
	assert.Equal(t, "default-key", merged.APIKey, "empty value filled from defaults")
	assert.Equal(t, 0.2, merged.Temperature)
	assert.Equal(t, 8080, merged.Port)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvDatabaseURL, "postgres://env")
	t.Setenv(EnvPort, "9999")

	cfg := &Config{}
	cfg.FromEnv()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, 9999, cfg.Port)
}

func TestFromEnv_DoesNotOverrideExplicit(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	cfg := &Config{APIKey: "explicit-key"}
	cfg.FromEnv()

	assert.Equal(t, "explicit-key", cfg.APIKey)
}

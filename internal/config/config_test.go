package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"StoreBaseURL", cfg.StoreBaseURL, "https://store.steampowered.com"},
		{"ProtonDBBaseURL", cfg.ProtonDBBaseURL, "https://www.protondb.com"},
		{"CountryCode", cfg.CountryCode, "BR"},
		{"Language", cfg.Language, "brazilian"},
		{"RequestTimeout", cfg.RequestTimeout, 10 * time.Second},
		{"MaxRetries", cfg.MaxRetries, 0},
		{"MaxConcurrentCandidates", cfg.MaxConcurrentCandidates, 0},
		{"ListenAddr", cfg.ListenAddr, ":8080"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}

	require.Contains(t, cfg.RateLimits, "store")
	assert.Equal(t, 1, cfg.RateLimits["store"].Burst)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GAMESEARCH_STORE_BASE_URL", "https://test.store")
	t.Setenv("GAMESEARCH_PROTONDB_BASE_URL", "https://test.protondb")
	t.Setenv("GAMESEARCH_COUNTRY_CODE", "US")
	t.Setenv("GAMESEARCH_REQUEST_TIMEOUT", "3s")
	t.Setenv("GAMESEARCH_MAX_CONCURRENT_CANDIDATES", "4")
	t.Setenv("GAMESEARCH_RATE_LIMITS_STORE_RPS", "2.5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://test.store", cfg.StoreBaseURL)
	assert.Equal(t, "https://test.protondb", cfg.ProtonDBBaseURL)
	assert.Equal(t, "US", cfg.CountryCode)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 4, cfg.MaxConcurrentCandidates)
	assert.Equal(t, 2.5, cfg.RateLimits["store"].RPS)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamesearch.yaml")
	content := `
country_code: PT
language: portuguese
max_retries: 2
rate_limits:
  protondb:
    rps: 5
    burst: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "PT", cfg.CountryCode)
	assert.Equal(t, "portuguese", cfg.Language)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, RateLimitConfig{RPS: 5, Burst: 3}, cfg.RateLimits["protondb"])
	// Untouched keys keep their defaults
	assert.Equal(t, "https://store.steampowered.com", cfg.StoreBaseURL)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErrText string
	}{
		{
			name:        "negative concurrency",
			env:         map[string]string{"GAMESEARCH_MAX_CONCURRENT_CANDIDATES": "-1"},
			wantErrText: "max_concurrent_candidates",
		},
		{
			name:        "negative retries",
			env:         map[string]string{"GAMESEARCH_MAX_RETRIES": "-2"},
			wantErrText: "max_retries",
		},
		{
			name:        "zero timeout",
			env:         map[string]string{"GAMESEARCH_REQUEST_TIMEOUT": "0s"},
			wantErrText: "request_timeout",
		},
		{
			name:        "negative rate",
			env:         map[string]string{"GAMESEARCH_RATE_LIMITS_PROTONDB_RPS": "-1"},
			wantErrText: "rate_limits.protondb.rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrText)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"job_url": "https://example.com/job",
		"format": "compact",
		"output": "out",
		"max_pages": 2,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "compact", cfg.Format)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	badJSON := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{ invalid json }`), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"empty path", "", "config path is empty"},
		{"missing file", filepath.Join(t.TempDir(), "missing.json"), "failed to read config file"},
		{"invalid JSON", badJSON, "failed to parse config JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	jobFile := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(jobFile, []byte("Backend engineer"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, ""},
		{"valid", Config{Job: jobFile, Format: "standard", MaxPages: 1}, ""},
		{"mutually exclusive", Config{Job: jobFile, JobURL: "https://example.com"}, "mutually exclusive"},
		{"negative pages", Config{MaxPages: -1}, "max_pages"},
		{"unknown format", Config{Format: "fancy"}, "unknown layout format"},
		{"missing job file", Config{Job: "/no/such/job.txt"}, "job file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Format: "compact"}
	defaults := Config{
		Format:      "standard",
		Output:      "dist",
		JobURL:      "https://example.com/job",
		APIKey:      "key",
		DatabaseURL: "postgres://localhost/db",
		MaxPages:    2,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "compact", merged.Format)
	assert.Equal(t, "dist", merged.Output)
	assert.Equal(t, "https://example.com/job", merged.JobURL)
	assert.Equal(t, "key", merged.APIKey)
	assert.Equal(t, "postgres://localhost/db", merged.DatabaseURL)
	assert.Equal(t, 2, merged.MaxPages)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, DefaultMaxPages, merged.MaxPages)
	assert.Empty(t, merged.Format)
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")
	t.Setenv("RENDER_CACHE_SIZE", "")
	t.Setenv("FETCH_USE_BROWSER", "true")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/db", cfg.DatabaseURL)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.UseBrowser)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := LoadServerConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("RENDER_CACHE_SIZE", "0")
	_, err = LoadServerConfig()
	assert.Error(t, err)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "not-a-number")
	t.Setenv("TEST_ENV_BOOL", "yes-please")
	t.Setenv("TEST_ENV_DURATION", "90s")
	t.Setenv("TEST_ENV_STRING", "value")

	assert.Equal(t, 5, EnvInt("TEST_ENV_INT", 5))
	assert.True(t, EnvBool("TEST_ENV_BOOL", true))
	assert.Equal(t, 90*time.Second, EnvDuration("TEST_ENV_DURATION", time.Minute))
	assert.Equal(t, "value", EnvString("TEST_ENV_STRING", "default"))
	assert.Equal(t, "default", EnvString("TEST_ENV_UNSET_STRING", "default"))
	assert.Equal(t, []string{"a"}, EnvList("TEST_ENV_UNSET_LIST", []string{"a"}))
}

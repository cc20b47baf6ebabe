package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"input": "cv.yaml",
		"template": "europass",
		"database_url": "postgres://localhost/cv",
		"max_chars": 100,
		"strip_markup": true,
		"verbose": true,
		"log_mode": "production"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "cv.yaml", cfg.Input)
	assert.Equal(t, "europass", cfg.Template)
	assert.Equal(t, "postgres://localhost/cv", cfg.DatabaseURL)
	assert.Equal(t, 100, cfg.MaxChars)
	assert.True(t, cfg.StripMarkup)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Strict)
	assert.Equal(t, LogModeProduction, cfg.LogMode)
}

func TestLoadConfig_RelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cv-builder.json"), []byte(`{"port": 9090}`), 0644))
	t.Chdir(dir)

	cfg, err := LoadConfig("cv-builder.json")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
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
		Output:    "cv.tex",
		OutputDir: "out",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"negative max chars", Config{MaxChars: -1}, "max_chars"},
		{"port out of range", Config{Port: 70000}, "port"},
		{"unknown template", Config{Template: "neon"}, `unknown template "neon"`},
		{"bad log mode", Config{LogMode: "verbose"}, "log_mode"},
		{"missing custom template", Config{CustomTemplate: "/nonexistent/custom.tmpl"}, "template file not found"},
		{"missing input", Config{Input: "/nonexistent/cv.json"}, "input file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	input := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(input, []byte(`{}`), 0644))

	cfg := &Config{
		Input:    input,
		Template: "Banking",
		MaxChars: 90,
		LogMode:  LogModeDevelopment,
		Port:     8080,
	}

	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Input:       "default.json",
		Template:    "classic",
		DatabaseURL: "postgres://default",
		MaxChars:    90,
		LogMode:     LogModeDevelopment,
		Port:        8080,
	}

	partial := Config{
		Input:    "custom.yaml",
		Template: "europass",
		Verbose:  true,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom.yaml", merged.Input)
	assert.Equal(t, "europass", merged.Template)
	assert.True(t, merged.Verbose)

	// Default values should fill in empty fields
	assert.Equal(t, "postgres://default", merged.DatabaseURL)
	assert.Equal(t, 90, merged.MaxChars)
	assert.Equal(t, LogModeDevelopment, merged.LogMode)
	assert.Equal(t, 8080, merged.Port)
	assert.Empty(t, merged.Output)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Input:  "cv.json",
		Strict: true,
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "cv.json", merged.Input)
	assert.True(t, merged.Strict)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fexp/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
ui:
  theme: ocean
  color: false
log:
  level: DEBUG
  json: true
  file: /tmp/fexp.log
listing:
  hide:
    - ".*"
    - "*.{bak,swp}"
copy:
  progress: false
  progress_threshold: 1024
`
	invalidSyntaxYAML = `
ui:
  theme: "ocean
log: [
`
	invalidThemeYAML = `
ui:
  theme: neon
`
	invalidLevelYAML = `
log:
  level: loud
`
	invalidGlobYAML = `
listing:
  hide: ["[a-"]
`
	negativeThresholdYAML = `
copy:
  progress_threshold: -5
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "ocean", cfg.UI.Theme)
		assert.False(t, cfg.ColorEnabled())
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.JSON)
		assert.Equal(t, "/tmp/fexp.log", cfg.Log.File)
		assert.Equal(t, []string{".*", "*.{bak,swp}"}, cfg.Listing.Hide)
		assert.False(t, cfg.ProgressEnabled())
		assert.Equal(t, int64(1024), cfg.Copy.ProgressThreshold)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), "does_not_exist.yaml")
		cfg, err := config.LoadConfigFile(nonExistentPath)

		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		require.NotNil(t, cfg)

		defaultCfg := config.New()
		assert.Equal(t, defaultCfg, cfg)
		assert.Equal(t, "default", cfg.UI.Theme)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.True(t, cfg.ColorEnabled())
		assert.True(t, cfg.ProgressEnabled())
		assert.Equal(t, int64(config.DefaultProgressThreshold), cfg.Copy.ProgressThreshold)
		assert.Empty(t, cfg.Listing.Hide)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, "ui:\n  theme: dark\n"))
		require.NoError(t, err)
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.True(t, cfg.ProgressEnabled())
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))

		require.Error(t, err, "Loading invalid YAML should return an error")
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	invalid := map[string]struct {
		yaml string
		msg  string
	}{
		"theme":     {invalidThemeYAML, "unknown theme"},
		"log level": {invalidLevelYAML, "invalid log level"},
		"glob":      {invalidGlobYAML, "hide pattern 0"},
		"threshold": {negativeThresholdYAML, "progress threshold"},
	}
	for name, tc := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestYAML(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestValidate(t *testing.T) {
	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
	assert.NoError(t, config.New().Validate())
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.NotEmpty(t, theme["primary"], name)
		assert.NotEmpty(t, theme["error"], name)
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("no-such-theme"))
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("FEXP_THEME", "ocean")
		t.Setenv("FEXP_NO_COLOR", "true")
		t.Setenv("FEXP_LOG_LEVEL", "INFO")
		t.Setenv("FEXP_LOG_FILE", "/tmp/env.log")

		cfg := config.New()
		require.NoError(t, config.ApplyEnv(cfg))
		assert.Equal(t, "ocean", cfg.UI.Theme)
		assert.False(t, cfg.ColorEnabled())
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "/tmp/env.log", cfg.Log.File)
		assert.False(t, cfg.Log.JSON)
	})

	t.Run("unset keeps values", func(t *testing.T) {
		cfg := config.New()
		cfg.UI.Theme = "dark"
		require.NoError(t, config.ApplyEnv(cfg))
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.True(t, cfg.ColorEnabled())
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("FEXP_NO_COLOR", "sometimes")
		err := config.ApplyEnv(config.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading environment")
	})

	t.Run("invalid theme", func(t *testing.T) {
		t.Setenv("FEXP_THEME", "neon")
		err := config.ApplyEnv(config.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown theme")
	})
}

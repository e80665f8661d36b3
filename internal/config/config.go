package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultProgressThreshold is the smallest copy (in bytes) that draws a progress bar.
const DefaultProgressThreshold = 4 * 1024 * 1024

// EnvPrefix prefixes the environment variables read by ApplyEnv.
const EnvPrefix = "FEXP"

// Config represents the application configuration structure.
// Every field is optional; missing values fall back to defaultConfig.
type Config struct {
	UI struct {
		Theme string `yaml:"theme"` // Theme name (default, dark, light, etc.)
		Color *bool  `yaml:"color"` // Colored output when attached to a terminal
	} `yaml:"ui"`
	Log struct {
		Level string `yaml:"level"` // debug, info, warn or error
		JSON  bool   `yaml:"json"`  // One JSON object per line
		File  string `yaml:"file"`  // Append logs here instead of stderr
	} `yaml:"log"`
	Listing struct {
		Hide []string `yaml:"hide"` // Glob patterns omitted from listings
	} `yaml:"listing"`
	Copy struct {
		Progress          *bool `yaml:"progress"`           // Draw a progress bar for large copies
		ProgressThreshold int64 `yaml:"progress_threshold"` // Minimum size in bytes for the bar
	} `yaml:"copy"`
}

// ColorEnabled reports whether colored output is on.
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}

// ProgressEnabled reports whether copy progress bars are on.
func (c *Config) ProgressEnabled() bool {
	return c.Copy.Progress == nil || *c.Copy.Progress
}

// DefaultPath returns $HOME/.config/fexp/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fexp", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/fexp/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.UI.Theme != "" {
		cfg.UI.Theme = tempCfg.UI.Theme
	}
	if tempCfg.UI.Color != nil {
		cfg.UI.Color = tempCfg.UI.Color
	}
	if tempCfg.Log.Level != "" {
		cfg.Log.Level = strings.ToLower(tempCfg.Log.Level)
	}
	cfg.Log.JSON = tempCfg.Log.JSON
	cfg.Log.File = tempCfg.Log.File
	if len(tempCfg.Listing.Hide) > 0 {
		cfg.Listing.Hide = tempCfg.Listing.Hide
	}
	if tempCfg.Copy.Progress != nil {
		cfg.Copy.Progress = tempCfg.Copy.Progress
	}
	if tempCfg.Copy.ProgressThreshold != 0 {
		cfg.Copy.ProgressThreshold = tempCfg.Copy.ProgressThreshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// envOverrides lists the settings that can come from the environment,
// e.g. FEXP_THEME=ocean or FEXP_LOG_LEVEL=debug.
type envOverrides struct {
	Theme    string `envconfig:"THEME"`
	NoColor  bool   `envconfig:"NO_COLOR"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	LogJSON  bool   `envconfig:"LOG_JSON"`
	LogFile  string `envconfig:"LOG_FILE"`
}

// ApplyEnv overrides cfg with FEXP_* environment variables and validates
// the result. Unset variables leave the file values alone.
func ApplyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("error reading environment: %w", err)
	}

	if env.Theme != "" {
		cfg.UI.Theme = env.Theme
	}
	if env.NoColor {
		off := false
		cfg.UI.Color = &off
	}
	if env.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(env.LogLevel)
	}
	if env.LogJSON {
		cfg.Log.JSON = true
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.UI.Theme = "default"
	cfg.Log.Level = "warn"
	cfg.Listing.Hide = []string{}
	cfg.Copy.ProgressThreshold = DefaultProgressThreshold
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if !isTheme(c.UI.Theme) {
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Copy.ProgressThreshold < 0 {
		return fmt.Errorf("copy progress threshold must be >= 0 bytes")
	}

	for i, pattern := range c.Listing.Hide {
		if pattern == "" {
			return fmt.Errorf("hide pattern %d: pattern is empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("hide pattern %d: %w", i, err)
		}
	}

	return nil
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
		},
		"ocean": {
			"primary":  "31",  // Teal
			"success":  "36",  // Green-Blue
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "33",  // Blue
			"emphasis": "51",  // Cyan
		},
		"sunset": {
			"primary":  "208", // Orange
			"success":  "154",
			"warning":  "214",
			"error":    "196",
			"info":     "69",
			"emphasis": "203",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}

func isTheme(name string) bool {
	for _, t := range ListThemes() {
		if t == name {
			return true
		}
	}
	return false
}

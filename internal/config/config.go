// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/types"
)

// Config holds the application's combined configuration.
type Config struct {
	Theme   string                            `toml:"theme"`
	Logger  logger.Config                     `toml:"logger"`
	Editor  EditorConfig                      `toml:"editor"`
	Plugins map[string]map[string]interface{} `toml:"plugins"` // [plugins.<name>] tables
}

// EditorConfig holds document and editing settings.
type EditorConfig struct {
	DefaultWidth    int    `toml:"default_width"`
	DefaultHeight   int    `toml:"default_height"`
	MaxHistory      int    `toml:"max_history"` // negative: unbounded
	ResizeMode      string `toml:"resize_mode"` // crop | scale
	MaxPixels       int    `toml:"max_pixels"`  // 0: no budget
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusBarHeight int    `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Theme:  DefaultTheme,
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			DefaultWidth:    DefaultWidth,
			DefaultHeight:   DefaultHeight,
			MaxHistory:      DefaultMaxHistory,
			ResizeMode:      DefaultResizeMode,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Plugins: map[string]map[string]interface{}{},
	}
}

// DefaultDocumentSize returns the size of documents created without a file.
func (c *Config) DefaultDocumentSize() types.Dimensions {
	return types.Dimensions{Width: c.Editor.DefaultWidth, Height: c.Editor.DefaultHeight}
}

// PluginConfig returns the [plugins.<name>] table, or nil.
func (c *Config) PluginConfig(name string) map[string]interface{} {
	return c.Plugins[name]
}

// Dir returns the configuration directory, e.g. ~/.config/pixide.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	logger.Debugf("Loaded configuration from: %s", filePath)
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.DefaultWidth != types.ClampDimension(c.Editor.DefaultWidth) {
		c.Editor.DefaultWidth = defaults.Editor.DefaultWidth
	}
	if c.Editor.DefaultHeight != types.ClampDimension(c.Editor.DefaultHeight) {
		c.Editor.DefaultHeight = defaults.Editor.DefaultHeight
	}
	if c.Editor.MaxHistory == 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	switch c.Editor.ResizeMode {
	case "crop", "scale":
	default:
		c.Editor.ResizeMode = defaults.Editor.ResizeMode
	}
	if c.Editor.MaxPixels < 0 {
		c.Editor.MaxPixels = 0
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Plugins == nil {
		c.Plugins = defaults.Plugins
	}
}

// Load builds a configuration from defaults, the file at configFilePath (or
// the default location when empty) and explicitly set flags.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if dir, err := Dir(); err == nil {
			effectivePath = filepath.Join(dir, DefaultConfigFileName)
		}
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration once. It should be
// called from main before Get.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

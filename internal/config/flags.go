// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/pixide/internal/logger"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	DebugLog        *bool
	SystemClipboard *bool
	Width           *int
	Height          *int
	MaxHistory      *int
	ResizeMode      *string
	MaxPixels       *int
	Theme           *string
}

// DefineFlags registers the command-line flags on fs.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.set = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable")
	f.DebugLog = fs.Bool("debug-log", false, "Trace the logger filtering decisions on stderr")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use the system clipboard for frame copy/paste")
	f.Width = fs.Int("width", 0, "Width of new documents")
	f.Height = fs.Int("height", 0, "Height of new documents")
	f.MaxHistory = fs.Int("max-history", 0, "Undo depth (negative for unbounded)")
	f.ResizeMode = fs.String("resize-mode", "", "Resize behaviour: crop or scale")
	f.MaxPixels = fs.Int("max-pixels", 0, "Pixel budget for resizes across all frames (0 disables)")
	f.Theme = fs.String("theme", "", "Theme name")
}

// ParseFlags defines the flags on the process flag set, parses os.Args and
// returns the remaining arguments (e.g. the document path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(flag.CommandLine)
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with values from flags that were explicitly set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "width":
			cfg.Editor.DefaultWidth = *f.Width
		case "height":
			cfg.Editor.DefaultHeight = *f.Height
		case "max-history":
			cfg.Editor.MaxHistory = *f.MaxHistory
		case "resize-mode":
			cfg.Editor.ResizeMode = strings.ToLower(*f.ResizeMode)
		case "max-pixels":
			cfg.Editor.MaxPixels = *f.MaxPixels
		case "theme":
			if *f.Theme != "" {
				cfg.Theme = *f.Theme
			}
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

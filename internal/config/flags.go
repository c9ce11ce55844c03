// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/tilegrid/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	Width          *int
	Height         *int
	Storage        *string
	StoragePath    *string
	RedisAddr      *string
	Theme          *string
	// Logger filters
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	SystemClipboard *bool
	Autosave        *bool

	fs *flag.FlagSet
}

// DefineFlags registers the flags on fs. A nil fs means flag.CommandLine.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.Width = fs.Int("width", 0, "Canvas width in canvas units - Overrides config file") // 0 means unset
	f.Height = fs.Int("height", 0, "Canvas height in canvas units - Overrides config file")
	f.Storage = fs.String("storage", "", "Storage backend (file, sqlite, redis, memory) - Overrides config file")
	f.StoragePath = fs.String("storage-path", "", "Layout directory or sqlite database path - Overrides config file")
	f.RedisAddr = fs.String("redis-addr", "", "Redis address for the redis backend - Overrides config file")
	f.Theme = fs.String("theme", "", "Theme name to activate on startup - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.Autosave = fs.Bool("autosave", false, "Enable the autosave plugin")
}

// ParseFlags defines and parses the command-line flags.
// It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(flag.CommandLine)
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // "-" is valid
		case "width":
			if *f.Width > 0 {
				cfg.Canvas.Width = *f.Width
			}
		case "height":
			if *f.Height > 0 {
				cfg.Canvas.Height = *f.Height
			}
		case "storage":
			if *f.Storage != "" {
				cfg.Storage.Backend = strings.ToLower(*f.Storage)
			}
		case "storage-path":
			cfg.Storage.Path = *f.StoragePath
		case "redis-addr":
			if *f.RedisAddr != "" {
				cfg.Storage.RedisAddr = *f.RedisAddr
			}
		case "theme":
			cfg.Editor.Theme = *f.Theme
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "autosave":
			cfg.Plugins.Autosave.Enabled = *f.Autosave
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
		}
	})
}

// Helper function to split comma-separated list
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

package main

// Global configuration of the editor. Settings start from built-in defaults,
// are overridden by the YAML config file and finally by command-line flags
// that were explicitly given.

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// MotionOffsets holds how many trailing positions of a line the caret can't
// reach. "Terminated" lines end with '\n', the "final" line doesn't.
type MotionOffsets struct {
	NormalTerminated int `yaml:"normal_terminated"`
	NormalFinal      int `yaml:"normal_final"`
	InsertTerminated int `yaml:"insert_terminated"`
	InsertFinal      int `yaml:"insert_final"`
}

// Configuration holds all adjustable settings for the editor.
type Configuration struct {
	GutterWidth       int           `yaml:"gutter_width"`        // Width of the left column with line numbers.
	DefaultTabWidth   int           `yaml:"tab_width"`           // Number of spaces a tab character represents.
	GapSize           int           `yaml:"gap_size"`            // Initial gap and growth step of document storage.
	PageSize          int           `yaml:"page_size"`           // Rows moved by page motions when the pane height is unknown.
	LeaderKey         rune          `yaml:"-"`                   // The prefix key for custom commands (default: \).
	UseLogFile        bool          `yaml:"log"`                 // Whether to write debug logs to a file.
	LogFilePath       string        `yaml:"log_path"`            // Where to store the debug logs.
	NumLogsInWindow   int           `yaml:"num_logs"`            // How many recent logs the debug window shows.
	FileCheckInterval time.Duration `yaml:"file_check_interval"` // How often to check for external file changes.
	Motion            MotionOffsets `yaml:"motion"`              // Caret limits at line ends per mode.
	ConfigPath        string        `yaml:"-"`                   // Config file that was loaded, if any.
	DevMode           bool          `yaml:"-"`                   // Enables verbose logging and Ctrl+C exit.
	ShowInfo          bool          `yaml:"-"`                   // Command-line flag to show file types and exit.
	ShowColors        bool          `yaml:"-"`                   // Command-line flag to print the theme and exit.
	ShowVersion       bool          `yaml:"-"`                   // Command-line flag to show version and exit.
}

// DefaultConfiguration returns the built-in settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		GutterWidth:       7,
		DefaultTabWidth:   4,
		GapSize:           64,
		PageSize:          20,
		LeaderKey:         '\\',
		LogFilePath:       "/tmp/kite-debug.log",
		NumLogsInWindow:   10,
		FileCheckInterval: 2 * time.Second,
		Motion: MotionOffsets{
			NormalTerminated: 2,
			NormalFinal:      1,
			InsertTerminated: 1,
			InsertFinal:      0,
		},
	}
}

// Config is the global configuration instance.
var Config = DefaultConfiguration()

// defaultConfigPath returns $XDG_CONFIG_HOME/kite/config.yaml, falling back
// to ~/.config.
func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "kite", "config.yaml")
}

// LoadConfigFile merges the YAML file at path into cfg. Keys missing from
// the file keep their current values.
func LoadConfigFile(path string, cfg *Configuration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.GapSize < 1 {
		cfg.GapSize = defaultGapSize
	}
	if cfg.DefaultTabWidth < 1 {
		cfg.DefaultTabWidth = 4
	}
	if m := cfg.Motion; min(m.NormalTerminated, m.NormalFinal, m.InsertTerminated, m.InsertFinal) < 0 {
		// A negative offset would let the caret pass the terminator.
		cfg.Motion = DefaultConfiguration().Motion
	}
	cfg.ConfigPath = path
	return nil
}

// InitConfig sets up command-line flags, loads the config file and applies
// the flags that were given on top of it.
func InitConfig() error {
	var (
		leaderKey  string
		configPath string
		flags      = DefaultConfiguration()
	)

	flag.StringVar(&configPath, "config", defaultConfigPath(), "Path to YAML config file")
	flag.IntVar(&flags.GutterWidth, "gutter-width", flags.GutterWidth, "Width of the gutter")
	flag.IntVar(&flags.DefaultTabWidth, "tab-width", flags.DefaultTabWidth, "Default tab width")
	flag.IntVar(&flags.GapSize, "gap-size", flags.GapSize, "Gap size of document storage")
	flag.IntVar(&flags.PageSize, "page-size", flags.PageSize, "Rows moved by page motions")
	flag.StringVar(&leaderKey, "leader", "\\", "Leader key")
	flag.BoolVar(&flags.UseLogFile, "log", false, "Enable logging to file")
	flag.StringVar(&flags.LogFilePath, "log-path", flags.LogFilePath, "Path to log file")
	flag.DurationVar(&flags.FileCheckInterval, "file-check-interval", flags.FileCheckInterval, "File check interval")
	flag.BoolVar(&Config.DevMode, "dev", false, "Enable development mode")
	flag.BoolVar(&Config.ShowInfo, "info", false, "Show file associations and exit")
	flag.BoolVar(&Config.ShowColors, "colors", false, "Print the color theme and exit")
	flag.BoolVar(&Config.ShowVersion, "version", false, "Show version")

	flag.Parse()

	var loadErr error
	if configPath != "" {
		err := LoadConfigFile(configPath, &Config)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			loadErr = err
		}
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "gutter-width":
			Config.GutterWidth = flags.GutterWidth
		case "tab-width":
			Config.DefaultTabWidth = flags.DefaultTabWidth
		case "gap-size":
			Config.GapSize = flags.GapSize
		case "page-size":
			Config.PageSize = flags.PageSize
		case "log":
			Config.UseLogFile = flags.UseLogFile
		case "log-path":
			Config.LogFilePath = flags.LogFilePath
		case "file-check-interval":
			Config.FileCheckInterval = flags.FileCheckInterval
		case "leader":
			if len(leaderKey) > 0 {
				Config.LeaderKey = rune(leaderKey[0])
			}
		}
	})

	return loadErr
}

// Package viewer wires event loading, the time window and the interactive
// timeline together.
package viewer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/penwyp/go-consensus-timeline/internal/core/window"
	"github.com/penwyp/go-consensus-timeline/internal/data/scanner"
	"github.com/penwyp/go-consensus-timeline/internal/data/watcher"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys, shared by flags, the config file and CTV_* variables
const (
	KeyFile        = "file"
	KeyStart       = "start"
	KeyEnd         = "end"
	KeyRange       = "range"
	KeyNoWatch     = "no-watch"
	KeyDebounce    = "debounce"
	KeyConcurrency = "concurrency"
	KeyDebug       = "debug"
	KeyLogFormat   = "log-format"
	KeyLogFile     = "log-file"

	EnvPrefix = "CTV"
)

const (
	DefaultConfigDir = "~/.go-consensus-timeline"
	DefaultLogFile   = DefaultConfigDir + "/logs/app.log"
)

// Config contains the settings of a viewer session
type Config struct {
	Files []string

	// Initial window. Start and End are raw text so they pass through the
	// same validation as the interactive custom range.
	Start string
	End   string
	Range string

	Watch    bool
	Debounce time.Duration

	Concurrency int

	Debug     bool
	LogFormat string
	LogFile   string
}

// Validate fills defaults and checks the values that have no sensible default
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return errors.New("no event file given (use --file)")
	}
	for i, f := range c.Files {
		if abs, err := filepath.Abs(f); err == nil {
			c.Files[i] = abs
		}
	}
	files, err := scanner.ExpandPaths(c.Files)
	if err != nil {
		return err
	}
	c.Files = files
	if (c.Start == "") != (c.End == "") {
		return errors.New("--start and --end must be given together")
	}
	if _, err := window.ParseQuickRange(c.Range); err != nil {
		return err
	}
	if c.Range == "" {
		c.Range = string(window.RangeAll)
	}
	if c.Debounce <= 0 {
		c.Debounce = watcher.DefaultDebounce
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	return nil
}

// LoadConfig resolves settings from flags, CTV_* environment variables and
// an optional config file, in that order of precedence. configFile may be
// empty, in which case config.{yaml,json,toml} under DefaultConfigDir is
// read when present.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault(KeyRange, string(window.RangeAll))
	v.SetDefault(KeyDebounce, watcher.DefaultDebounce)
	v.SetDefault(KeyLogFormat, "text")

	if flags != nil {
		for _, key := range []string{KeyFile, KeyStart, KeyEnd, KeyRange, KeyNoWatch, KeyDebounce, KeyConcurrency, KeyDebug, KeyLogFormat, KeyLogFile} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(ExpandPath(configFile))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(ExpandPath(DefaultConfigDir))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Files:       v.GetStringSlice(KeyFile),
		Start:       v.GetString(KeyStart),
		End:         v.GetString(KeyEnd),
		Range:       v.GetString(KeyRange),
		Watch:       !v.GetBool(KeyNoWatch),
		Debounce:    v.GetDuration(KeyDebounce),
		Concurrency: v.GetInt(KeyConcurrency),
		Debug:       v.GetBool(KeyDebug),
		LogFormat:   v.GetString(KeyLogFormat),
		LogFile:     v.GetString(KeyLogFile),
	}
	for i, f := range cfg.Files {
		cfg.Files[i] = ExpandPath(f)
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// EnsureDir creates dir and its parents when missing
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// Package settings loads the glutils configuration: defaults, then an
// optional TOML file, then GLUTILS_* environment variables. Command-line
// flags are applied on top by the caller.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/glamus/glamus-utils/lock"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "glutils.toml"

// Settings is the complete configuration.
type Settings struct {
	// Root is the project root the config and lock paths are relative to.
	Root string `toml:"root"`
	// DataRoot holds one log directory per election.
	DataRoot string `toml:"data_root"`

	Lock LockSettings `toml:"lock"`
	Log  LogSettings  `toml:"log"`
}

// LockSettings tune the wait for the config flag.
type LockSettings struct {
	Delay      time.Duration `toml:"delay"`
	ForceAfter int           `toml:"force_after"`
}

// LogSettings configure the diagnostics log of the tool itself.
type LogSettings struct {
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`    // megabytes
	MaxBackups int    `toml:"max_backups"` // rotated files kept
	MaxAge     int    `toml:"max_age"`     // days
	Debug      bool   `toml:"debug"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		Root:     ".",
		DataRoot: "data",
		Lock: LockSettings{
			Delay:      lock.DefaultDelay,
			ForceAfter: lock.DefaultForceAfter,
		},
		Log: LogSettings{
			MaxSize:    1,
			MaxBackups: 2,
			MaxAge:     30,
		},
	}
}

// Load builds the settings. An explicit path must exist; without one,
// DefaultFile is read if present.
func Load(path string) (*Settings, error) {
	s := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, s); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
		}
	}

	s.ApplyEnv(os.Getenv)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyEnv overrides fields from environment variables. Unparseable values are ignored.
func (s *Settings) ApplyEnv(getenv func(string) string) {
	if v := getenv("GLUTILS_ROOT"); v != "" {
		s.Root = v
	}
	if v := getenv("GLUTILS_DATA_ROOT"); v != "" {
		s.DataRoot = v
	}
	if v := getenv("GLUTILS_LOCK_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.Lock.Delay = d
		}
	}
	if v := getenv("GLUTILS_LOCK_FORCE_AFTER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Lock.ForceAfter = n
		}
	}
	if v := getenv("GLUTILS_LOG_FILE"); v != "" {
		s.Log.File = v
	}
	if v := getenv("GLUTILS_LOG_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Log.MaxSize = n
		}
	}
	if v := getenv("GLUTILS_LOG_MAX_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			s.Log.MaxBackups = n
		}
	}
	if v := getenv("GLUTILS_LOG_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Log.MaxAge = n
		}
	}
	if v := getenv("GLUTILS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Log.Debug = b
		}
	}
}

// Validate rejects settings the tools cannot work with.
func (s *Settings) Validate() error {
	if s.Root == "" {
		return errors.New("settings: root must not be empty")
	}
	if s.Lock.Delay <= 0 {
		return fmt.Errorf("settings: lock.delay must be positive, got %s", s.Lock.Delay)
	}
	if s.Lock.ForceAfter <= 0 {
		return fmt.Errorf("settings: lock.force_after must be positive, got %d", s.Lock.ForceAfter)
	}
	return nil
}

// LockOptions converts the lock settings for lock.Acquire.
func (s *Settings) LockOptions() lock.Options {
	return lock.Options{
		Delay:      s.Lock.Delay,
		ForceAfter: s.Lock.ForceAfter,
	}
}

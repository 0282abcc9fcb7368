package autoconfig

import (
	"log/slog"
	"path/filepath"

	"github.com/glamus/glamus-utils/lock"
	"github.com/glamus/glamus-utils/util"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Locations relative to the project root.
const (
	ConfigPath = "tests/automaticallyGeneratedConfigFiles/doNOTchange/autoConfig.json"
	LockPath   = "tests/automaticallyGeneratedConfigFiles/doNOTchange/.isLocked"
)

// Writer replaces the config document under a project root.
type Writer struct {
	fs       afero.Fs
	root     string
	flag     lock.Flag
	lockOpts lock.Options
	logger   *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithFlag replaces the flag file next to the document with flag.
func WithFlag(flag lock.Flag) Option {
	return func(w *Writer) { w.flag = flag }
}

// WithLockOptions sets the retry behavior used while waiting for the flag.
func WithLockOptions(opts lock.Options) Option {
	return func(w *Writer) { w.lockOpts = opts }
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// NewWriter returns a Writer for the project rooted at root.
func NewWriter(fsys afero.Fs, root string, opts ...Option) *Writer {
	w := &Writer{
		fs:     fsys,
		root:   root,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.flag == nil {
		w.flag = lock.NewFileFlag(fsys, w.LockPath())
	}
	if w.lockOpts.Logger == nil {
		w.lockOpts.Logger = w.logger
	}
	return w
}

// ConfigPath returns the absolute location of the document.
func (w *Writer) ConfigPath() string {
	return filepath.Join(w.root, ConfigPath)
}

// LockPath returns the absolute location of the flag file.
func (w *Writer) LockPath() string {
	return filepath.Join(w.root, LockPath)
}

// Write renders f, waits for the flag and overwrites the document.
//
// Only a rendering failure or an unusable flag is returned. A failure writing
// the document itself is logged and otherwise ignored, and the flag is left
// locked after the write; the next writer resets it once it gives up waiting.
func (w *Writer) Write(f Fields) error {
	doc, err := Render(f)
	if err != nil {
		return err
	}

	st, err := lock.Acquire(w.flag, w.lockOpts)
	if err != nil {
		return err
	}

	path := w.ConfigPath()
	if err := afero.WriteFile(w.fs, path, []byte(doc), 0o644); err != nil {
		w.logger.Error("writing config failed", "path", path, "err", err)
	} else {
		w.logger.Debug("config written", "path", path,
			"attempts", st.Attempts, "forced_releases", st.ForcedReleases)
	}
	return nil
}

// Locked reports whether the flag is currently held.
func (w *Writer) Locked() (bool, error) {
	return w.flag.IsHeld()
}

// Unlock resets the flag. Write never calls it.
func (w *Writer) Unlock() error {
	return w.flag.ForceRelease()
}

// CleanServerResults removes the result files in dir whose names start with
// prefix. Files next to dir are never matched, even with an empty prefix.
func (w *Writer) CleanServerResults(dir, prefix string) int {
	pattern := filepath.Clean(dir) + string(filepath.Separator) + prefix
	return util.DeleteFilesWithPrefix(w.fs, pattern)
}

// ServerResultFile returns a fresh result file name in dir, unique per test
// run, so concurrent runs never write into each other's results.
func ServerResultFile(dir, prefix string) string {
	return filepath.Join(dir, prefix+uuid.NewString()+".json")
}

// Read decodes the current document under root.
func Read(fsys afero.Fs, root string) (map[string]any, error) {
	return util.DecodeObject(fsys, filepath.Join(root, ConfigPath))
}

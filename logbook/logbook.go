package logbook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/glamus/glamus-utils/util"
	"github.com/spf13/afero"
)

// Level tags an entry. Matching against the error levels is case-insensitive.
type Level string

const (
	FatalError Level = "FATAL_ERROR"
	Verbose    Level = "VERBOSE"
	Ignored    Level = "IGNORED"
	Info       Level = "INFO"
	OK         Level = "OK"
	Warning    Level = "WARNING"
	Error      Level = "ERROR"
)

// IsError reports whether entries of this level also go to the error log.
func (l Level) IsError() bool {
	switch strings.ToLower(string(l)) {
	case "warning", "error", "fatal_error":
		return true
	}
	return false
}

// ErrNoStream is returned when writing to a stream the logger was not built with.
var ErrNoStream = errors.New("log stream not available")

// File names inside the log directory.
const (
	VerboseFile       = "log.txt"
	ErrorFile         = "errorLog.txt"
	PartyResultFile   = "resultLog.txt"
	BrowserResultFile = "browserlog.txt"
)

const dirMode os.FileMode = 0o744

// Logger writes entries for one election.
type Logger struct {
	fs    afero.Fs
	dir   string
	label string

	verbose       string
	errorLog      string
	partyResult   string
	browserResult string

	echo *echoer
	mu   sync.Mutex
}

// Option configures a Logger.
type Option func(*Logger)

// WithDebug echoes every entry to w as it is written. On a terminal the
// output is colored.
func WithDebug(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.echo = newEchoer(w, l.label)
		}
	}
}

// New returns a Logger writing to <dataRoot>/<electionPath>/ and creates its
// four files if they do not exist yet.
func New(fsys afero.Fs, dataRoot, electionPath string, opts ...Option) (*Logger, error) {
	dir := filepath.Join(dataRoot, electionPath)
	l := &Logger{
		fs:            fsys,
		dir:           dir,
		label:         electionPath,
		verbose:       filepath.Join(dir, VerboseFile),
		errorLog:      filepath.Join(dir, ErrorFile),
		partyResult:   filepath.Join(dir, PartyResultFile),
		browserResult: filepath.Join(dir, BrowserResultFile),
	}
	return l.init(opts)
}

// NewSimple returns a Logger with only the verbose and error streams, kept in
// <root>/logs/. LogBrowserResult and the party methods return ErrNoStream.
func NewSimple(fsys afero.Fs, root string, opts ...Option) (*Logger, error) {
	dir := filepath.Join(root, "logs")
	l := &Logger{
		fs:       fsys,
		dir:      dir,
		label:    filepath.Base(root),
		verbose:  filepath.Join(dir, VerboseFile),
		errorLog: filepath.Join(dir, ErrorFile),
	}
	return l.init(opts)
}

func (l *Logger) init(opts []Option) (*Logger, error) {
	for _, opt := range opts {
		opt(l)
	}
	for _, p := range l.Files() {
		if err := util.EnsureFile(l.fs, p, util.DefaultMode); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Dir returns the directory holding the log files.
func (l *Logger) Dir() string {
	return l.dir
}

// Files returns the paths of the streams this logger writes.
func (l *Logger) Files() []string {
	var files []string
	for _, p := range []string{l.verbose, l.errorLog, l.partyResult, l.browserResult} {
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}

func (l *Logger) appendTo(path, text string) error {
	f, err := l.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, err = io.WriteString(f, text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Log writes "[timestamp] - [LEVEL] - [message]" to the verbose stream and,
// for warnings and errors, to the error stream as well.
func (l *Logger) Log(level Level, message string) error {
	entry := fmt.Sprintf("[%s] - [%s] - [%s]\n",
		util.TimestampForLog(), strings.ToUpper(string(level)), message)

	l.mu.Lock()
	defer l.mu.Unlock()

	// the directory may have been removed since construction
	if err := util.EnsureDirectory(l.fs, l.dir, dirMode); err != nil {
		return err
	}
	if err := l.appendTo(l.verbose, entry); err != nil {
		return err
	}
	if level.IsError() {
		if err := l.appendTo(l.errorLog, entry); err != nil {
			return err
		}
	}
	l.echo.line(level, entry)
	return nil
}

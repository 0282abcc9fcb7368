package lock

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/glamus/glamus-utils/util"
	"github.com/spf13/afero"
)

// State is the token stored in a flag file.
type State string

const (
	Locked   State = "locked"
	Unlocked State = "unLocked"
)

// ErrUnknownState is returned by ParseState for tokens other than Locked and Unlocked.
var ErrUnknownState = errors.New("unknown lock state")

// ParseState maps a token typed by an operator to a State. Matching is case-insensitive.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "locked":
		return Locked, nil
	case "unlocked":
		return Unlocked, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownState, s)
}

// Flag is a shared two-state flag guarding a resource. Implementations are
// advisory: nothing stops a participant from ignoring them.
type Flag interface {
	// TryAcquire sets the flag to Locked if it is not held and reports
	// whether it did so.
	TryAcquire() (bool, error)
	// ForceRelease sets the flag to Unlocked regardless of who holds it.
	ForceRelease() error
	// IsHeld reports whether the flag currently reads Locked.
	IsHeld() (bool, error)
}

// FileFlag keeps the flag as the content of a single file.
// Any content other than "locked", including an empty file, reads as unlocked.
// The file is created on first access and never deleted.
type FileFlag struct {
	fs   afero.Fs
	path string
}

// NewFileFlag returns a flag stored at path on fsys.
func NewFileFlag(fsys afero.Fs, path string) *FileFlag {
	return &FileFlag{fs: fsys, path: path}
}

// Path returns the location of the flag file.
func (f *FileFlag) Path() string {
	return f.path
}

func (f *FileFlag) file() (string, error) {
	if err := util.EnsureFile(f.fs, f.path, util.DefaultMode); err != nil {
		return "", err
	}
	return f.path, nil
}

// State returns the current token. An unrecognized token is reported as Unlocked.
func (f *FileFlag) State() (State, error) {
	path, err := f.file()
	if err != nil {
		return "", err
	}
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return "", err
	}
	if State(data) == Locked {
		return Locked, nil
	}
	return Unlocked, nil
}

// Set writes s regardless of the current state.
func (f *FileFlag) Set(s State) error {
	path, err := f.file()
	if err != nil {
		return err
	}
	return afero.WriteFile(f.fs, path, []byte(s), util.DefaultMode)
}

// IsHeld implements Flag.
func (f *FileFlag) IsHeld() (bool, error) {
	s, err := f.State()
	return s == Locked, err
}

// TryAcquire implements Flag. The read and the write are separate file
// operations, so two processes can both observe Unlocked and both proceed.
func (f *FileFlag) TryAcquire() (bool, error) {
	held, err := f.IsHeld()
	if err != nil || held {
		return false, err
	}
	return true, f.Set(Locked)
}

// ForceRelease implements Flag.
func (f *FileFlag) ForceRelease() error {
	return f.Set(Unlocked)
}

// MemFlag is an in-process Flag. It counts how it was used so tests can
// check the acquisition protocol without touching storage.
type MemFlag struct {
	mu       sync.Mutex
	held     bool
	checks   int
	releases int
	// OnCheck, if set, runs after every observation of the flag with the
	// number of observations so far. Tests use it to change the state mid-wait.
	OnCheck func(n int)
}

// NewMemFlag returns an unlocked MemFlag.
func NewMemFlag() *MemFlag {
	return &MemFlag{}
}

// Set forces the state without counting as a check.
func (m *MemFlag) Set(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = s == Locked
}

// Checks returns how many times the flag was observed.
func (m *MemFlag) Checks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks
}

// Releases returns how many times ForceRelease was called.
func (m *MemFlag) Releases() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releases
}

func (m *MemFlag) observe() bool {
	m.mu.Lock()
	m.checks++
	n, held, hook := m.checks, m.held, m.OnCheck
	m.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return held
}

// IsHeld implements Flag.
func (m *MemFlag) IsHeld() (bool, error) {
	return m.observe(), nil
}

// TryAcquire implements Flag.
func (m *MemFlag) TryAcquire() (bool, error) {
	if m.observe() {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = true
	return true, nil
}

// ForceRelease implements Flag.
func (m *MemFlag) ForceRelease() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases++
	m.held = false
	return nil
}

package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// DefaultMode is the permission used by EnsureDirectory and EnsureFile when
// the caller has no preference.
const DefaultMode os.FileMode = 0o766

// FilenameWithoutExtension returns name without its last extension
// ("report.v2.csv" -> "report.v2").
// A name without a dot, or whose only dot is the leading one, is returned unchanged.
func FilenameWithoutExtension(name string) string {
	if !hasSplittableDot(name) {
		return name
	}
	return name[:strings.LastIndex(name, ".")]
}

// FileExtension returns the last extension of name including the dot
// ("report.v2.csv" -> ".csv").
// Like FilenameWithoutExtension it returns name unchanged when there is nothing to split.
func FileExtension(name string) string {
	if !hasSplittableDot(name) {
		return name
	}
	return name[strings.LastIndex(name, "."):]
}

// a dot at position 0 does not count, so ".isLocked" keeps its full name
func hasSplittableDot(name string) bool {
	return strings.Index(name, ".") > 0
}

// ParentDir returns everything before the last slash of path, or "" if path
// has no slash.
func ParentDir(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// EnsureDirectory creates path and any missing parents with the given mode.
// It succeeds without doing anything when path is already a directory.
func EnsureDirectory(fsys afero.Fs, path string, mode os.FileMode) error {
	if ok, _ := afero.IsDir(fsys, path); ok {
		return nil
	}
	return fsys.MkdirAll(path, mode)
}

// EnsureFile makes sure path names a regular file. If it does not, the parent
// directory is ensured, an empty file is created and mode is applied to it.
// An existing file is left alone, its mode included.
func EnsureFile(fsys afero.Fs, path string, mode os.FileMode) error {
	if info, err := fsys.Stat(path); err == nil && info.Mode().IsRegular() {
		return nil
	}

	if parent := ParentDir(path); parent != "" {
		// The parent always gets the default mode, whatever mode the file asks for.
		if err := EnsureDirectory(fsys, parent, DefaultMode); err != nil {
			return fmt.Errorf("%w %s: %w", ErrCreateFile, path, err)
		}
	}

	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrCreateFile, path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrCreateFile, path, err)
	}
	return fsys.Chmod(path, mode)
}

// DeleteFilesWithPrefix removes every file whose path starts with prefix,
// e.g. "/srv/results/run_" removes "/srv/results/run_1.json".
// Failures on individual files are ignored. It returns how many files were removed.
func DeleteFilesWithPrefix(fsys afero.Fs, prefix string) int {
	matches, err := afero.Glob(fsys, prefix+"*")
	if err != nil {
		return 0
	}
	removed := 0
	for _, m := range matches {
		info, err := fsys.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if fsys.Remove(m) == nil {
			removed++
		}
	}
	return removed
}

// Exists reports whether path exists. Any error probing it counts as absent.
func Exists(fsys afero.Fs, path string) bool {
	ok, err := afero.Exists(fsys, path)
	return err == nil && ok
}

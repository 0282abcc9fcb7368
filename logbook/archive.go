package logbook

import (
	"path/filepath"

	"github.com/glamus/glamus-utils/util"
)

// Archive zips the log files into destDir as <dir>_<YYYY_MM_DD>.zip and
// returns the archive path and the number of files stored. The logs are
// left in place. An empty destDir archives next to the log directory.
func (l *Logger) Archive(destDir string) (string, int, error) {
	if destDir == "" {
		destDir = filepath.Dir(l.dir)
	}
	if err := util.EnsureDirectory(l.fs, destDir, dirMode); err != nil {
		return "", 0, err
	}
	dest := filepath.Join(destDir, filepath.Base(l.dir)+"_"+util.DateStampYMD()+".zip")

	l.mu.Lock()
	defer l.mu.Unlock()
	n, err := util.ArchiveDirectory(l.fs, l.dir, dest)
	return dest, n, err
}

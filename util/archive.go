package util

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ArchiveDirectory zips the regular files directly inside dir into dest,
// replacing dest if it exists, and returns how many files were stored.
// Subdirectories are not descended into. dest may live inside dir; it is
// never added to itself.
func ArchiveDirectory(fsys afero.Fs, dir, dest string) (int, error) {
	ok, err := afero.IsDir(fsys, dir)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrExpectedDirectory
	}

	dirents, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return 0, err
	}

	if err := fsys.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}
	file, err := fsys.Create(dest)
	if err != nil {
		return 0, err
	}

	count, err := writeArchive(fsys, file, dir, dest, dirents)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return count, err
}

func writeArchive(fsys afero.Fs, out io.Writer, dir, dest string, dirents []os.FileInfo) (int, error) {
	w := zip.NewWriter(out)
	count := 0
	for _, v := range dirents {
		if v.IsDir() {
			continue
		}
		path := filepath.Join(dir, v.Name())
		if filepath.Clean(path) == filepath.Clean(dest) {
			continue
		}
		if err := addToArchive(fsys, w, path, v.Name()); err != nil {
			w.Close()
			return count, err
		}
		count++
	}
	return count, w.Close()
}

func addToArchive(fsys afero.Fs, w *zip.Writer, path, name string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, f)
	return err
}

// ArchiveEntries lists the file names stored in the zip archive at path.
func ArchiveEntries(fsys afero.Fs, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(zr.File))
	for _, v := range zr.File {
		names = append(names, v.Name)
	}
	return names, nil
}

package lock

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Watch calls fn with the current state of the flag file at path and then
// again whenever the state changes, until ctx is done.
// The containing directory is watched so the flag file may be created later.
func Watch(ctx context.Context, path string, fn func(State)) error {
	flag := NewFileFlag(afero.NewOsFs(), path)
	if _, err := flag.file(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	last, err := flag.State()
	if err != nil {
		return err
	}
	fn(last)

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s, err := flag.State()
			if err != nil {
				return err
			}
			if s != last {
				last = s
				fn(s)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

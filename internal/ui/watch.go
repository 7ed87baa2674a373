package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/logger"
)

// catalogWatcher reloads the catalog file when it changes on disk. The
// directory is watched, not the file, so editors that replace the file on
// save keep triggering reloads.
type catalogWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

func newCatalogWatcher(path string, log *logger.Logger) (*catalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	return &catalogWatcher{path: filepath.Clean(path), watcher: watcher, log: log}, nil
}

// next blocks until the catalog file is written and returns the reloaded
// catalog. It returns nil once the watcher is closed.
func (w *catalogWatcher) next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				w.log.Debug("catalog changed: %s", event)
				c, err := catalog.Load(w.path)
				return catalogReloadedMsg{catalog: c, err: err}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				w.log.Warn("catalog watcher error: %v", err)
			}
		}
	}
}

func (w *catalogWatcher) Close() error {
	return w.watcher.Close()
}

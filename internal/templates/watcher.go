package templates

import (
	"context"
	"fmt"
	"os"
	"time"

	"venuelayout/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce is how long the watcher waits for further changes
// before reloading.
const DefaultReloadDebounce = 500 * time.Millisecond

// Watcher reloads a catalog's file templates whenever the template directory
// changes. A reload that fails keeps the previous templates.
type Watcher struct {
	dir      string
	catalog  *Catalog
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *logger.Logger
	reloaded chan struct{}
}

func NewWatcher(dir string, catalog *Catalog, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create template watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}
	return &Watcher{
		dir:      dir,
		catalog:  catalog,
		debounce: debounce,
		watcher:  fsw,
		log:      logger.GetDefault(),
		reloaded: make(chan struct{}, 1),
	}, nil
}

// Reload loads the directory into the catalog once.
func (w *Watcher) Reload(ctx context.Context) error {
	templates, err := LoadDir(w.dir)
	if err != nil {
		w.log.ErrorWithContext(ctx, "Failed to reload layout templates", err, map[string]interface{}{
			"dir": w.dir,
		})
		return err
	}
	w.catalog.SetFileTemplates(templates)
	w.log.LogTemplatesLoaded(ctx, w.dir, len(templates))

	select {
	case w.reloaded <- struct{}{}:
	default:
	}
	return nil
}

// Reloaded signals after each successful reload. Signals are coalesced.
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloaded
}

// Start loads the directory and watches it until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	if err := w.Reload(ctx); err != nil {
		return err
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch template directory: %w", err)
	}

	go w.run(ctx)
	return nil
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = w.watcher.Close()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isTemplateFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.ErrorWithContext(ctx, "Template watcher error", err, map[string]interface{}{
				"dir": w.dir,
			})
		case <-timer.C:
			_ = w.Reload(ctx)
		}
	}
}

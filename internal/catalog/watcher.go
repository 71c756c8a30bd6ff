package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"shardview/internal/domain"
	"shardview/internal/eventbus"
)

// DefaultDebounce coalesces editor save bursts into one reload
const DefaultDebounce = 200 * time.Millisecond

// Watcher publishes CatalogChangedEvent when a file source changes.
// Directories are watched rather than files so atomic renames are seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	bus      eventbus.EventBus
	logger   *zap.Logger
	debounce time.Duration

	// files maps cleaned absolute paths to their collection
	files map[string]domain.CollectionKind
}

// NewWatcher watches the file sources among sources. URL sources are
// skipped; if none are files the watcher is idle until Run returns.
func NewWatcher(sources map[domain.CollectionKind]string, bus eventbus.EventBus, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		bus:      bus,
		logger:   logger.Named("watcher"),
		debounce: DefaultDebounce,
		files:    make(map[string]domain.CollectionKind),
	}

	dirs := make(map[string]bool)
	for kind, source := range sources {
		name, ok := FilePath(source)
		if !ok {
			continue
		}
		abs, err := filepath.Abs(name)
		if err != nil {
			continue
		}
		w.files[abs] = kind
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			// The loader reports the missing source itself
			w.logger.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.logger.Debug("watching directory", zap.String("dir", dir))
	}
	return w, nil
}

// SetDebounce overrides the debounce interval
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Watched reports the number of watched files
func (w *Watcher) Watched() int {
	return len(w.files)
}

// Run delivers change events until ctx is done, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	pending := make(map[domain.CollectionKind]string)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			kind, watched := w.files[abs]
			if !watched {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("source changed", zap.String("file", abs), zap.String("op", event.Op.String()))
			pending[kind] = abs
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))

		case <-timer.C:
			for kind, source := range pending {
				if w.bus != nil {
					w.bus.Publish(eventbus.CatalogChangedEvent{Kind: kind, Source: source})
				}
				delete(pending, kind)
			}
		}
	}
}

// FilePath returns the local path of a file source
func FilePath(source string) (string, bool) {
	source = strings.TrimSpace(source)
	lower := strings.ToLower(source)
	switch {
	case source == "":
		return "", false
	case strings.HasPrefix(lower, "file://"):
		return source[len("file://"):], true
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return "", false
	}
	return source, true
}

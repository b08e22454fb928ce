package registry

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osmoflow/rosim/pkg/log"
)

// reloadDebounce coalesces the bursts of events editors emit on save.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a Registry when its catalog file changes.
type Watcher struct {
	reg *Registry
	log log.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewWatcher creates a Watcher for the given registry.
func NewWatcher(reg *Registry, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{reg: reg, log: logger}
}

// Run watches the catalog's directory until ctx is canceled. A reload that
// fails to parse keeps the previous catalog in effect.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go stale.
	dir := filepath.Dir(w.reg.Path())
	if err := watcher.Add(dir); err != nil {
		return err
	}

	base := filepath.Base(w.reg.Path())

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("catalog watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(reloadDebounce, func() {
		if err := w.reg.Reload(); err != nil {
			w.log.Warn("catalog reload failed, keeping previous catalog", log.Err(err))
		}
	})
}

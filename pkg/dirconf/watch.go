package dirconf

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Watcher reloads the merged configuration when files in the root
// change. Events are debounced so a burst of writes triggers a single
// reload.
type Watcher struct {
	dir      *Dir
	onReload func(map[string]any)
	debounce time.Duration

	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	group  *errgroup.Group

	mu      sync.Mutex
	pending map[string]time.Time
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long events must settle before a reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watch starts watching the root for changes to configuration files.
// onReload is called from the watcher goroutine with the freshly
// merged configuration after each settled change. The watcher stops
// when ctx is cancelled or Stop is called.
func (d *Dir) Watch(ctx context.Context, onReload func(map[string]any), opts ...WatchOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(d.root); err != nil {
		fsw.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	w := &Watcher{
		dir:      d,
		onReload: onReload,
		debounce: 250 * time.Millisecond,
		fsw:      fsw,
		cancel:   cancel,
		group:    group,
		pending:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	group.Go(func() error {
		return w.run(ctx)
	})
	d.logger.Debug("watching", zap.String("root", d.root))
	return w, nil
}

// Stop cancels the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.group.Wait()
	if cerr := w.fsw.Close(); err == nil {
		err = cerr
	}
	return err
}

func (w *Watcher) run(ctx context.Context) error {
	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.dir.logger.Error("watch error", zap.Error(err))
		case <-tick.C:
			w.reloadSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	if event.Op&relevant == 0 {
		return
	}
	name := event.Name
	if !w.dir.pattern.MatchString(filepath.Base(name)) {
		return
	}
	w.dir.logger.Debug("config file changed",
		zap.String("path", name), zap.Stringer("op", event.Op))
	w.mu.Lock()
	w.pending[name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) reloadSettled() {
	w.mu.Lock()
	settled := false
	now := time.Now()
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			delete(w.pending, path)
			settled = true
		}
	}
	w.mu.Unlock()
	if !settled {
		return
	}
	cfg, err := w.dir.LoadConfig()
	if err != nil {
		w.dir.logger.Error("reload failed", zap.Error(err))
		return
	}
	w.onReload(cfg)
}

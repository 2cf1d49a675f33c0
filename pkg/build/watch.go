package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/lifegen/pkg/log"
)

// Event is sent to [Watcher] subscribers.
type Event interface {
	Context() context.Context
}

// EventStart indicates that a build has started.
type EventStart struct {
	ctx context.Context
	// Trigger is the file that caused the build, or "" for the initial build.
	Trigger string
}

func (e EventStart) Context() context.Context { return e.ctx }

// EventEnd indicates that a build has finished.
type EventEnd struct {
	ctx    context.Context
	Output *Output
	Err    error
}

func (e EventEnd) Context() context.Context { return e.ctx }

// ReloadFunc creates a new [Builder], for example after a configuration
// change.
type ReloadFunc func(ctx context.Context) (*Builder, error)

// WatcherOpt configures a [Watcher].
type WatcherOpt func(w *Watcher)

// WithReload watches paths and replaces the builder using fn when any of
// them change.
func WithReload(fn ReloadFunc, paths ...string) WatcherOpt {
	return func(w *Watcher) {
		w.reload = fn
		w.reloadPaths = paths
	}
}

// Watcher rebuilds whenever a file that contributed to the previous build is
// written.
type Watcher struct {
	tracer  trace.Tracer
	builder *Builder
	watcher *fsnotify.Watcher
	reload  ReloadFunc

	// Absolute paths.
	watchedFiles map[string]struct{}
	watchedDirs  map[string]struct{}
	reloadFiles  map[string]struct{}

	root        string
	reloadPaths []string
	listeners   []chan<- Event
	mu          sync.Mutex
}

// NewWatcher creates a [Watcher]. The builder's loader must read from the
// directory root so that loader paths can be mapped to files on disk.
func NewWatcher(b *Builder, root string, opts ...WatcherOpt) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		tracer:       otel.Tracer("build-watcher"),
		builder:      b,
		watcher:      fw,
		root:         absRoot,
		watchedFiles: map[string]struct{}{},
		watchedDirs:  map[string]struct{}{},
		reloadFiles:  map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range w.reloadPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("get absolute path: %w", err)
		}

		err = w.watchFile(abs)
		if err != nil {
			return nil, err
		}

		w.reloadFiles[abs] = struct{}{}
	}

	return w, nil
}

// Subscribe registers ch to receive build events. Sends block, so
// subscribers must keep reading until [Watcher.Run] returns.
func (w *Watcher) Subscribe(ch chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.listeners = append(w.listeners, ch)
}

// Build runs a single build and updates the watched files.
func (w *Watcher) Build(ctx context.Context, trigger string) (*Output, error) {
	ctx, span := w.tracer.Start(ctx, "rebuild", trace.WithAttributes(
		attribute.String("trigger", trigger),
	))
	defer span.End()

	w.broadcast(EventStart{ctx: ctx, Trigger: trigger})

	out, err := w.builder.Build(ctx)
	if err == nil {
		err = w.watchOutput(ctx, out)
	}

	w.broadcast(EventEnd{ctx: ctx, Output: out, Err: err})

	return out, err
}

// Run performs an initial build, then rebuilds on every relevant change
// until ctx is canceled. Build failures are reported as [EventEnd] events
// and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	//nolint:errcheck // Reported to subscribers.
	w.Build(ctx, "")

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}

			w.handle(ctx, evt)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.broadcast(EventEnd{ctx: ctx, Err: fmt.Errorf("watch: %w", err)})
		}
	}
}

func (w *Watcher) handle(ctx context.Context, evt fsnotify.Event) {
	logger := log.WithContext(ctx)

	if _, ok := w.reloadFiles[evt.Name]; ok && w.reload != nil {
		b, err := w.reload(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "reload", slog.String("path", evt.Name), slog.Any("error", err))
			w.broadcast(EventEnd{ctx: ctx, Err: fmt.Errorf("reload %s: %w", evt.Name, err)})

			return
		}

		w.builder = b

		//nolint:errcheck // Reported to subscribers.
		w.Build(ctx, evt.Name)

		return
	}

	if _, ok := w.watchedFiles[evt.Name]; !ok {
		return
	}

	logger.DebugContext(ctx, "shader changed", slog.String("event", evt.String()))

	//nolint:errcheck // Reported to subscribers.
	w.Build(ctx, evt.Name)
}

// watchOutput replaces the watched shader files with those used by out.
func (w *Watcher) watchOutput(ctx context.Context, out *Output) error {
	clear(w.watchedFiles)

	for _, f := range out.Files() {
		err := w.watchFile(filepath.Join(w.root, filepath.FromSlash(f)))
		if err != nil {
			return err
		}
	}

	log.WithContext(ctx).DebugContext(ctx, "watching shader files",
		slog.Int("files", len(w.watchedFiles)),
		slog.Int("dirs", len(w.watchedDirs)),
	)

	return nil
}

// watchFile watches the parent directory of path, so that editors that
// replace files by renaming are still observed.
func (w *Watcher) watchFile(path string) error {
	dir := filepath.Dir(path)

	if _, ok := w.watchedDirs[dir]; !ok {
		err := w.watcher.Add(dir)
		if err != nil {
			return fmt.Errorf("add path to watcher: %w", err)
		}

		w.watchedDirs[dir] = struct{}{}
	}

	w.watchedFiles[path] = struct{}{}

	return nil
}

// broadcast sends evt to every subscriber. The lock is released before
// sending so that subscribers may call [Watcher.Subscribe] while handling
// an event.
func (w *Watcher) broadcast(evt Event) {
	w.mu.Lock()
	listeners := slices.Clone(w.listeners)
	w.mu.Unlock()

	for _, ch := range listeners {
		ch <- evt
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	if err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}

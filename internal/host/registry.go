package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// FileHook runs after a file is loaded or saved.
type FileHook func(ctx context.Context, file File) error

// AlbumHook runs when album metadata is available.
type AlbumHook func(ctx context.Context, album Album) error

type namedFileHook struct {
	name string
	fn   FileHook
}

type namedAlbumHook struct {
	name string
	fn   AlbumHook
}

// Registry holds lifecycle callbacks. Registration and dispatch are safe for
// concurrent use; dispatch works on a snapshot so a callback may register
// further callbacks without deadlocking.
type Registry struct {
	mu     sync.RWMutex
	loaded []namedFileHook
	saved  []namedFileHook
	album  []namedAlbumHook
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// OnFileLoaded registers fn to run after each file load.
func (r *Registry) OnFileLoaded(name string, fn FileHook) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = append(r.loaded, namedFileHook{name: name, fn: fn})
}

// OnFileSaved registers fn to run after each file save.
func (r *Registry) OnFileSaved(name string, fn FileHook) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, namedFileHook{name: name, fn: fn})
}

// OnAlbumMetadata registers fn to run when album metadata is processed.
func (r *Registry) OnAlbumMetadata(name string, fn AlbumHook) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.album = append(r.album, namedAlbumHook{name: name, fn: fn})
}

// FileLoaded runs the file-loaded callbacks for file.
func (r *Registry) FileLoaded(ctx context.Context, file File) error {
	r.mu.RLock()
	hooks := append([]namedFileHook(nil), r.loaded...)
	r.mu.RUnlock()
	return runFileHooks(ctx, "file loaded", hooks, file)
}

// FileSaved runs the file-saved callbacks for file.
func (r *Registry) FileSaved(ctx context.Context, file File) error {
	r.mu.RLock()
	hooks := append([]namedFileHook(nil), r.saved...)
	r.mu.RUnlock()
	return runFileHooks(ctx, "file saved", hooks, file)
}

// AlbumMetadata runs the album callbacks for album.
func (r *Registry) AlbumMetadata(ctx context.Context, album Album) error {
	r.mu.RLock()
	hooks := append([]namedAlbumHook(nil), r.album...)
	r.mu.RUnlock()

	var errs []error
	for _, hook := range hooks {
		if err := hook.fn(ctx, album); err != nil {
			errs = append(errs, fmt.Errorf("album metadata hook %s: %w", hook.name, err))
		}
	}
	return errors.Join(errs...)
}

// Counts reports how many callbacks are registered per extension point.
func (r *Registry) Counts() (loaded, saved, album int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loaded), len(r.saved), len(r.album)
}

func runFileHooks(ctx context.Context, point string, hooks []namedFileHook, file File) error {
	var errs []error
	for _, hook := range hooks {
		if err := hook.fn(ctx, file); err != nil {
			errs = append(errs, fmt.Errorf("%s hook %s: %w", point, hook.name, err))
		}
	}
	return errors.Join(errs...)
}

package library

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"audioquality/internal/host"
	"audioquality/internal/logging"
	"audioquality/internal/preflight"
	"audioquality/internal/services"
	"audioquality/internal/tagging"
)

// Result is the outcome of one file's trip through the pipeline.
type Result struct {
	Path       string              `json:"path" yaml:"path"`
	Assessment *tagging.Assessment `json:"assessment,omitempty" yaml:"assessment,omitempty"`
	Tags       map[string]string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Saved      bool                `json:"saved" yaml:"saved"`
	Err        error               `json:"-" yaml:"-"`
	Error      string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the file hit an error anywhere in the pipeline.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Options controls how the runner processes files.
type Options struct {
	// Workers bounds how many files are processed at once; values below 1
	// mean 1.
	Workers int
	// Sidecar, when set, supplies existing tags on load.
	Sidecar *Sidecar
	// Write persists tags to the sidecar and fires the file-saved hooks.
	Write bool
}

// Runner drives files through a host.Registry.
type Runner struct {
	registry *host.Registry
	opts     Options
	logger   *slog.Logger
}

// NewRunner builds a Runner over reg.
func NewRunner(reg *host.Registry, opts Options, logger *slog.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		registry: reg,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "library"),
	}
}

// Run processes paths and returns one Result per path in input order. A
// failing file never stops the run.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	started := time.Now()
	results := make([]Result, len(paths))
	files := make([]*File, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(r.opts.Workers, max(len(paths), 1))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], files[i] = r.processFile(ctx, paths[i])
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	r.dispatchAlbums(ctx, files)

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	logging.WithContext(ctx, r.logger).Info("scoring run finished",
		logging.Int("files", len(paths)),
		logging.Int("failed", failed),
		logging.Int("workers", workers),
		logging.Duration("elapsed", time.Since(started)),
	)
	return results
}

func (r *Runner) processFile(ctx context.Context, path string) (Result, *File) {
	res := Result{Path: path}
	ctx = services.WithFilePath(ctx, path)
	logger := logging.WithContext(ctx, r.logger)

	if err := ctx.Err(); err != nil {
		return res.fail(err), nil
	}
	if err := preflight.Readable(path); err != nil {
		logging.WarnWithContext(logger, "skipping unreadable file", "library.unreadable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the path and its permissions"),
			logging.String(logging.FieldImpact, "file was not scored"),
		)
		return res.fail(err), nil
	}

	tags := map[string]string{}
	if r.opts.Sidecar != nil {
		loaded, err := r.opts.Sidecar.Load(path)
		if err != nil {
			logging.WarnWithContext(logger, "could not read sidecar", "library.sidecar_read_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix or delete "+r.opts.Sidecar.PathFor(path)),
				logging.String(logging.FieldImpact, "file was not scored"),
			)
			return res.fail(err), nil
		}
		tags = loaded
	}

	file := NewFile(path, tags)
	logger.Debug("file loaded", logging.Int("tags", len(tags)))
	loadErr := r.registry.FileLoaded(ctx, file)
	if a, ok := file.Assessment(); ok {
		res.Assessment = &a
	}
	res.Tags = file.Tags()
	if loadErr != nil {
		logging.WarnWithContext(logger, "file-loaded hooks failed", "library.hook_failed",
			logging.Error(loadErr),
			logging.String(logging.FieldImpact, "tags were not saved"),
		)
		return res.fail(loadErr), file
	}

	if !r.opts.Write || r.opts.Sidecar == nil {
		return res, file
	}
	if err := r.opts.Sidecar.Save(ctx, path, res.Tags); err != nil {
		logging.ErrorWithContext(logger, "could not save tags", "library.save_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check write access to the file's directory"),
		)
		return res.fail(err), file
	}
	res.Saved = true
	if err := r.registry.FileSaved(ctx, file); err != nil {
		logging.WarnWithContext(logger, "file-saved hooks failed", "library.hook_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "tags were saved; post-save processing incomplete"),
		)
		return res.fail(err), file
	}
	return res, file
}

func (res Result) fail(err error) Result {
	res.Err = err
	res.Error = err.Error()
	return res
}

// dispatchAlbums fires one album callback per directory, in path order.
// Album title and artist come from the first file's album/albumartist tags,
// falling back to the directory name.
func (r *Runner) dispatchAlbums(ctx context.Context, files []*File) {
	groups := make(map[string][]*File)
	for _, f := range files {
		if f == nil {
			continue
		}
		dir := filepath.Dir(f.Path())
		groups[dir] = append(groups[dir], f)
	}
	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		album := albumFor(dir, groups[dir])
		if err := r.registry.AlbumMetadata(ctx, album); err != nil {
			logging.WarnWithContext(logging.WithContext(ctx, r.logger), "album hooks failed", "library.hook_failed",
				logging.String("album", album.Title),
				logging.Error(err),
			)
		}
	}
}

func albumFor(dir string, files []*File) host.Album {
	first := files[0].Metadata()
	title, ok := first.Get("album")
	if !ok || title == "" {
		title = filepath.Base(dir)
	}
	artist, ok := first.Get("albumartist")
	if !ok {
		artist, _ = first.Get("artist")
	}
	meta := host.NewMemoryMetadata(map[string]string{
		"album":     title,
		"directory": dir,
	})
	if artist != "" {
		_ = meta.Set("albumartist", artist)
	}
	return host.Album{Title: title, Artist: artist, Metadata: meta}
}

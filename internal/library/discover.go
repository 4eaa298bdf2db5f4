package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"audioquality/internal/config"
)

// Filter selects media files found while walking a directory.
type Filter struct {
	Extensions []string
	Include    []string
	Exclude    []string
}

// FilterFromConfig copies the discovery settings from cfg.
func FilterFromConfig(cfg config.Library) Filter {
	return Filter{
		Extensions: append([]string(nil), cfg.Extensions...),
		Include:    append([]string(nil), cfg.Include...),
		Exclude:    append([]string(nil), cfg.Exclude...),
	}
}

// Match reports whether rel, a slash-separated path relative to the walked
// root, passes the extension and glob filters.
func (f Filter) Match(rel string) bool {
	if !f.hasExtension(rel) {
		return false
	}
	if len(f.Include) > 0 && !matchAny(f.Include, rel) {
		return false
	}
	return !matchAny(f.Exclude, rel)
}

func (f Filter) hasExtension(name string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range f.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Patterns are validated at config load; a bad one never matches.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Discover expands roots into a sorted, de-duplicated list of file paths.
// Directories are walked recursively and filtered; paths given explicitly
// are kept as-is, even when they do not exist, so the runner can report them.
func Discover(ctx context.Context, roots []string, filter Filter) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			add(abs)
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(abs, path)
			if err != nil {
				return err
			}
			if filter.Match(filepath.ToSlash(rel)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", abs, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

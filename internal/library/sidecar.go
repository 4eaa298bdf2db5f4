package library

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"audioquality/internal/fileutil"
	"audioquality/internal/services"
)

// lockFileName guards read-modify-write of every sidecar in one directory.
const lockFileName = ".audioquality.lock"

const lockRetryDelay = 50 * time.Millisecond

// Sidecar stores a media file's tags in a TOML file next to it.
type Sidecar struct {
	suffix string
}

type sidecarDoc struct {
	Media string            `toml:"media"`
	Tags  map[string]string `toml:"tags"`
}

// NewSidecar returns a store that appends suffix to media paths.
func NewSidecar(suffix string) *Sidecar {
	return &Sidecar{suffix: suffix}
}

// PathFor returns the sidecar path for media.
func (s *Sidecar) PathFor(media string) string {
	return media + s.suffix
}

// Load returns the tags stored for media. A missing sidecar yields an empty
// map and no error.
func (s *Sidecar) Load(media string) (map[string]string, error) {
	data, err := os.ReadFile(s.PathFor(media))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, services.Wrap(services.ErrValidation, "sidecar", "read", s.PathFor(media), err)
	}
	return decodeSidecar(s.PathFor(media), data)
}

// Save merges tags over whatever is stored for media and writes the result
// atomically. Concurrent writers in the same directory are serialized with a
// file lock.
func (s *Sidecar) Save(ctx context.Context, media string, tags map[string]string) error {
	lock := flock.New(filepath.Join(filepath.Dir(media), lockFileName))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return services.Wrap(services.ErrTransient, "sidecar", "lock", filepath.Dir(media), err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, "sidecar", "lock", "lock not acquired", nil)
	}
	defer func() { _ = lock.Unlock() }()

	current, err := s.Load(media)
	if err != nil {
		return err
	}
	for k, v := range tags {
		current[k] = v
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(sidecarDoc{Media: filepath.Base(media), Tags: current}); err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.PathFor(media), buf.Bytes(), 0o644); err != nil {
		return services.Wrap(services.ErrValidation, "sidecar", "write", s.PathFor(media), err)
	}
	return nil
}

func decodeSidecar(path string, data []byte) (map[string]string, error) {
	var doc sidecarDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, services.Wrap(services.ErrValidation, "sidecar", "decode", path, err)
	}
	if doc.Tags == nil {
		doc.Tags = map[string]string{}
	}
	return doc.Tags, nil
}

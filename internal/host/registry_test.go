package host_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"audioquality/internal/host"
)

type stubFile struct {
	path string
	meta *host.MemoryMetadata
}

func (f stubFile) Path() string            { return f.path }
func (f stubFile) Metadata() host.Metadata { return f.meta }

func TestRegistryRunsHooksInOrder(t *testing.T) {
	reg := host.NewRegistry()
	var order []string
	reg.OnFileLoaded("first", func(context.Context, host.File) error {
		order = append(order, "first")
		return nil
	})
	reg.OnFileLoaded("second", func(context.Context, host.File) error {
		order = append(order, "second")
		return nil
	})
	reg.OnFileLoaded("nil", nil)

	file := stubFile{path: "/music/a.flac", meta: host.NewMemoryMetadata(nil)}
	if err := reg.FileLoaded(context.Background(), file); err != nil {
		t.Fatalf("FileLoaded: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"first", "second"}) {
		t.Fatalf("unexpected hook order: %v", order)
	}
	if loaded, saved, album := reg.Counts(); loaded != 2 || saved != 0 || album != 0 {
		t.Fatalf("unexpected counts: %d %d %d", loaded, saved, album)
	}
}

func TestRegistryContinuesAfterFailure(t *testing.T) {
	reg := host.NewRegistry()
	errWrite := errors.New("read-only tag store")
	ran := false
	reg.OnFileSaved("failing", func(context.Context, host.File) error { return errWrite })
	reg.OnFileSaved("after", func(context.Context, host.File) error {
		ran = true
		return nil
	})

	err := reg.FileSaved(context.Background(), stubFile{path: "/music/a.mp3", meta: host.NewMemoryMetadata(nil)})
	if !errors.Is(err, errWrite) {
		t.Fatalf("expected joined error to wrap hook failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "failing") {
		t.Fatalf("expected hook name in error, got %v", err)
	}
	if !ran {
		t.Fatal("later hooks must still run")
	}
}

func TestRegistryAlbumHooks(t *testing.T) {
	reg := host.NewRegistry()
	var got host.Album
	reg.OnAlbumMetadata("record", func(_ context.Context, album host.Album) error {
		got = album
		return nil
	})
	album := host.Album{Title: "Kind of Blue", Artist: "Miles Davis", Metadata: host.NewMemoryMetadata(nil)}
	if err := reg.AlbumMetadata(context.Background(), album); err != nil {
		t.Fatalf("AlbumMetadata: %v", err)
	}
	if got.Title != "Kind of Blue" || got.Artist != "Miles Davis" {
		t.Fatalf("unexpected album: %+v", got)
	}
}

func TestRegistryEmptyDispatchIsNil(t *testing.T) {
	reg := host.NewRegistry()
	if err := reg.FileLoaded(context.Background(), stubFile{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := reg.AlbumMetadata(context.Background(), host.Album{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestRegistryConcurrentDispatch(t *testing.T) {
	reg := host.NewRegistry()
	var mu sync.Mutex
	count := 0
	reg.OnFileLoaded("count", func(context.Context, host.File) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.FileLoaded(context.Background(), stubFile{meta: host.NewMemoryMetadata(nil)})
		}()
	}
	wg.Wait()
	if count != 16 {
		t.Fatalf("expected 16 hook runs, got %d", count)
	}
}

func TestMemoryMetadata(t *testing.T) {
	var meta host.MemoryMetadata
	if err := meta.Set(" audio_quality ", "85"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := meta.Set("", "x"); !errors.Is(err, host.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
	if v, ok := meta.Get("audio_quality"); !ok || v != "85" {
		t.Fatalf("unexpected value %q %v", v, ok)
	}
	_ = meta.Set("comment", "Audio Quality: 85%")
	if keys := meta.Keys(); !reflect.DeepEqual(keys, []string{"audio_quality", "comment"}) {
		t.Fatalf("unexpected keys %v", keys)
	}
	snap := meta.Snapshot()
	snap["audio_quality"] = "0"
	if v, _ := meta.Get("audio_quality"); v != "85" {
		t.Fatal("snapshot must be a copy")
	}
}

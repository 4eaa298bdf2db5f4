package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteMedia creates placeholder media files named rel under dir and returns
// their paths in argument order. Content is irrelevant: probing is stubbed.
func WriteMedia(t testing.TB, dir string, rel ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(rel))
	for _, name := range rel {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte{0x42}, 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	return paths
}

package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"audioquality/internal/config"
	"audioquality/internal/services"
)

func writeFFmpegStub(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho 'ffmpeg version 7.0'\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "track.flac")
	if err := os.WriteFile(f, []byte("fLaC"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Readable(f); err != nil {
		t.Fatalf("expected readable file, got %v", err)
	}
	if err := Readable(filepath.Join(dir, "missing.flac")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := Readable(dir); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected directory to be rejected, got %v", err)
	}
}

func TestReadable_NoPermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}
	f := filepath.Join(t.TempDir(), "locked.mp3")
	if err := os.WriteFile(f, []byte("ID3"), 0o000); err != nil {
		t.Fatal(err)
	}
	if err := Readable(f); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected permission failure, got %v", err)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil, nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.Probe.FFmpegBinary = writeFFmpegStub(t)
	cfg.Paths.LogDir = t.TempDir()

	track := filepath.Join(t.TempDir(), "a.flac")
	if err := os.WriteFile(track, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), &cfg, []string{track})
	if len(results) != 3 {
		t.Fatalf("expected ffmpeg, log dir and file checks, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if Failed(results) {
		t.Fatal("expected no failures")
	}
}

func TestRunAll_MissingFFmpeg(t *testing.T) {
	cfg := config.Default()
	cfg.Probe.FFmpegBinary = "clearly-not-present-ffmpeg"
	cfg.Paths.LogDir = ""

	results := RunAll(context.Background(), &cfg, []string{filepath.Join(t.TempDir(), "gone.mp3")})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Passed || results[1].Passed {
		t.Fatalf("expected both checks to fail: %+v", results)
	}
	if !Failed(results) {
		t.Fatal("expected Failed to report the failures")
	}
}

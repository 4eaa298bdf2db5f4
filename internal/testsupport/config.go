package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"audioquality/internal/config"
)

// FFmpegStubScript answers "-version" and prints canned stream info on
// stderr based on the input file's extension: .flac and .mp3 are
// recognized, anything else fails like a corrupt file.
const FFmpegStubScript = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 7.1-stub Copyright (c) 2000-2024 the FFmpeg developers"
  exit 0
fi
for last; do :; done
case "$last" in
  *.flac)
    echo "  Duration: 00:03:00.00, start: 0.000000, bitrate: 912 kb/s" >&2
    echo "  Stream #0:0: Audio: flac, 44100 Hz, stereo, s16" >&2
    ;;
  *.mp3)
    echo "  Duration: 00:03:00.00, start: 0.025057, bitrate: 128 kb/s" >&2
    echo "  Stream #0:0: Audio: mp3 (mp3float), 44100 Hz, stereo, fltp, 128 kb/s" >&2
    ;;
  *)
    echo "$last: Invalid data found when processing input" >&2
    exit 1
    ;;
esac
echo "At least one output file must be specified" >&2
exit 1
`

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose log directory lives in a per-test temp
// directory. Options are applied in order.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfgVal.Paths.LogDir, 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubbedFFmpeg writes FFmpegStubScript into the temp tree and points
// probe.ffmpeg_binary at it. Tests using it are skipped on Windows.
func WithStubbedFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		if runtime.GOOS == "windows" {
			b.t.Skip("ffmpeg stub requires a POSIX shell")
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "ffmpeg")
		if err := os.WriteFile(target, []byte(FFmpegStubScript), 0o755); err != nil {
			b.t.Fatalf("write ffmpeg stub: %v", err)
		}
		b.cfg.Probe.FFmpegBinary = target
	}
}

// WithSidecars enables sidecar tag files.
func WithSidecars() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.Sidecar = true
	}
}

// WriteConfig encodes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

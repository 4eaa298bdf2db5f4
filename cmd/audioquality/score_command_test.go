package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audioquality/internal/testsupport"
)

func TestScoreJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	paths := testsupport.WriteMedia(t, env.musicDir, "Album/01.flac", "Album/02.mp3", "Album/cover.jpg")
	broken := testsupport.WriteMedia(t, env.musicDir, "broken.bin")[0]

	out, _, err := runCLI(t, []string{"score", "--format", "json", env.musicDir, broken}, env.configPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	var report struct {
		RunID   string `json:"run_id"`
		Files   int    `json:"files"`
		Results []struct {
			Path       string            `json:"path"`
			Tags       map[string]string `json:"tags"`
			Assessment struct {
				Quality int  `json:"quality"`
				Unknown bool `json:"unknown"`
				Fact    struct {
					Codec string `json:"codec"`
				} `json:"fact"`
			} `json:"assessment"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.RunID == "" {
		t.Fatal("expected run id in report")
	}
	if report.Files != 3 {
		t.Fatalf("expected 3 files (cover.jpg filtered), got %d", report.Files)
	}
	byPath := map[string]int{}
	for i, res := range report.Results {
		byPath[res.Path] = i
	}
	flac := report.Results[byPath[paths[0]]]
	if flac.Assessment.Quality != 100 || flac.Tags["audio_quality"] != "100" || flac.Tags["comment"] != "Audio Quality: 100%" {
		t.Fatalf("unexpected flac result %+v", flac)
	}
	mp3 := report.Results[byPath[paths[1]]]
	// "mp3 (mp3float)" is not a table key, so the default base applies.
	if mp3.Assessment.Quality != 40 || mp3.Assessment.Fact.Codec != "mp3 (mp3float)" || mp3.Tags["comment"] != "Audio Quality: 40%" {
		t.Fatalf("unexpected mp3 result %+v", mp3)
	}
	bad := report.Results[byPath[broken]]
	if !bad.Assessment.Unknown || bad.Tags["audio_quality"] != "0" {
		t.Fatalf("unexpected broken result %+v", bad)
	}
}

func TestScorePolicyOverride(t *testing.T) {
	env := setupCLITestEnv(t)
	broken := testsupport.WriteMedia(t, env.musicDir, "broken.bin")[0]

	out, _, err := runCLI(t, []string{"score", "--format", "yaml", "--policy", "score", "--no-comment", broken}, env.configPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	requireContains(t, out, "audio_quality: \"10\"")
	if strings.Contains(out, "Audio Quality:") {
		t.Fatalf("comment must not be written with --no-comment:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"score", "--policy", "skip", broken}, env.configPath); err == nil {
		t.Fatal("expected invalid policy to be rejected")
	}
}

func TestScoreTableExplain(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteMedia(t, env.musicDir, "01.flac")

	out, _, err := runCLI(t, []string{"score", "--explain", "--workers", "2", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	requireContains(t, out, "01.flac")
	requireContains(t, out, "flac")
	requireContains(t, out, "912 kb/s")
	requireContains(t, out, "44100 Hz")
	requireContains(t, out, "100%")
	requireContains(t, out, "base 100 +30 bitrate +0 sample rate = 100")
	requireContains(t, out, "1 file(s), 0 failed")
}

func TestScoreWriteThenTags(t *testing.T) {
	env := setupCLITestEnv(t)
	track := testsupport.WriteMedia(t, env.musicDir, "01.mp3")[0]

	out, _, err := runCLI(t, []string{"score", "--write", track}, env.configPath)
	if err != nil {
		t.Fatalf("score --write: %v", err)
	}
	requireContains(t, out, "saved")
	if _, err := os.Stat(track + env.cfg.Library.SidecarSuffix); err != nil {
		t.Fatalf("expected sidecar: %v", err)
	}

	out, _, err = runCLI(t, []string{"tags", track}, env.configPath)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	requireContains(t, out, "audio_quality")
	requireContains(t, out, "Audio Quality: 40%")
	requireContains(t, out, track+env.cfg.Library.SidecarSuffix)

	out, _, err = runCLI(t, []string{"tags", "--format", "json", track}, env.configPath)
	if err != nil {
		t.Fatalf("tags json: %v", err)
	}
	var tags map[string]string
	if err := json.Unmarshal([]byte(out), &tags); err != nil {
		t.Fatalf("decode tags: %v", err)
	}
	if tags["audio_quality"] != "40" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestTagsWithoutSidecar(t *testing.T) {
	env := setupCLITestEnv(t)
	track := testsupport.WriteMedia(t, env.musicDir, "01.flac")[0]
	out, _, err := runCLI(t, []string{"tags", track}, env.configPath)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	requireContains(t, out, "No tags stored")
}

func TestScoreReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.musicDir, "missing.flac")
	out, _, err := runCLI(t, []string{"score", missing}, env.configPath)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	requireContains(t, out, "error:")
	requireContains(t, out, "1 file(s), 1 failed")
}

func TestScoreEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(env.musicDir, 0o755); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, []string{"score", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	requireContains(t, out, "No media files found")
}

func TestScoreRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"score", "--format", "xml", env.musicDir}, env.configPath); err == nil {
		t.Fatal("expected format error")
	}
}

func TestScoreWorkersFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"score", "--help"}, env.configPath)
	if err != nil {
		t.Fatalf("score --help: %v", err)
	}
	requireContains(t, out, "0 uses library.workers")
	if strings.Contains(out, "(default 1)") {
		t.Fatalf("help should not advertise a flag default for workers:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"score", "--workers=-1", env.musicDir}, env.configPath); err == nil {
		t.Fatal("expected negative workers to be rejected")
	}
}

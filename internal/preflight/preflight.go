package preflight

import (
	"context"

	"audioquality/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	Detail string `json:"detail" yaml:"detail"`
}

// RunAll executes the ffmpeg check, the log directory check when a log
// directory is configured, and a readability check for each path.
func RunAll(ctx context.Context, cfg *config.Config, paths []string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckFFmpeg(ctx, cfg.FFmpegBinary())}

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	for _, path := range paths {
		results = append(results, CheckReadable(path))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

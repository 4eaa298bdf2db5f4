package deps

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"audioquality/internal/services"
)

const versionTimeout = 5 * time.Second

// FFmpegVersion runs "<binary> -version" and returns the first line of its
// output, e.g. "ffmpeg version 7.1 Copyright (c) 2000-2024 the FFmpeg developers".
func FFmpegVersion(ctx context.Context, binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", services.Wrap(services.ErrConfiguration, "deps", "ffmpeg version", "binary not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrTimeout, "deps", "ffmpeg version", "no response", ctx.Err())
		}
		return "", services.Wrap(services.ErrExternalTool, "deps", "ffmpeg version", binary, err)
	}
	line, _, _ := strings.Cut(stdout.String(), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", services.Wrap(services.ErrExternalTool, "deps", "ffmpeg version", "empty output", nil)
	}
	return line, nil
}

// CheckFFmpeg resolves binary and records its version banner. A binary that
// resolves but cannot report a version is unavailable.
func CheckFFmpeg(ctx context.Context, binary string) Status {
	status := CheckBinaries([]Requirement{{
		Name:        "FFmpeg",
		Command:     binary,
		Description: "Required for audio probing",
	}})[0]
	if !status.Available {
		return status
	}
	version, err := FFmpegVersion(ctx, status.Path)
	if err != nil {
		status.Available = false
		status.Detail = err.Error()
		return status
	}
	status.Version = version
	return status
}

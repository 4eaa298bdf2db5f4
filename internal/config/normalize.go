package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeProbe()
	c.normalizeTagging()
	c.normalizeLibrary()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeProbe() {
	if value, ok := os.LookupEnv("AUDIOQUALITY_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Probe.FFmpegBinary = value
	}
	c.Probe.FFmpegBinary = strings.TrimSpace(c.Probe.FFmpegBinary)
	if c.Probe.FFmpegBinary == "" {
		c.Probe.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeTagging() {
	c.Tagging.QualityKey = strings.TrimSpace(c.Tagging.QualityKey)
	if c.Tagging.QualityKey == "" {
		c.Tagging.QualityKey = defaultQualityKey
	}
	c.Tagging.CommentKey = strings.TrimSpace(c.Tagging.CommentKey)
	if c.Tagging.CommentKey == "" {
		c.Tagging.CommentKey = defaultCommentKey
	}
	if strings.TrimSpace(c.Tagging.CommentFormat) == "" {
		c.Tagging.CommentFormat = defaultCommentFormat
	}
	c.Tagging.FailurePolicy = strings.ToLower(strings.TrimSpace(c.Tagging.FailurePolicy))
	if c.Tagging.FailurePolicy == "" {
		c.Tagging.FailurePolicy = FailurePolicyZero
	}
}

func (c *Config) normalizeLibrary() {
	if len(c.Library.Extensions) == 0 {
		c.Library.Extensions = append([]string(nil), defaultExtensions...)
	} else {
		exts := make([]string, 0, len(c.Library.Extensions))
		seen := make(map[string]struct{}, len(c.Library.Extensions))
		for _, ext := range c.Library.Extensions {
			normalized := strings.ToLower(strings.TrimSpace(ext))
			if normalized == "" {
				continue
			}
			if !strings.HasPrefix(normalized, ".") {
				normalized = "." + normalized
			}
			if _, exists := seen[normalized]; exists {
				continue
			}
			seen[normalized] = struct{}{}
			exts = append(exts, normalized)
		}
		c.Library.Extensions = exts
	}
	c.Library.Include = trimAll(c.Library.Include)
	c.Library.Exclude = trimAll(c.Library.Exclude)
	c.Library.SidecarSuffix = strings.TrimSpace(c.Library.SidecarSuffix)
	if c.Library.SidecarSuffix == "" {
		c.Library.SidecarSuffix = defaultSidecarSuffix
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProbe(); err != nil {
		return err
	}
	if err := c.validateTagging(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProbe() error {
	if strings.TrimSpace(c.Probe.FFmpegBinary) == "" {
		return errors.New("probe.ffmpeg_binary must be set")
	}
	if c.Probe.TimeoutSeconds < 0 {
		return errors.New("probe.timeout_seconds must be zero (disabled) or positive")
	}
	return nil
}

func (c *Config) validateTagging() error {
	switch c.Tagging.FailurePolicy {
	case FailurePolicyZero, FailurePolicyScore:
	default:
		return fmt.Errorf("tagging.failure_policy must be %q or %q, got %q", FailurePolicyZero, FailurePolicyScore, c.Tagging.FailurePolicy)
	}
	if c.Tagging.WriteComment {
		if err := CheckCommentFormat(c.Tagging.CommentFormat); err != nil {
			return fmt.Errorf("tagging.comment_format: %w", err)
		}
	}
	if c.Tagging.WriteComment && c.Tagging.CommentKey == c.Tagging.QualityKey {
		return errors.New("tagging.comment_key must differ from tagging.quality_key")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.Workers < 1 {
		return errors.New("library.workers must be at least 1")
	}
	if len(c.Library.Extensions) == 0 {
		return errors.New("library.extensions must list at least one extension")
	}
	for _, pattern := range append(append([]string(nil), c.Library.Include...), c.Library.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("library glob %q is invalid", pattern)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// CheckCommentFormat reports whether format renders a single %d score
// without leftover verbs or missing operands.
func CheckCommentFormat(format string) error {
	if !strings.Contains(format, "%d") {
		return errors.New("must contain %d for the score")
	}
	if rendered := fmt.Sprintf(format, 100); strings.Contains(rendered, "%!") {
		return fmt.Errorf("renders as %q; escape literal percent signs as %%%%", rendered)
	}
	return nil
}

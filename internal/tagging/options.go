package tagging

import (
	"fmt"
	"strings"

	"audioquality/internal/config"
)

// Failure policies for files that could not be probed at all.
const (
	PolicyZero  = config.FailurePolicyZero
	PolicyScore = config.FailurePolicyScore
)

// Options controls which tags the adapter writes.
type Options struct {
	QualityKey    string
	WriteComment  bool
	CommentKey    string
	CommentFormat string
	FailurePolicy string
}

// OptionsFromConfig copies the tagging section of cfg.
func OptionsFromConfig(cfg config.Tagging) Options {
	return Options{
		QualityKey:    cfg.QualityKey,
		WriteComment:  cfg.WriteComment,
		CommentKey:    cfg.CommentKey,
		CommentFormat: cfg.CommentFormat,
		FailurePolicy: cfg.FailurePolicy,
	}
}

// DefaultOptions mirrors config.Default().Tagging.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Tagging)
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if strings.TrimSpace(o.QualityKey) == "" {
		o.QualityKey = def.QualityKey
	}
	if strings.TrimSpace(o.CommentKey) == "" {
		o.CommentKey = def.CommentKey
	}
	if config.CheckCommentFormat(o.CommentFormat) != nil {
		o.CommentFormat = def.CommentFormat
	}
	if o.FailurePolicy == "" {
		o.FailurePolicy = def.FailurePolicy
	}
	return o
}

// Validate rejects unknown failure policies and comment formats that would
// render verb errors into the tag.
func (o Options) Validate() error {
	switch o.FailurePolicy {
	case "", PolicyZero, PolicyScore:
	default:
		return fmt.Errorf("failure policy must be %q or %q, got %q", PolicyZero, PolicyScore, o.FailurePolicy)
	}
	if o.WriteComment && o.CommentFormat != "" {
		if err := config.CheckCommentFormat(o.CommentFormat); err != nil {
			return fmt.Errorf("comment format: %w", err)
		}
	}
	return nil
}

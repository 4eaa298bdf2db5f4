package tagging

import (
	"testing"

	"audioquality/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Tagging
	cfg.FailurePolicy = config.FailurePolicyScore
	cfg.CommentKey = "description"
	opts := OptionsFromConfig(cfg)
	if opts.FailurePolicy != PolicyScore || opts.CommentKey != "description" || !opts.WriteComment {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{CommentFormat: "no verb"}.withDefaults()
	if opts.QualityKey != "audio_quality" || opts.CommentKey != "comment" {
		t.Fatalf("expected default keys, got %+v", opts)
	}
	if opts.CommentFormat != "Audio Quality: %d%%" {
		t.Fatalf("expected default comment format, got %q", opts.CommentFormat)
	}
	if opts.FailurePolicy != PolicyZero {
		t.Fatalf("expected zero policy, got %q", opts.FailurePolicy)
	}
}

func TestOptionsValidateCommentFormat(t *testing.T) {
	for _, format := range []string{"Q %d%", "%d of %d", "no verb"} {
		opts := DefaultOptions()
		opts.CommentFormat = format
		if err := opts.Validate(); err == nil {
			t.Fatalf("expected %q to be rejected", format)
		}
		opts.WriteComment = false
		if err := opts.Validate(); err != nil {
			t.Fatalf("format %q should be ignored without comments: %v", format, err)
		}
	}
	opts := DefaultOptions()
	opts.CommentFormat = ""
	if err := opts.Validate(); err != nil {
		t.Fatalf("empty format falls back to the default: %v", err)
	}
}

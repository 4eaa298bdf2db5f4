package services_test

import (
	"context"
	"testing"

	"audioquality/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithFilePath(ctx, "/music/track.flac")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if path, ok := services.FilePathFromContext(ctx); !ok || path != "/music/track.flac" {
		t.Fatalf("unexpected file path: %v %v", path, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithFilePath(ctx, "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id")
	}
	if _, ok := services.FilePathFromContext(ctx); ok {
		t.Fatal("expected no file path")
	}
}

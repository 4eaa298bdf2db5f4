package logging

import (
	"context"
	"log/slog"

	"audioquality/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one invocation of the scoring pipeline.
	FieldRunID = "run_id"
	// FieldFile is the media file a record refers to.
	FieldFile = "file"
	// FieldEventType names the diagnostic event behind a record.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldCodec, FieldBitrateKbps, FieldSampleRateHz and FieldQuality carry
	// probe facts and the derived score.
	FieldCodec        = "codec"
	FieldBitrateKbps  = "bitrate_kbps"
	FieldSampleRateHz = "sample_rate_hz"
	FieldQuality      = "quality"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if path, ok := services.FilePathFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFile, path))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}

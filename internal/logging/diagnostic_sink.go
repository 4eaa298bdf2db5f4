package logging

import (
	"context"
	"log/slog"

	"audioquality/internal/diagnostics"
)

// slogSink forwards diagnostic events to a slog logger.
type slogSink struct {
	logger *slog.Logger
}

// NewDiagnosticSink adapts logger to the diagnostics.Sink interface. Event
// severity maps onto slog levels; warnings and errors carry the standard
// event_type and error_hint fields.
func NewDiagnosticSink(logger *slog.Logger) diagnostics.Sink {
	if logger == nil {
		logger = NewNop()
	}
	return slogSink{logger: logger}
}

func (s slogSink) Report(event diagnostics.Event) {
	logger := s.logger
	if event.Component != "" {
		logger = logger.With(String(FieldComponent, event.Component))
	}

	attrs := make([]Attr, 0, len(event.Fields)+4)
	if event.Path != "" {
		attrs = append(attrs, String(FieldFile, event.Path))
	}
	attrs = append(attrs, String(FieldEventType, event.Kind))
	for _, key := range event.FieldKeys() {
		attrs = append(attrs, Any(key, event.Fields[key]))
	}
	if event.Err != nil {
		attrs = append(attrs, Error(event.Err))
	}

	msg := event.Message
	if msg == "" {
		msg = event.Kind
	}

	switch event.Severity {
	case diagnostics.SeverityError:
		ErrorWithContext(logger, msg, event.Kind, attrs...)
	case diagnostics.SeverityWarn:
		WarnWithContext(logger, msg, event.Kind, attrs...)
	case diagnostics.SeverityInfo:
		logger.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs...)
	default:
		logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
	}
}

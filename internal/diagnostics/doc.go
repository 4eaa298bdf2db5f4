// Package diagnostics defines the side channel the probing engine and the
// tagging adapter use to report failures and notable outcomes.
//
// Components receive a Sink at construction time instead of reaching for a
// process-wide logger, which keeps them testable in isolation. The logging
// package provides a slog-backed Sink for production wiring; tests use
// Recorder.
package diagnostics

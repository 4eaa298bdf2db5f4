// Package logging assembles structured slog loggers and formatting helpers used
// across audioquality components.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so probe and tagging code can
// tag log lines with run IDs and file paths automatically. It also adapts
// slog to the diagnostics.Sink interface and provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging

// Package services defines shared utilities consumed by the probing engine,
// the tagging adapter, and the reference host.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and file paths for logging and
//     diagnostics correlation.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification uniform (external tool, timeout, validation, ...).
//
// Use these helpers when wiring new components so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services

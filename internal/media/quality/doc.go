// Package quality converts probe.MediaFact values into a bounded 0-100
// quality score.
//
// Scoring is table driven: a per-codec base plus a bitrate bonus plus a
// sample-rate bonus, clamped once at the end. Tables are read-only values so
// a Scorer is safe to share between goroutines.
package quality

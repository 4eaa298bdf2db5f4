// Package probe extracts codec, bitrate, and sample-rate facts from a media
// file by running ffmpeg against it and parsing the diagnostic stream ffmpeg
// writes to stderr.
//
// Probing is best effort. Prober.Probe never returns an error: when ffmpeg
// cannot be started, times out, or rejects the file, the result is the
// full-unknown MediaFact and the failure goes to the configured
// diagnostics.Sink. Prober.Inspect exposes the same work with explicit errors
// for callers that want to show them.
//
// Key types:
//   - MediaFact: codec/bitrate/sample-rate triple
//   - Details: MediaFact plus container bitrate and the list of fields the
//     parser could not find
//   - Runner: seam around the subprocess call
package probe

// Package library is the reference host that drives the scoring pipeline
// over files on disk.
//
// Discover expands command-line arguments into media files using the
// configured extensions and doublestar include/exclude globs. Runner then
// walks each file through the host lifecycle: load (with tags from an
// optional TOML sidecar), the file-loaded hooks, save, the file-saved hooks,
// and finally one album callback per directory. Files are processed by a
// bounded pool of workers; results come back in input order.
package library

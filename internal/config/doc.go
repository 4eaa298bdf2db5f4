// Package config loads, normalizes, and validates audioquality configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AUDIOQUALITY_FFMPEG. The Config type centralizes every knob the prober,
// the tagging adapter, and the CLI host need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical policy names, and clear validation errors.
package config

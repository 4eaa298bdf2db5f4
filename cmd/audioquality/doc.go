// Package main hosts the audioquality CLI entrypoint and command graph.
//
// The Cobra command tree is a reference host for the scoring pipeline: it
// discovers media files, loads them into an in-memory tag store, fires the
// registered lifecycle hooks and reports what was written. Configuration is
// resolved lazily so scaffolding commands such as "config init" run without
// a valid config file.
package main

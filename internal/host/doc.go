// Package host defines the extension points a media-cataloging application
// exposes to audioquality: the file and metadata views a processor works
// against, and a Registry of ordered lifecycle callbacks.
//
// Processors register explicitly at startup. The registry runs callbacks in
// registration order and keeps going when one fails, joining the errors for
// the caller.
package host

// Package preflight provides readiness checks for the ffmpeg binary and the
// filesystem paths audioquality reads and writes.
//
// These checks run in two contexts:
//   - The CLI "audioquality check" command runs RunAll and prints every
//     result.
//   - The library runner calls Readable before loading each file so
//     unreadable files are skipped before ffmpeg is spawned.
package preflight

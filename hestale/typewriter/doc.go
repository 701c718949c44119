// Package typewriter produces the decorative terminal output of the hestale
// CLI.
//
// Effects are lazy sequences of Frames. A frame is a chunk of already-styled
// text and the delay to wait before writing it. Building a sequence does no
// I/O; Play drives it against a writer and honors context cancellation.
package typewriter

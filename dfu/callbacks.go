package dfu

import "time"

// Progress describes the state of a file transfer after a committed chunk.
type Progress struct {
	// Kind identifies the file being transferred
	Kind FileKind

	// Offset is the number of bytes committed on the peripheral
	Offset uint32

	// Total is the file length in bytes
	Total uint32

	// Percentage is 100*Offset/Total; it reaches exactly 100 only on the
	// final commit
	Percentage float64

	// Elapsed is the time since the file transfer started
	Elapsed time.Duration
}

// ProgressCallback is called after each committed chunk. Implementations
// should return quickly; the transfer blocks while the callback runs.
// Abandoning a transfer mid-chunk is done through the context passed to
// Update, not from inside the callback.
type ProgressCallback func(Progress)

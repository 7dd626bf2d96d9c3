package dfu

import "fmt"

// ProtocolError represents a control command the peripheral answered with a
// non-success status code.
type ProtocolError struct {
	// Opcode is the command that failed
	Opcode byte

	// Status is the status code from the response
	Status byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("control command 0x%02X rejected: status 0x%02X", e.Opcode, e.Status)
}

// ObjectCreateError indicates the create-object step failed; the whole file
// transfer is abandoned.
type ObjectCreateError struct {
	Kind FileKind
	Err  error
}

func (e *ObjectCreateError) Error() string {
	return fmt.Sprintf("create %s object: %v", e.Kind, e.Err)
}

func (e *ObjectCreateError) Unwrap() error { return e.Err }

// ChunkCreateError indicates the create-chunk step failed at the given
// committed offset.
type ChunkCreateError struct {
	Kind   FileKind
	Offset uint32
	Err    error
}

func (e *ChunkCreateError) Error() string {
	return fmt.Sprintf("create %s chunk at offset %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *ChunkCreateError) Unwrap() error { return e.Err }

// CrcMismatchError indicates the peripheral's cumulative CRC diverged from
// the locally computed one. The transfer halts; no chunk is retried.
type CrcMismatchError struct {
	Kind     FileKind
	Offset   uint32
	Expected uint32
	Actual   uint32
}

func (e *CrcMismatchError) Error() string {
	return fmt.Sprintf("%s CRC mismatch at offset %d: expected 0x%08X, got 0x%08X",
		e.Kind, e.Offset, e.Expected, e.Actual)
}

// ExecuteError indicates the execute/commit step failed on a chunk where a
// response was still required.
type ExecuteError struct {
	Kind   FileKind
	Offset uint32
	Err    error
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("execute %s chunk at offset %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *ExecuteError) Unwrap() error { return e.Err }

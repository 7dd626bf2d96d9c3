// Package dfu implements the firmware update transfer state machine: a
// chunked binary transfer over a dedicated control/data channel pair with
// cumulative CRC-32 verification and a per-chunk commit.
//
// # Protocol Overview
//
// Control commands and their responses:
//
//	Create object:    [0x06][KIND]
//	                  -> [0x60][0x06][STATUS][MAX_SIZE(4)][OFFSET(4)][CRC(4)]
//	Create chunk:     [0x01][KIND][SIZE(4)]
//	                  -> [0x60][0x01][STATUS]
//	Request checksum: [0x03]
//	                  -> [0x60][0x03][STATUS][OFFSET(4)][CRC(4)]
//	Execute:          [0x04]
//	                  -> [0x60][0x04][STATUS]
//
// Multi-byte fields are little-endian. Chunk data is streamed on the data
// channel in sub-packets of at most MTU-3 bytes, fire-and-forget; only
// control commands are awaited.
//
// # Transfer Sequence
//
// An update ships two files in order, the init metadata then the image, with
// a settle delay between them. Per file: create the object (the response
// reports the peripheral's chunk size ceiling and, for a resumed transfer,
// the already-committed offset and CRC), then loop create-chunk / stream /
// verify-CRC / execute until the committed offset reaches the file length.
//
// The CRC reported by the peripheral covers all file bytes from index 0
// through the committed offset, not the chunk alone. A mismatch aborts the
// file with no automatic retry; the transfer can be resumed later because
// the next create-object reports the peripheral's true offset.
//
// The peripheral reboots into the new image immediately after the final
// execute, usually dropping the link before the response arrives. That
// specific failure is expected and swallowed; everywhere else a lost
// response is fatal for the step.
package dfu

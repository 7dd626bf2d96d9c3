// Package script uploads a text file to the peripheral's script interpreter
// through a three-phase open/write/close handshake built on the framer's
// string-send primitive.
//
// The payload is escaped so it embeds safely inside quoted string literals,
// then chunked to fit the negotiated MTU with headroom for the wrapping
// command syntax. Every command must be answered by the single-byte ack
// marker; any other response, or a response timeout, aborts the remaining
// steps.
//
// Known limitation: a failed or timed-out write does not attempt a
// close-on-error cleanup, so the peripheral's file handle may be left open
// until the next successful open.
package script

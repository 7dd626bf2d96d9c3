// Package framing implements the packet layer of the peripheral's
// application protocol: outbound fragmentation of payloads into MTU-sized
// packets and classification of inbound notifications.
//
// # Wire Format
//
// Outbound packets come in two flavors sharing one characteristic:
//
//	String command: [UTF-8 text...]                      (no type byte)
//	Data packet:    [0x01][payload...]
//
// A framed message splits a (code, payload) pair across data packets:
//
//	First packet:        [0x01][CODE][LEN_H][LEN_L][payload...]
//	Continuation packet: [0x01][CODE][payload...]
//
// LEN is the 16-bit big-endian total payload length, so a message payload is
// capped at 65535 bytes. Concatenating the payload fragments of all packets
// in order reconstructs the original payload exactly.
//
// # Size Limits
//
// All limits derive from the negotiated MTU and are recomputed from the
// transport on every send, so a renegotiated MTU takes effect immediately:
//
//	maxStringBytes = MTU - 3
//	maxDataBytes   = MTU - 4
//
// # Inbound
//
// Each inbound notification is classified exactly once at the boundary by
// its leading byte: 0x01 marks a data packet (type byte stripped), anything
// else is UTF-8 text. The framer performs no cross-packet reassembly of
// inbound messages; that belongs to the layer above.
package framing

package framing

import (
	"context"

	"github.com/lumenwear/blelink/logging"
	"github.com/lumenwear/blelink/transport"
)

// Framer fragments outbound payloads into link-sized packets and classifies
// inbound notifications for one transport link.
//
// A Framer holds no cross-call state; every send owns its scratch buffer for
// the duration of the call only. Callers must still serialize operations
// against the same link: issuing a second SendMessage before the first
// completes would interleave packet ordering on the wire.
type Framer struct {
	link transport.Link
	log  logging.Logger
}

// Option configures a Framer.
type Option func(*Framer)

// WithLogger sets a logger for framing operations.
func WithLogger(logger logging.Logger) Option {
	return func(f *Framer) {
		f.log = logger
	}
}

// New creates a Framer bound to the given link.
func New(link transport.Link, opts ...Option) *Framer {
	if link == nil {
		panic("link cannot be nil")
	}

	f := &Framer{
		link: link,
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Params returns the current MTU-derived link parameters.
func (f *Framer) Params() Params {
	return ParamsForMTU(f.link.MTU())
}

// SendData prepends the data type byte to payload and forwards one packet to
// the transport without waiting for acknowledgment.
//
// The payload must fit in a single packet (maxDataBytes); SendMessage handles
// fragmentation for anything larger.
func (f *Framer) SendData(ctx context.Context, payload []byte) error {
	params := f.Params()
	if params.MaxDataBytes < 1 {
		return ErrMTUTooSmall
	}
	if len(payload) > params.MaxDataBytes {
		return &PayloadTooLargeError{Size: len(payload), Limit: params.MaxDataBytes}
	}

	packet := make([]byte, 0, len(payload)+1)
	packet = append(packet, DataPacketType)
	packet = append(packet, payload...)
	return f.link.Write(ctx, packet, false)
}

// SendDataRaw sends a buffer whose type byte the caller has already placed at
// index 0, avoiding the copy SendData performs.
func (f *Framer) SendDataRaw(ctx context.Context, buf []byte) error {
	if len(buf) == 0 || buf[0] != DataPacketType {
		var got byte
		if len(buf) > 0 {
			got = buf[0]
		}
		return &MissingHeaderError{Got: got}
	}

	params := f.Params()
	if len(buf) > params.MaxDataBytes+1 {
		return &PayloadTooLargeError{Size: len(buf), Limit: params.MaxDataBytes + 1}
	}
	return f.link.Write(ctx, buf, false)
}

// SendString sends a UTF-8 command string. String commands carry no type byte
// and must fit in a single packet (maxStringBytes).
func (f *Framer) SendString(ctx context.Context, s string) error {
	params := f.Params()
	if params.MaxStringBytes < 1 {
		return ErrMTUTooSmall
	}
	if len(s) > params.MaxStringBytes {
		return &PayloadTooLargeError{Size: len(s), Limit: params.MaxStringBytes}
	}
	return f.link.Write(ctx, []byte(s), true)
}

// SendMessage fragments a (msgCode, payload) pair into an ordered sequence of
// data packets. The first packet carries the 16-bit big-endian total length
// after the code; continuation packets repeat only the type byte and code.
//
// Packets are emitted strictly one after another, each completing before the
// next is prepared. A payload that is an exact multiple of the packet
// capacity never produces a trailing empty packet.
//
// Fails with *PayloadTooLargeError and performs zero writes when payload
// exceeds MaxMessagePayload.
func (f *Framer) SendMessage(ctx context.Context, msgCode byte, payload []byte) error {
	if len(payload) > MaxMessagePayload {
		return &PayloadTooLargeError{Size: len(payload), Limit: MaxMessagePayload}
	}

	params := f.Params()
	if params.MaxDataBytes < FirstPacketHeaderSize {
		return ErrMTUTooSmall
	}

	// Payload capacity of a continuation packet; the first packet loses two
	// more bytes to the length field.
	chunkCap := params.MaxDataBytes - 1
	firstCap := chunkCap - 2

	// One scratch buffer serves every packet of this call.
	scratch := make([]byte, 0, params.MaxDataBytes+1)

	n := len(payload)
	if n > firstCap {
		n = firstCap
	}
	scratch = append(scratch, DataPacketType, msgCode, byte(len(payload)>>8), byte(len(payload)))
	scratch = append(scratch, payload[:n]...)
	if err := f.SendDataRaw(ctx, scratch); err != nil {
		return err
	}
	sent := n

	for sent < len(payload) {
		n = len(payload) - sent
		if n > chunkCap {
			n = chunkCap
		}
		scratch = append(scratch[:0], DataPacketType, msgCode)
		scratch = append(scratch, payload[sent:sent+n]...)
		if err := f.SendDataRaw(ctx, scratch); err != nil {
			return err
		}
		sent += n
	}

	f.log.Debug("message sent", "code", msgCode, "payload_bytes", len(payload))
	return nil
}

package framing

import (
	"context"
	"time"

	"github.com/lumenwear/blelink/transport"
)

// Kind discriminates inbound notification classes.
type Kind int

const (
	// KindData is a data packet: leading 0x01, payload follows
	KindData Kind = iota

	// KindText is a UTF-8 string notification
	KindText
)

// Inbound is one classified notification. Classification happens exactly once
// at the boundary; consumers switch on Kind instead of re-inspecting raw
// bytes.
type Inbound struct {
	Kind Kind

	// Data holds the payload with the type byte stripped (KindData only)
	Data []byte

	// Text holds the whole buffer decoded as UTF-8 (KindText only)
	Text string
}

// Classify inspects one raw notification buffer. Buffers starting with the
// data type byte are data packets; everything else, including an empty
// buffer, is text.
func Classify(raw []byte) Inbound {
	if len(raw) > 0 && raw[0] == DataPacketType {
		return Inbound{Kind: KindData, Data: raw[1:]}
	}
	return Inbound{Kind: KindText, Text: string(raw)}
}

// IsAck reports whether the notification is the single-byte success marker
// used by text-command handshakes.
func (in Inbound) IsAck(marker byte) bool {
	return in.Kind == KindText && len(in.Text) == 1 && in.Text[0] == marker
}

// Next receives and classifies the next inbound notification, waiting at most
// timeout. It is the response half of a string-command exchange.
func (f *Framer) Next(ctx context.Context, timeout time.Duration) (Inbound, error) {
	raw, err := transport.Receive(ctx, f.link.Notifications(), timeout)
	if err != nil {
		return Inbound{}, err
	}
	return Classify(raw), nil
}

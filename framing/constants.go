package framing

// DataPacketType is the leading byte marking a raw/chunked data packet (0x01).
// Notifications starting with any other byte are UTF-8 text.
const DataPacketType = 0x01

// MaxMessagePayload is the largest payload a framed message can carry,
// bounded by the 16-bit length field in the first packet.
const MaxMessagePayload = 0xFFFF

// Header sizes for framed message packets.
const (
	// FirstPacketHeaderSize covers [TYPE][CODE][LEN_H][LEN_L]
	FirstPacketHeaderSize = 4

	// ContPacketHeaderSize covers [TYPE][CODE]
	ContPacketHeaderSize = 2
)

// ATT overheads subtracted from the MTU when deriving size limits.
const (
	stringOverhead = 3
	dataOverhead   = 4
)

// Params are the MTU-derived link parameters.
type Params struct {
	// MTU is the negotiated maximum transmission unit
	MTU uint16

	// MaxStringBytes is the largest string command sendable in one packet
	MaxStringBytes int

	// MaxDataBytes is the largest data payload sendable in one packet,
	// excluding the type byte
	MaxDataBytes int
}

// ParamsForMTU derives the link parameters for a negotiated MTU.
func ParamsForMTU(mtu uint16) Params {
	return Params{
		MTU:            mtu,
		MaxStringBytes: int(mtu) - stringOverhead,
		MaxDataBytes:   int(mtu) - dataOverhead,
	}
}

package framing

import (
	"errors"
	"fmt"
)

// ErrMTUTooSmall indicates the negotiated MTU cannot carry the requested
// packet shape at all (framed messages need maxDataBytes >= 4).
var ErrMTUTooSmall = errors.New("negotiated MTU too small")

// PayloadTooLargeError indicates a payload exceeds the applicable size limit.
type PayloadTooLargeError struct {
	Size  int
	Limit int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d bytes, limit is %d", e.Size, e.Limit)
}

// MissingHeaderError indicates a raw buffer handed to SendDataRaw does not
// start with the data packet type byte.
type MissingHeaderError struct {
	Got byte
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("missing data packet header: got 0x%02X at index 0, expected 0x%02X", e.Got, DataPacketType)
}

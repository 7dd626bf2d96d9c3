package dfu

import (
	"encoding/binary"
	"fmt"
)

// ObjectInfo is the peripheral's reply to a create-object command. A non-zero
// Offset means a prior partial transfer exists and the chunk loop resumes
// there; CRC is the peripheral's cumulative checksum over those bytes.
type ObjectInfo struct {
	// MaxChunkSize is the peripheral-advertised ceiling per chunk
	MaxChunkSize uint32

	// Offset is the number of file bytes already committed
	Offset uint32

	// CRC is the cumulative CRC-32 over file[0:Offset]
	CRC uint32
}

// ChecksumReport is the peripheral's reply to a checksum request.
type ChecksumReport struct {
	// Offset is the number of file bytes received so far
	Offset uint32

	// CRC is the cumulative CRC-32 over file[0:Offset]
	CRC uint32
}

// validateResponse checks the common control response header: length, the
// response prefix, the echoed opcode and the status code. Length is always
// validated before any fixed-offset read so a short or malformed buffer
// surfaces as a parse error instead of an out-of-bounds panic.
func validateResponse(frame []byte, opcode byte) error {
	if len(frame) < responseHeaderSize {
		return fmt.Errorf("response too short: got %d bytes, minimum is %d", len(frame), responseHeaderSize)
	}
	if frame[0] != ResponsePrefix {
		return fmt.Errorf("invalid response prefix: got 0x%02X, expected 0x%02X", frame[0], ResponsePrefix)
	}
	if frame[1] != opcode {
		return fmt.Errorf("response for wrong command: got 0x%02X, expected 0x%02X", frame[1], opcode)
	}
	if frame[2] != StatusSuccess {
		return &ProtocolError{Opcode: opcode, Status: frame[2]}
	}
	return nil
}

// ParseObjectInfo validates and parses a create-object response.
//
// Frame structure (ObjectInfoResponseSize bytes):
//
//	[0x60][0x06][STATUS][MAX_SIZE(4)][OFFSET(4)][CRC(4)]
func ParseObjectInfo(frame []byte) (*ObjectInfo, error) {
	if err := validateResponse(frame, CmdCreateObject); err != nil {
		return nil, err
	}
	if len(frame) < ObjectInfoResponseSize {
		return nil, fmt.Errorf("object info response too short: got %d bytes, expected %d", len(frame), ObjectInfoResponseSize)
	}

	return &ObjectInfo{
		MaxChunkSize: binary.LittleEndian.Uint32(frame[objectInfoMaxSizeOffset : objectInfoMaxSizeOffset+4]),
		Offset:       binary.LittleEndian.Uint32(frame[objectInfoOffsetOffset : objectInfoOffsetOffset+4]),
		CRC:          binary.LittleEndian.Uint32(frame[objectInfoCRCOffset : objectInfoCRCOffset+4]),
	}, nil
}

// ParseChecksumReport validates and parses a checksum-report response.
//
// Frame structure (ChecksumResponseSize bytes):
//
//	[0x60][0x03][STATUS][OFFSET(4)][CRC(4)]
func ParseChecksumReport(frame []byte) (*ChecksumReport, error) {
	if err := validateResponse(frame, CmdRequestChecksum); err != nil {
		return nil, err
	}
	if len(frame) < ChecksumResponseSize {
		return nil, fmt.Errorf("checksum response too short: got %d bytes, expected %d", len(frame), ChecksumResponseSize)
	}

	return &ChecksumReport{
		Offset: binary.LittleEndian.Uint32(frame[checksumOffsetOffset : checksumOffsetOffset+4]),
		CRC:    binary.LittleEndian.Uint32(frame[checksumCRCOffset : checksumCRCOffset+4]),
	}, nil
}

package dfu

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectInfoFrame(maxSize, offset, crc uint32) []byte {
	frame := make([]byte, ObjectInfoResponseSize)
	frame[0] = ResponsePrefix
	frame[1] = CmdCreateObject
	frame[2] = StatusSuccess
	binary.LittleEndian.PutUint32(frame[3:], maxSize)
	binary.LittleEndian.PutUint32(frame[7:], offset)
	binary.LittleEndian.PutUint32(frame[11:], crc)
	return frame
}

func checksumFrame(offset, crc uint32) []byte {
	frame := make([]byte, ChecksumResponseSize)
	frame[0] = ResponsePrefix
	frame[1] = CmdRequestChecksum
	frame[2] = StatusSuccess
	binary.LittleEndian.PutUint32(frame[3:], offset)
	binary.LittleEndian.PutUint32(frame[7:], crc)
	return frame
}

func TestParseObjectInfo(t *testing.T) {
	info, err := ParseObjectInfo(objectInfoFrame(4096, 1024, 0xDEADBEEF))
	require.NoError(t, err)
	assert.Equal(t, uint32(4096), info.MaxChunkSize)
	assert.Equal(t, uint32(1024), info.Offset)
	assert.Equal(t, uint32(0xDEADBEEF), info.CRC)
}

func TestParseObjectInfoShortBuffer(t *testing.T) {
	// A malformed short response must fail cleanly, not read out of bounds.
	_, err := ParseObjectInfo([]byte{ResponsePrefix, CmdCreateObject, StatusSuccess, 0x01})
	assert.Error(t, err)

	_, err = ParseObjectInfo([]byte{ResponsePrefix})
	assert.Error(t, err)

	_, err = ParseObjectInfo(nil)
	assert.Error(t, err)
}

func TestParseObjectInfoBadPrefix(t *testing.T) {
	frame := objectInfoFrame(4096, 0, 0)
	frame[0] = 0x61
	_, err := ParseObjectInfo(frame)
	assert.Error(t, err)
}

func TestParseObjectInfoWrongOpcode(t *testing.T) {
	frame := objectInfoFrame(4096, 0, 0)
	frame[1] = CmdRequestChecksum
	_, err := ParseObjectInfo(frame)
	assert.Error(t, err)
}

func TestParseObjectInfoRejectedStatus(t *testing.T) {
	frame := objectInfoFrame(4096, 0, 0)
	frame[2] = 0x0A

	_, err := ParseObjectInfo(frame)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, byte(CmdCreateObject), protoErr.Opcode)
	assert.Equal(t, byte(0x0A), protoErr.Status)
}

func TestParseChecksumReport(t *testing.T) {
	report, err := ParseChecksumReport(checksumFrame(2048, 0xCAFEF00D))
	require.NoError(t, err)
	assert.Equal(t, uint32(2048), report.Offset)
	assert.Equal(t, uint32(0xCAFEF00D), report.CRC)
}

func TestParseChecksumReportShortBuffer(t *testing.T) {
	_, err := ParseChecksumReport(checksumFrame(0, 0)[:10])
	assert.Error(t, err)
}

func TestValidateResponse(t *testing.T) {
	assert.NoError(t, validateResponse([]byte{ResponsePrefix, CmdExecute, StatusSuccess}, CmdExecute))
	assert.Error(t, validateResponse([]byte{ResponsePrefix, CmdExecute}, CmdExecute))

	var protoErr *ProtocolError
	err := validateResponse([]byte{ResponsePrefix, CmdExecute, 0x04}, CmdExecute)
	assert.ErrorAs(t, err, &protoErr)
}

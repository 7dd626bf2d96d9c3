package dfu

import "encoding/binary"

// BuildCreateObjectCmd constructs a create-object control command.
//
// Frame structure:
//
//	[0x06][KIND]
func BuildCreateObjectCmd(kind FileKind) []byte {
	return []byte{CmdCreateObject, byte(kind)}
}

// BuildCreateChunkCmd constructs a create-chunk control command announcing
// the size of the chunk about to be streamed.
//
// Frame structure:
//
//	[0x01][KIND][SIZE_0][SIZE_1][SIZE_2][SIZE_3]   (size little-endian)
func BuildCreateChunkCmd(kind FileKind, size uint32) []byte {
	cmd := make([]byte, 6)
	cmd[0] = CmdCreateChunk
	cmd[1] = byte(kind)
	binary.LittleEndian.PutUint32(cmd[2:6], size)
	return cmd
}

// BuildRequestChecksumCmd constructs a checksum-report control command.
//
// Frame structure:
//
//	[0x03]
func BuildRequestChecksumCmd() []byte {
	return []byte{CmdRequestChecksum}
}

// BuildExecuteCmd constructs an execute/commit control command.
//
// Frame structure:
//
//	[0x04]
func BuildExecuteCmd() []byte {
	return []byte{CmdExecute}
}

package dfu

// Control opcodes.
const (
	// CmdCreateChunk allocates space for the next data chunk
	CmdCreateChunk = 0x01

	// CmdRequestChecksum asks for the committed offset and running CRC
	CmdRequestChecksum = 0x03

	// CmdExecute commits the streamed chunk; on the last image chunk the
	// peripheral reboots into the new firmware
	CmdExecute = 0x04

	// CmdCreateObject opens a transfer object and reports resume state
	CmdCreateObject = 0x06
)

// Control response framing.
const (
	// ResponsePrefix starts every control response
	ResponsePrefix = 0x60

	// StatusSuccess is the success status code in a control response
	StatusSuccess = 0x01
)

// FileKind selects which transfer object a control command addresses.
type FileKind byte

const (
	// KindInit is the init metadata file, transferred first
	KindInit FileKind = 0x01

	// KindImage is the firmware image itself
	KindImage FileKind = 0x02
)

func (k FileKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Response layout offsets, counted from the start of the response buffer
// (prefix, opcode, status occupy bytes 0-2). All fields are little-endian.
const (
	responseHeaderSize = 3

	objectInfoMaxSizeOffset = 3
	objectInfoOffsetOffset  = 7
	objectInfoCRCOffset     = 11

	// ObjectInfoResponseSize is the full create-object response length
	ObjectInfoResponseSize = 15

	checksumOffsetOffset = 3
	checksumCRCOffset    = 7

	// ChecksumResponseSize is the full checksum-report response length
	ChecksumResponseSize = 11
)

// dataPacketOverhead is subtracted from the data channel MTU when splitting a
// chunk into sub-packets.
const dataPacketOverhead = 3

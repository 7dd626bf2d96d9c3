package dfu

import (
	"context"
	"hash/crc32"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenwear/blelink/transport"
)

// mockPeripheral scripts a DFU target behind a control/data MockLink pair.
// It accumulates streamed bytes per object and answers control commands the
// way the device firmware would.
type mockPeripheral struct {
	ctrl *transport.MockLink
	data *transport.MockLink

	maxChunk uint32
	objects  map[FileKind][]byte
	current  FileKind

	rejectCreate    bool
	shortCreate     bool
	rejectChunk     bool
	corruptCRC      bool
	silentExecute   bool
	dropAtOffset    uint32 // close the control stream on execute at this offset
	executeReplies  int
}

func newMockPeripheral(maxChunk uint32) *mockPeripheral {
	p := &mockPeripheral{
		ctrl:     transport.NewMockLink(23),
		data:     transport.NewMockLink(23),
		maxChunk: maxChunk,
		objects:  make(map[FileKind][]byte),
	}
	p.ctrl.OnWrite(p.handleControl)
	p.data.OnWrite(func(b []byte, _ bool) {
		p.objects[p.current] = append(p.objects[p.current], b...)
	})
	return p
}

func (p *mockPeripheral) handleControl(cmd []byte, _ bool) {
	switch cmd[0] {
	case CmdCreateObject:
		p.current = FileKind(cmd[1])
		if p.rejectCreate {
			p.ctrl.Notify([]byte{ResponsePrefix, CmdCreateObject, 0x0B})
			return
		}
		if p.shortCreate {
			p.ctrl.Notify([]byte{ResponsePrefix, CmdCreateObject, StatusSuccess, 0x01})
			return
		}
		received := p.objects[p.current]
		p.ctrl.Notify(objectInfoFrame(p.maxChunk, uint32(len(received)), crc32.ChecksumIEEE(received)))

	case CmdCreateChunk:
		if p.rejectChunk {
			p.ctrl.Notify([]byte{ResponsePrefix, CmdCreateChunk, 0x04})
			return
		}
		p.ctrl.Notify([]byte{ResponsePrefix, CmdCreateChunk, StatusSuccess})

	case CmdRequestChecksum:
		received := p.objects[p.current]
		crc := crc32.ChecksumIEEE(received)
		if p.corruptCRC {
			crc++
		}
		p.ctrl.Notify(checksumFrame(uint32(len(received)), crc))

	case CmdExecute:
		if p.silentExecute {
			return
		}
		if p.dropAtOffset > 0 && uint32(len(p.objects[p.current])) >= p.dropAtOffset {
			p.ctrl.Close()
			return
		}
		p.executeReplies++
		p.ctrl.Notify([]byte{ResponsePrefix, CmdExecute, StatusSuccess})
	}
}

func testFile(n int) []byte {
	file := make([]byte, n)
	for i := range file {
		file[i] = byte(i * 13)
	}
	return file
}

func TestTransferFileStreamsWholeFile(t *testing.T) {
	p := newMockPeripheral(40)

	var progress []float64
	u := New(p.ctrl, p.data, WithProgressCallback(func(pr Progress) {
		assert.Equal(t, KindImage, pr.Kind)
		progress = append(progress, pr.Percentage)
	}))

	file := testFile(100)
	require.NoError(t, u.TransferFile(context.Background(), KindImage, file))

	assert.Equal(t, file, p.objects[KindImage])
	assert.Equal(t, []float64{40, 80, 100}, progress)
	assert.Equal(t, 3, p.executeReplies)

	// Data sub-packets never exceed MTU-3.
	for _, w := range p.data.Writes() {
		assert.LessOrEqual(t, len(w), 20)
	}
}

func TestTransferFileExactChunkSize(t *testing.T) {
	p := newMockPeripheral(64)

	var chunks int
	u := New(p.ctrl, p.data, WithProgressCallback(func(pr Progress) {
		chunks++
		assert.Equal(t, float64(100), pr.Percentage)
	}))

	// File length exactly equal to maxChunkSize: one chunk-loop iteration.
	file := testFile(64)
	require.NoError(t, u.TransferFile(context.Background(), KindImage, file))
	assert.Equal(t, 1, chunks)
	assert.Equal(t, file, p.objects[KindImage])
}

func TestTransferFileResumesFromReportedOffset(t *testing.T) {
	p := newMockPeripheral(40)
	file := testFile(100)

	// A prior partial transfer committed the first 40 bytes.
	p.objects[KindImage] = append([]byte(nil), file[:40]...)

	u := New(p.ctrl, p.data)
	require.NoError(t, u.TransferFile(context.Background(), KindImage, file))

	assert.Equal(t, file, p.objects[KindImage])

	// Only the remaining 60 bytes were streamed.
	var streamed int
	for _, w := range p.data.Writes() {
		streamed += len(w)
	}
	assert.Equal(t, 60, streamed)
}

func TestTransferFileEmptyFile(t *testing.T) {
	p := newMockPeripheral(40)
	u := New(p.ctrl, p.data)

	require.NoError(t, u.TransferFile(context.Background(), KindInit, nil))
	assert.Empty(t, p.data.Writes())
}

func TestTransferFileCrcMismatchHaltsChunkLoop(t *testing.T) {
	p := newMockPeripheral(40)
	p.corruptCRC = true
	u := New(p.ctrl, p.data)

	file := testFile(100)
	err := u.TransferFile(context.Background(), KindImage, file)

	var crcErr *CrcMismatchError
	require.ErrorAs(t, err, &crcErr)
	assert.Equal(t, KindImage, crcErr.Kind)
	assert.Equal(t, crcErr.Actual, crcErr.Expected+1)

	// The first chunk was never committed and no further chunk was attempted.
	assert.Equal(t, 0, p.executeReplies)
	assert.Len(t, p.data.Writes(), 2) // 40 bytes in 20-byte sub-packets, once
}

func TestTransferFileObjectCreateRejected(t *testing.T) {
	p := newMockPeripheral(40)
	p.rejectCreate = true
	u := New(p.ctrl, p.data)

	err := u.TransferFile(context.Background(), KindInit, testFile(10))

	var createErr *ObjectCreateError
	require.ErrorAs(t, err, &createErr)
	assert.Equal(t, KindInit, createErr.Kind)

	var protoErr *ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

func TestTransferFileShortCreateResponse(t *testing.T) {
	// Malformed short response must fail as a parse error, not a panic.
	p := newMockPeripheral(40)
	p.shortCreate = true
	u := New(p.ctrl, p.data)

	err := u.TransferFile(context.Background(), KindInit, testFile(10))

	var createErr *ObjectCreateError
	assert.ErrorAs(t, err, &createErr)
}

func TestTransferFileChunkCreateRejected(t *testing.T) {
	p := newMockPeripheral(40)
	p.rejectChunk = true
	u := New(p.ctrl, p.data)

	err := u.TransferFile(context.Background(), KindImage, testFile(10))

	var chunkErr *ChunkCreateError
	require.ErrorAs(t, err, &chunkErr)
	assert.Equal(t, uint32(0), chunkErr.Offset)
}

func TestFinalExecuteDisconnectSwallowedForImage(t *testing.T) {
	p := newMockPeripheral(40)
	p.dropAtOffset = 100 // device reboots on the last commit
	u := New(p.ctrl, p.data)

	file := testFile(100)
	require.NoError(t, u.TransferFile(context.Background(), KindImage, file))
	assert.Equal(t, file, p.objects[KindImage])
}

func TestFinalExecuteDisconnectFatalForInit(t *testing.T) {
	p := newMockPeripheral(40)
	p.dropAtOffset = 100
	u := New(p.ctrl, p.data)

	err := u.TransferFile(context.Background(), KindInit, testFile(100))

	var execErr *ExecuteError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, KindInit, execErr.Kind)
}

func TestMidFileExecuteTimeoutIsFatal(t *testing.T) {
	p := newMockPeripheral(40)
	p.silentExecute = true
	u := New(p.ctrl, p.data, WithControlTimeout(20*time.Millisecond))

	err := u.TransferFile(context.Background(), KindImage, testFile(100))

	// First execute is at offset 40 of 100, not the final chunk.
	var execErr *ExecuteError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, transport.ErrResponseTimeout)
}

func TestUpdateTransfersInitThenImage(t *testing.T) {
	p := newMockPeripheral(64)
	u := New(p.ctrl, p.data, WithSettleDelay(0))

	initPacket := testFile(30)
	image := testFile(200)
	require.NoError(t, u.Update(context.Background(), initPacket, image))

	assert.Equal(t, initPacket, p.objects[KindInit])
	assert.Equal(t, image, p.objects[KindImage])
}

func TestUpdateCancelled(t *testing.T) {
	p := newMockPeripheral(64)
	u := New(p.ctrl, p.data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := u.Update(ctx, testFile(10), testFile(10))
	assert.Error(t, err)
	assert.Empty(t, p.data.Writes())
}

func TestCumulativeCRCSequence(t *testing.T) {
	// The expected CRC at each chunk boundary is the CRC of the growing
	// prefix, which is exactly what the scripted device reports back.
	p := newMockPeripheral(32)
	file := testFile(96)

	var offsets []uint32
	u := New(p.ctrl, p.data, WithProgressCallback(func(pr Progress) {
		offsets = append(offsets, pr.Offset)
		prefix := file[:pr.Offset]
		assert.Equal(t, crc32.ChecksumIEEE(prefix), crc32.ChecksumIEEE(p.objects[KindImage][:pr.Offset]))
	}))

	require.NoError(t, u.TransferFile(context.Background(), KindImage, file))
	assert.Equal(t, []uint32{32, 64, 96}, offsets)
}

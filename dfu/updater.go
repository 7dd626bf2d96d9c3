package dfu

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/lumenwear/blelink/transport"
)

// Updater drives the firmware update state machine over a control/data link
// pair. Control commands are strict request/await-response; chunk data is
// streamed on the data link without per-packet acknowledgment.
//
// Callers must serialize: one transfer at a time per link pair.
type Updater struct {
	control transport.Link
	data    transport.Link
	config  Config
}

// New creates an Updater bound to the given control and data links.
//
// Example:
//
//	upd := dfu.New(controlLink, dataLink,
//	    dfu.WithProgressCallback(func(p dfu.Progress) {
//	        fmt.Printf("%s %.1f%%\n", p.Kind, p.Percentage)
//	    }),
//	)
//	err := upd.Update(ctx, initPacket, image)
func New(control, data transport.Link, opts ...Option) *Updater {
	if control == nil || data == nil {
		panic("control and data links cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Updater{
		control: control,
		data:    data,
		config:  cfg,
	}
}

// Update transfers a full firmware delivery: the init metadata file first,
// then the image, with a settle delay between them. The peripheral is
// expected to reboot into the new firmware after the image's final commit.
func (u *Updater) Update(ctx context.Context, initPacket, image []byte) error {
	if err := u.TransferFile(ctx, KindInit, initPacket); err != nil {
		return fmt.Errorf("init packet: %w", err)
	}

	// Give the target time to validate the init packet before the image
	// object is opened.
	select {
	case <-time.After(u.config.SettleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := u.TransferFile(ctx, KindImage, image); err != nil {
		return fmt.Errorf("image: %w", err)
	}

	u.config.Logger.Info("firmware update complete",
		"init_bytes", len(initPacket),
		"image_bytes", len(image),
	)
	return nil
}

// TransferFile streams one file to the peripheral: create the object, then
// loop create-chunk / stream / verify-CRC / execute until the committed
// offset reaches the file length. A non-zero offset reported on create
// resumes a prior partial transfer at that position.
func (u *Updater) TransferFile(ctx context.Context, kind FileKind, file []byte) error {
	startTime := time.Now()

	info, err := u.createObject(ctx, kind)
	if err != nil {
		return &ObjectCreateError{Kind: kind, Err: err}
	}
	if info.MaxChunkSize == 0 {
		return &ObjectCreateError{Kind: kind, Err: errors.New("peripheral advertised zero chunk size")}
	}

	total := uint32(len(file))
	offset := info.Offset
	if offset > total {
		return &ObjectCreateError{Kind: kind, Err: fmt.Errorf("reported offset %d beyond file length %d", offset, total)}
	}
	if offset > 0 {
		u.config.Logger.Info("resuming transfer",
			"kind", kind.String(),
			"offset", offset,
			"crc", fmt.Sprintf("0x%08X", info.CRC),
		)
	}

	u.config.Logger.Debug("object created",
		"kind", kind.String(),
		"max_chunk", info.MaxChunkSize,
		"file_bytes", total,
	)

	for offset < total {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		chunkSize := info.MaxChunkSize
		if remaining := total - offset; chunkSize > remaining {
			chunkSize = remaining
		}

		// Cumulative over the whole file from index 0, not the chunk alone.
		expectedCRC := crc32.ChecksumIEEE(file[:offset+chunkSize])

		if err := u.createChunk(ctx, kind, chunkSize); err != nil {
			return &ChunkCreateError{Kind: kind, Offset: offset, Err: err}
		}

		if err := u.streamChunk(ctx, file[offset:offset+chunkSize]); err != nil {
			return fmt.Errorf("stream %s chunk at offset %d: %w", kind, offset, err)
		}

		report, err := u.requestChecksum(ctx)
		if err != nil {
			return fmt.Errorf("checksum report for %s chunk at offset %d: %w", kind, offset, err)
		}
		if report.CRC != expectedCRC {
			return &CrcMismatchError{Kind: kind, Offset: report.Offset, Expected: expectedCRC, Actual: report.CRC}
		}
		if report.Offset <= offset || report.Offset > total {
			return fmt.Errorf("peripheral reported offset %d after %s chunk at offset %d", report.Offset, kind, offset)
		}

		finalChunk := report.Offset == total
		if err := u.execute(ctx); err != nil {
			if kind == KindImage && finalChunk && isDisconnect(err) {
				// The target reboots into the new image right after the last
				// commit; losing the link here is the expected outcome.
				u.config.Logger.Debug("link dropped on final execute", "err", err.Error())
				u.reportProgress(kind, report.Offset, total, startTime)
				return nil
			}
			return &ExecuteError{Kind: kind, Offset: offset, Err: err}
		}

		offset = report.Offset
		u.reportProgress(kind, offset, total, startTime)
	}

	return nil
}

// createObject opens the transfer object and parses the peripheral's resume
// state.
func (u *Updater) createObject(ctx context.Context, kind FileKind) (*ObjectInfo, error) {
	resp, err := u.controlRequest(ctx, BuildCreateObjectCmd(kind))
	if err != nil {
		return nil, err
	}
	return ParseObjectInfo(resp)
}

// createChunk announces the size of the chunk about to be streamed.
func (u *Updater) createChunk(ctx context.Context, kind FileKind, size uint32) error {
	resp, err := u.controlRequest(ctx, BuildCreateChunkCmd(kind, size))
	if err != nil {
		return err
	}
	return validateResponse(resp, CmdCreateChunk)
}

// requestChecksum asks for the committed offset and cumulative CRC.
func (u *Updater) requestChecksum(ctx context.Context) (*ChecksumReport, error) {
	resp, err := u.controlRequest(ctx, BuildRequestChecksumCmd())
	if err != nil {
		return nil, err
	}
	return ParseChecksumReport(resp)
}

// execute commits the streamed chunk.
func (u *Updater) execute(ctx context.Context) error {
	resp, err := u.controlRequest(ctx, BuildExecuteCmd())
	if err != nil {
		return err
	}
	return validateResponse(resp, CmdExecute)
}

// controlRequest writes one control command and awaits the next control
// notification. There are no correlation identifiers; the link delivers
// responses in request order.
func (u *Updater) controlRequest(ctx context.Context, cmd []byte) ([]byte, error) {
	if err := u.control.Write(ctx, cmd, true); err != nil {
		return nil, err
	}
	return transport.Receive(ctx, u.control.Notifications(), u.config.ControlTimeout)
}

// streamChunk writes chunk data to the data link in sub-packets no larger
// than MTU-3 bytes, without waiting for a response per sub-packet.
func (u *Updater) streamChunk(ctx context.Context, chunk []byte) error {
	maxPacket := int(u.data.MTU()) - dataPacketOverhead
	if maxPacket < 1 {
		return fmt.Errorf("negotiated MTU %d too small for data packets", u.data.MTU())
	}

	for len(chunk) > maxPacket {
		if err := u.data.Write(ctx, chunk[:maxPacket], false); err != nil {
			return err
		}
		chunk = chunk[maxPacket:]
	}
	return u.data.Write(ctx, chunk, false)
}

func (u *Updater) reportProgress(kind FileKind, offset, total uint32, startTime time.Time) {
	if u.config.ProgressCallback == nil {
		return
	}
	u.config.ProgressCallback(Progress{
		Kind:       kind,
		Offset:     offset,
		Total:      total,
		Percentage: 100 * float64(offset) / float64(total),
		Elapsed:    time.Since(startTime),
	})
}

// isDisconnect reports whether err looks like the link dropping: a transport
// failure, a closed notification stream, or silence until the timeout.
func isDisconnect(err error) bool {
	return errors.Is(err, transport.ErrDisconnected) ||
		errors.Is(err, transport.ErrClosed) ||
		errors.Is(err, transport.ErrResponseTimeout)
}

package script

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenwear/blelink/framing"
	"github.com/lumenwear/blelink/logging"
)

// Config holds the uploader configuration.
type Config struct {
	// ResponseTimeout bounds the wait for each command's interpreter echo
	ResponseTimeout time.Duration

	// Logger is used for upload progress logging (optional)
	Logger logging.Logger
}

func defaultConfig() Config {
	return Config{
		ResponseTimeout: 10 * time.Second,
		Logger:          logging.Nop(),
	}
}

// Option is a functional option for configuring the Uploader.
type Option func(*Config)

// WithResponseTimeout sets the per-command response timeout.
func WithResponseTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ResponseTimeout = timeout
		}
	}
}

// WithLogger sets a logger for upload operations.
func WithLogger(logger logging.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Uploader transfers text files to the peripheral's interpreter over a
// framer's string channel.
type Uploader struct {
	framer *framing.Framer
	config Config
}

// New creates an Uploader on top of the given framer.
func New(framer *framing.Framer, opts ...Option) *Uploader {
	if framer == nil {
		panic("framer cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Uploader{framer: framer, config: cfg}
}

// Upload writes contents to fileName on the peripheral:
//  1. open the file for write, requiring the ack marker
//  2. write the escaped payload in MTU-sized chunks, each acked
//  3. close the file, acked
//
// Any rejection or timeout aborts the remaining steps; the error identifies
// the failed phase. No close is attempted after a failed write.
func (u *Uploader) Upload(ctx context.Context, fileName, contents string) error {
	escaped := Escape(contents)

	maxChunk := u.framer.Params().MaxStringBytes - CommandOverhead
	if maxChunk < 2 {
		return fmt.Errorf("script upload: %w", framing.ErrMTUTooSmall)
	}

	resp, err := u.exchange(ctx, openCommand(Escape(fileName)))
	if err != nil {
		return fmt.Errorf("open %q: %w", fileName, err)
	}
	if !resp.IsAck(AckMarker) {
		return &OpenFailedError{FileName: fileName, Response: resp.Text}
	}

	cursor := 0
	for cursor < len(escaped) {
		// Never split the two characters of an escape pair across chunks.
		n := safeBoundary(escaped[cursor:], maxChunk)
		chunk := escaped[cursor : cursor+n]

		resp, err := u.exchange(ctx, writeCommand(chunk))
		if err != nil {
			return fmt.Errorf("write at offset %d: %w", cursor, err)
		}
		if !resp.IsAck(AckMarker) {
			return &WriteFailedError{Offset: cursor, Response: resp.Text}
		}

		cursor += n
		u.config.Logger.Debug("chunk written", "file", fileName, "sent", cursor, "total", len(escaped))
	}

	resp, err = u.exchange(ctx, closeCommand())
	if err != nil {
		return fmt.Errorf("close %q: %w", fileName, err)
	}
	if !resp.IsAck(AckMarker) {
		return &CloseFailedError{FileName: fileName, Response: resp.Text}
	}

	u.config.Logger.Info("script uploaded", "file", fileName, "bytes", len(contents))
	return nil
}

// exchange sends one command and waits for its interpreter echo.
func (u *Uploader) exchange(ctx context.Context, cmd string) (framing.Inbound, error) {
	if err := u.framer.SendString(ctx, cmd); err != nil {
		return framing.Inbound{}, err
	}
	return u.framer.Next(ctx, u.config.ResponseTimeout)
}

// Package transport defines the link contract the protocol layers are built
// on: one logical BLE channel with an outbound write path, an inbound
// notification stream, and the currently negotiated MTU.
//
// The package does not establish connections. Device discovery, connection
// setup, MTU negotiation and GATT characteristic resolution all live with the
// Link implementation (see the bluetoothle subpackage for a real one, and
// MockLink for tests).
package transport

import (
	"context"
	"errors"
	"time"
)

// Link is one logical channel to the peripheral, backed by a GATT
// characteristic pair. Implementations must deliver notifications in arrival
// order. Callers serialize their own request/response cycles; the protocol
// carries no correlation identifiers.
type Link interface {
	// Write sends one link-layer packet. expectResponse selects a
	// write-with-response GATT write where the stack supports it.
	Write(ctx context.Context, p []byte, expectResponse bool) error

	// Notifications returns the inbound notification stream. Each element is
	// one raw notification buffer owned by the receiver.
	Notifications() <-chan []byte

	// MTU reports the currently negotiated MTU. The value may change after a
	// renegotiation; callers re-derive size limits from it before every send.
	MTU() uint16
}

var (
	// ErrDisconnected is the generic transport failure surfaced when the
	// underlying link drops.
	ErrDisconnected = errors.New("transport: link disconnected")

	// ErrResponseTimeout indicates no notification arrived within the
	// per-call response window.
	ErrResponseTimeout = errors.New("transport: response timeout")

	// ErrClosed indicates the notification stream was closed.
	ErrClosed = errors.New("transport: notification stream closed")
)

// Receive waits for the next inbound notification with an explicit timeout.
// It is the single-shot completion primitive behind every
// write-then-await-response exchange in this module: one pending wait, one
// matching notification, no background retry.
func Receive(ctx context.Context, notifications <-chan []byte, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case buf, ok := <-notifications:
		if !ok {
			return nil, ErrClosed
		}
		return buf, nil
	case <-timer.C:
		return nil, ErrResponseTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

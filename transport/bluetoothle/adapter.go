// Package bluetoothle adapts a connected GATT characteristic pair to the
// transport.Link contract using tinygo.org/x/bluetooth.
//
// Scanning, connecting and service discovery stay with the caller; the
// adapter only binds an already-resolved write characteristic and notify
// characteristic. One Link per characteristic pair: the main protocol channel
// and the two DFU channels are three separate Links.
package bluetoothle

import (
	"context"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/lumenwear/blelink/transport"
)

// notificationBuffer bounds how many inbound notifications queue up before
// the adapter starts dropping. The protocol is strict request/response, so a
// backlog this deep already means the consumer is gone.
const notificationBuffer = 16

// Link is a transport.Link over one BLE characteristic pair.
type Link struct {
	rx            bluetooth.DeviceCharacteristic
	mtu           uint16
	notifications chan []byte
}

// New binds rx (outbound writes) and tx (inbound notifications) into a Link.
// The ATT MTU is read from the connection once; call Refresh after a
// renegotiation.
func New(rx, tx bluetooth.DeviceCharacteristic) (*Link, error) {
	l := &Link{
		rx:            rx,
		notifications: make(chan []byte, notificationBuffer),
	}

	mtu, err := rx.GetMTU()
	if err != nil {
		return nil, fmt.Errorf("query MTU: %w", err)
	}
	l.mtu = mtu

	if err := tx.EnableNotifications(l.onNotify); err != nil {
		return nil, fmt.Errorf("enable notifications: %w", err)
	}
	return l, nil
}

func (l *Link) onNotify(buf []byte) {
	// The stack reuses its buffer between callbacks.
	cp := make([]byte, len(buf))
	copy(cp, buf)

	select {
	case l.notifications <- cp:
	default:
		// Drop rather than block the stack's event loop.
	}
}

// Write sends one packet on the write characteristic. BLE link-layer
// acknowledgment for write-with-response is handled inside the stack; both
// paths go through the same GATT write here.
func (l *Link) Write(ctx context.Context, p []byte, expectResponse bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := l.rx.WriteWithoutResponse(p); err != nil {
		return fmt.Errorf("%w: %v", transport.ErrDisconnected, err)
	}
	return nil
}

// Notifications returns the inbound notification stream.
func (l *Link) Notifications() <-chan []byte {
	return l.notifications
}

// MTU reports the negotiated ATT MTU.
func (l *Link) MTU() uint16 {
	return l.mtu
}

// Refresh re-reads the ATT MTU from the connection, picking up a
// renegotiation.
func (l *Link) Refresh() error {
	mtu, err := l.rx.GetMTU()
	if err != nil {
		return fmt.Errorf("query MTU: %w", err)
	}
	l.mtu = mtu
	return nil
}

package transport

import (
	"context"
	"sync"
)

// MockLink is a scripted in-memory Link for tests. It records every outbound
// write and replays notifications from a buffered queue. A responder hook can
// be attached to answer writes synchronously, which is enough to script a
// whole request/response protocol without goroutines.
type MockLink struct {
	mu       sync.Mutex
	mtu      uint16
	writes   [][]byte
	writeErr error
	onWrite  func(p []byte, expectResponse bool)
	notif    chan []byte
	closed   bool
}

// NewMockLink creates a mock link reporting the given MTU.
func NewMockLink(mtu uint16) *MockLink {
	return &MockLink{
		mtu:   mtu,
		notif: make(chan []byte, 64),
	}
}

// Write records the packet and invokes the responder hook, if any.
func (m *MockLink) Write(ctx context.Context, p []byte, expectResponse bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	err := m.writeErr
	hook := m.onWrite
	if err == nil {
		cp := make([]byte, len(p))
		copy(cp, p)
		m.writes = append(m.writes, cp)
	}
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		hook(p, expectResponse)
	}
	return nil
}

// Notifications returns the replay queue.
func (m *MockLink) Notifications() <-chan []byte { return m.notif }

// MTU reports the configured MTU.
func (m *MockLink) MTU() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mtu
}

// SetMTU changes the reported MTU, simulating a renegotiation.
func (m *MockLink) SetMTU(mtu uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mtu = mtu
}

// Notify queues one inbound notification.
func (m *MockLink) Notify(buf []byte) {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	m.notif <- cp
}

// Writes returns all recorded outbound packets in order.
func (m *MockLink) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// SetWriteError makes every subsequent Write fail with err. Writes that fail
// are not recorded.
func (m *MockLink) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// OnWrite attaches a responder invoked synchronously after each successful
// write. The responder typically parses the packet and calls Notify with the
// scripted reply.
func (m *MockLink) OnWrite(fn func(p []byte, expectResponse bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onWrite = fn
}

// Close closes the notification stream, simulating a disconnect.
func (m *MockLink) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.notif)
	}
}

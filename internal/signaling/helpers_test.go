package signaling

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeConn is an in-memory Conn capturing written frames.
type fakeConn struct {
	mu         sync.Mutex
	closed     bool
	failWrites bool
	frames     chan []byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{frames: make(chan []byte, 64)}
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.failWrites {
		return errors.New("connection closed")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	select {
	case c.frames <- cp:
	default:
	}
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// nextFrame waits for the next written frame and decodes it loosely.
func nextFrame(t *testing.T, c *fakeConn, timeout time.Duration) map[string]any {
	t.Helper()
	select {
	case data := <-c.frames:
		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("undecodable frame %q: %v", data, err)
		}
		return decoded
	case <-time.After(timeout):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

// noFrame asserts that nothing is written within the window.
func noFrame(t *testing.T, c *fakeConn, window time.Duration) {
	t.Helper()
	select {
	case data := <-c.frames:
		t.Fatalf("unexpected frame: %s", data)
	case <-time.After(window):
	}
}

func newTestPeer(conn Conn, id, key string) *Peer {
	return NewPeer(conn, PeerConfig{
		ID:           id,
		Name:         NameRecord{DeviceName: "Test Device", DisplayName: "Test " + id},
		RTCSupported: true,
		GroupKey:     key,
		// Long enough that no tick fires unless a test starts it on
		// purpose with its own peer.
		KeepaliveInterval: time.Hour,
	})
}

// joinedPeer wires a peer into the registry the way the connection
// handler does.
func joinedPeer(reg *Registry, conn Conn, id, key string) *Peer {
	p := newTestPeer(conn, id, key)
	p.OnClose(func(pp *Peer) { reg.Leave(pp) })
	reg.Join(p)
	return p
}

package signaling

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Outbound buffer per peer. A peer that falls this far behind is
	// torn down rather than throttling the room.
	sendBuffer = 256
)

// Conn is the subset of *websocket.Conn the peer needs. Tests supply
// an in-memory implementation.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// PeerConfig carries the immutable facts established at connect time.
type PeerConfig struct {
	ID                string
	Name              NameRecord
	RTCSupported      bool
	GroupKey          string
	KeepaliveInterval time.Duration
}

// Peer is one live connection. It exclusively owns its Conn: all
// writes happen on the peer's write pump, and every teardown trigger
// (disconnect message, transport close, transport error, keepalive
// timeout) converges on Close.
type Peer struct {
	id           string
	name         NameRecord
	rtcSupported bool
	groupKey     string

	conn Conn
	send chan []byte
	done chan struct{}

	mu       sync.Mutex
	lastBeat time.Time

	ka *keepalive

	closeOnce sync.Once
	onClose   func(*Peer)

	log *log.Entry
}

// NewPeer wraps a connection and starts its write pump.
func NewPeer(conn Conn, cfg PeerConfig) *Peer {
	interval := cfg.KeepaliveInterval
	if interval <= 0 {
		interval = DefaultKeepaliveInterval
	}
	p := &Peer{
		id:           cfg.ID,
		name:         cfg.Name,
		rtcSupported: cfg.RTCSupported,
		groupKey:     cfg.GroupKey,
		conn:         conn,
		send:         make(chan []byte, sendBuffer),
		done:         make(chan struct{}),
		lastBeat:     time.Now(),
		ka:           newKeepalive(interval),
		log:          log.WithFields(log.Fields{"peer": cfg.ID, "room": cfg.GroupKey}),
	}
	go p.writePump()
	return p
}

func (p *Peer) ID() string       { return p.id }
func (p *Peer) GroupKey() string { return p.groupKey }

// PublicInfo is the only view of a peer exposed to other peers.
func (p *Peer) PublicInfo() PeerInfo {
	return PeerInfo{ID: p.id, Name: p.name, RTCSupported: p.rtcSupported}
}

// OnClose registers the removal callback invoked at most once, from
// whichever teardown trigger fires first. Must be set before the peer
// joins a room.
func (p *Peer) OnClose(fn func(*Peer)) { p.onClose = fn }

// RecordHeartbeat marks the peer alive. Called only on pong receipt.
func (p *Peer) RecordHeartbeat() {
	p.mu.Lock()
	p.lastBeat = time.Now()
	p.mu.Unlock()
}

// LastHeartbeat returns the time of the most recent pong (or the
// connect time if none arrived yet).
func (p *Peer) LastHeartbeat() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastBeat
}

// Send serializes v and queues it for delivery. Fire and forget: a
// closed peer ignores the send, and a peer whose buffer is full is
// torn down instead of blocking the caller.
func (p *Peer) Send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		p.log.Errorf("failed to marshal message: %v", err)
		return
	}
	p.SendRaw(data)
}

// SendRaw queues an already-encoded frame.
func (p *Peer) SendRaw(data []byte) {
	select {
	case <-p.done:
		return
	default:
	}
	select {
	case p.send <- data:
	case <-p.done:
	default:
		p.log.Warn("send buffer full, closing peer")
		// Async: the caller may hold the room lock that teardown needs.
		go p.Close()
	}
}

// StartKeepalive begins the periodic liveness check. Safe to call once
// per peer, after the join handshake.
func (p *Peer) StartKeepalive() {
	go p.ka.run(p)
}

// Close tears the session down: cancels the keepalive task, closes the
// connection and invokes the removal callback. Idempotent; every
// teardown trigger funnels here and only the first one acts.
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		p.ka.stop()
		if err := p.conn.Close(); err != nil {
			p.log.Debugf("connection close: %v", err)
		}
		if p.onClose != nil {
			p.onClose(p)
		}
		p.log.Debug("peer closed")
	})
}

// writePump drains the send buffer onto the connection. The single
// writer per connection; exits on teardown or the first write error,
// which itself triggers teardown.
func (p *Peer) writePump() {
	for {
		select {
		case <-p.done:
			return
		case data := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				p.log.Debugf("write failed: %v", err)
				p.Close()
				return
			}
		}
	}
}

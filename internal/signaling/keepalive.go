package signaling

import (
	"sync"
	"time"
)

// DefaultKeepaliveInterval is the ping period T. A peer that produces
// no pong for longer than 2T is force-closed.
const DefaultKeepaliveInterval = 30 * time.Second

// keepalive is the per-session liveness task. Two states: running and
// stopped, and stopped is terminal — stop is idempotent so any
// teardown trigger can race it safely.
type keepalive struct {
	interval time.Duration
	quit     chan struct{}
	stopOnce sync.Once
}

func newKeepalive(interval time.Duration) *keepalive {
	return &keepalive{
		interval: interval,
		quit:     make(chan struct{}),
	}
}

func (k *keepalive) run(p *Peer) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-k.quit:
			return
		case <-ticker.C:
			if time.Since(p.LastHeartbeat()) > 2*k.interval {
				p.log.Info("keepalive timeout, closing peer")
				p.Close()
				return
			}
			p.Send(PingMessage())
		}
	}
}

func (k *keepalive) stop() {
	k.stopOnce.Do(func() { close(k.quit) })
}

package signaling

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Room is the set of peers sharing a grouping key and the unit of
// broadcast. Rooms live in the registry exactly while they hold at
// least one peer.
type Room struct {
	key   string
	mu    sync.Mutex
	peers map[string]*Peer
}

func newRoom(key string) *Room {
	return &Room{
		key:   key,
		peers: make(map[string]*Peer),
	}
}

func (r *Room) Key() string { return r.key }

// AddPeer announces the newcomer to existing members, sends it a
// roster snapshot, then inserts it. The snapshot is taken before
// insertion and the announcement excludes the newcomer, so neither
// side ever sees the joining peer in its own notification.
func (r *Room) AddPeer(p *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster := make([]PeerInfo, 0, len(r.peers))
	joined := peerJoined(p.PublicInfo())
	for _, member := range r.peers {
		roster = append(roster, member.PublicInfo())
		member.Send(joined)
	}
	p.Send(peersSnapshot(roster))
	r.peers[p.ID()] = p

	log.WithFields(log.Fields{"peer": p.ID(), "room": r.key, "size": len(r.peers)}).
		Info("peer joined room")
}

// RemovePeer deletes id from the room and tells the remaining members.
// A no-op for absent ids, which makes double teardown harmless.
// Reports whether the peer was actually present.
func (r *Room) RemovePeer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.peers[id]; !ok {
		return false
	}
	delete(r.peers, id)
	left := peerLeft(id)
	for _, member := range r.peers {
		member.Send(left)
	}

	log.WithFields(log.Fields{"peer": id, "room": r.key, "size": len(r.peers)}).
		Info("peer left room")
	return true
}

// GetPeer looks up a member, used for addressed relay.
func (r *Room) GetPeer(id string) (*Peer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.peers[id]
	return p, ok
}

func (r *Room) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers) == 0
}

// Size returns the current member count.
func (r *Room) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// Broadcast delivers v to every member except excludeID (empty to
// reach everyone). Delivery failures are absorbed by each peer's own
// send path and never surface here.
func (r *Room) Broadcast(v any, excludeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, member := range r.peers {
		if id != excludeID {
			member.Send(v)
		}
	}
}

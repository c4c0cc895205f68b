package signaling

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// PresenceMirror receives membership changes, e.g. to reflect them
// into an external store. Implementations must not block for long:
// calls happen on the join/leave path.
type PresenceMirror interface {
	PeerJoined(key, id string)
	PeerLeft(key, id string)
}

// Registry owns the grouping key → Room map. Rooms are created lazily
// on first join and destroyed the moment their last peer leaves; Join
// and Leave are the only paths that mutate the map. A single registry
// mutex linearizes membership mutation — rooms are small, and it keeps
// the exists-iff-nonempty invariant airtight against a join racing the
// last leave on the same key.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	mirror PresenceMirror
}

// NewRegistry creates an empty registry. mirror may be nil.
func NewRegistry(mirror PresenceMirror) *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		mirror: mirror,
	}
}

// Join places p in the room for its grouping key, creating the room if
// this is the first member. If another session with the same id is
// still registered (a reconnect overtaking its predecessor), the stale
// session is displaced and closed; its later teardown is a no-op here
// because Leave checks identity, not just id.
func (reg *Registry) Join(p *Peer) {
	key := p.GroupKey()

	reg.mu.Lock()
	room, ok := reg.rooms[key]
	if !ok {
		room = newRoom(key)
		reg.rooms[key] = room
		log.WithField("room", key).Debug("room created")
	}
	stale, _ := room.GetPeer(p.ID())
	if stale != nil {
		room.RemovePeer(p.ID())
		log.WithFields(log.Fields{"peer": p.ID(), "room": key}).
			Warn("displacing stale session for reconnecting peer")
	}
	room.AddPeer(p)
	reg.mu.Unlock()

	if stale != nil {
		go stale.Close()
	}
	if reg.mirror != nil {
		reg.mirror.PeerJoined(key, p.ID())
	}
}

// Leave removes p from its room and drops the room once empty. Ignored
// unless the registry still maps this exact session, so a displaced
// predecessor cannot tear out its successor.
func (reg *Registry) Leave(p *Peer) {
	key := p.GroupKey()

	reg.mu.Lock()
	room, ok := reg.rooms[key]
	if !ok {
		reg.mu.Unlock()
		return
	}
	if current, _ := room.GetPeer(p.ID()); current != p {
		reg.mu.Unlock()
		return
	}
	room.RemovePeer(p.ID())
	if room.IsEmpty() {
		delete(reg.rooms, key)
		log.WithField("room", key).Debug("room destroyed")
	}
	reg.mu.Unlock()

	if reg.mirror != nil {
		reg.mirror.PeerLeft(key, p.ID())
	}
}

// Room returns the live room for key, if any.
func (reg *Registry) Room(key string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[key]
	return room, ok
}

// Stats is a point-in-time occupancy snapshot.
type Stats struct {
	Rooms int `json:"rooms"`
	Peers int `json:"peers"`
}

// Snapshot reports current room and peer counts.
func (reg *Registry) Snapshot() Stats {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	s := Stats{Rooms: len(reg.rooms)}
	for _, room := range reg.rooms {
		s.Peers += room.Size()
	}
	return s
}

package signaling

import (
	log "github.com/sirupsen/logrus"
)

// Router turns inbound frames into peer operations. It interprets
// exactly three things — pong, disconnect and the addressing field —
// and forwards everything else untouched or not at all. Nothing that
// arrives here can take the session down except an explicit disconnect.
type Router struct {
	reg *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// Dispatch routes one raw frame from sender. Precedence: undecodable
// frames are dropped; pong and disconnect act on the sender; a frame
// addressed to a room member is rewritten (to stripped, sender
// stamped) and forwarded; everything else is dropped silently — the
// relay never answers probes for unknown recipients.
func (rt *Router) Dispatch(sender *Peer, data []byte) {
	frame, err := DecodeFrame(data)
	if err != nil {
		log.WithField("peer", sender.ID()).Debugf("dropping malformed frame: %v", err)
		return
	}

	switch frame.Type {
	case TypePong:
		sender.RecordHeartbeat()
		return
	case TypeDisconnect:
		sender.Close()
		return
	}

	if frame.To == "" {
		log.WithFields(log.Fields{"peer": sender.ID(), "type": frame.Type}).
			Debug("dropping unaddressed frame")
		return
	}

	room, ok := rt.reg.Room(sender.GroupKey())
	if !ok {
		return
	}
	recipient, ok := room.GetPeer(frame.To)
	if !ok {
		log.WithFields(log.Fields{"peer": sender.ID(), "to": frame.To}).
			Debug("dropping frame for unknown recipient")
		return
	}

	payload, err := frame.Relayed(sender.ID())
	if err != nil {
		log.WithField("peer", sender.ID()).Debugf("failed to re-encode frame: %v", err)
		return
	}
	recipient.SendRaw(payload)
}

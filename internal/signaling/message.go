package signaling

import "encoding/json"

// Message types understood by the relay. Anything else is either an
// addressed frame (keyed off "to") or dropped.
const (
	TypePing        = "ping"
	TypePong        = "pong"
	TypeDisconnect  = "disconnect"
	TypeDisplayName = "display-name"
	TypePeerID      = "peerid"
	TypePeers       = "peers"
	TypePeerJoined  = "peer-joined"
	TypePeerLeft    = "peer-left"
)

// NameRecord is the presentation info derived once at connect.
type NameRecord struct {
	DeviceName  string `json:"deviceName"`
	DisplayName string `json:"displayName"`
}

// PeerInfo is the only representation of a peer ever sent to other
// peers. It never carries the connection.
type PeerInfo struct {
	ID           string     `json:"id"`
	Name         NameRecord `json:"name"`
	RTCSupported bool       `json:"rtcSupported"`
}

type typeOnlyMessage struct {
	Type string `json:"type"`
}

type displayNameMessage struct {
	Type    string     `json:"type"`
	Message NameRecord `json:"message"`
}

type peerIDMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type peersMessage struct {
	Type  string     `json:"type"`
	Peers []PeerInfo `json:"peers"`
}

type peerJoinedMessage struct {
	Type string   `json:"type"`
	Peer PeerInfo `json:"peer"`
}

type peerLeftMessage struct {
	Type   string `json:"type"`
	PeerID string `json:"peerId"`
}

// PingMessage is the keepalive probe sent to clients.
func PingMessage() any { return typeOnlyMessage{Type: TypePing} }

// DisplayNameMessage tells a client its own presentation record.
func DisplayNameMessage(name NameRecord) any {
	return displayNameMessage{Type: TypeDisplayName, Message: name}
}

// PeerIDMessage tells a client its freshly generated id. Not sent when
// the id was reused from an identity token.
func PeerIDMessage(id string) any {
	return peerIDMessage{Type: TypePeerID, Message: id}
}

func peersSnapshot(peers []PeerInfo) any {
	return peersMessage{Type: TypePeers, Peers: peers}
}

func peerJoined(info PeerInfo) any {
	return peerJoinedMessage{Type: TypePeerJoined, Peer: info}
}

func peerLeft(id string) any {
	return peerLeftMessage{Type: TypePeerLeft, PeerID: id}
}

// Frame is an inbound client frame decoded just far enough to route:
// the type discriminator, the optional addressing field, and the raw
// fields kept verbatim so unrecognized message kinds pass through the
// relay untouched.
type Frame struct {
	Type   string
	To     string
	fields map[string]json.RawMessage
}

// DecodeFrame parses a text frame into a Frame. Non-object payloads
// and invalid JSON return an error; the router drops those.
func DecodeFrame(data []byte) (*Frame, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	f := &Frame{fields: fields}
	if raw, ok := fields["type"]; ok {
		// A non-string type leaves Type empty, falling through to the
		// addressed-relay rules.
		_ = json.Unmarshal(raw, &f.Type)
	}
	if raw, ok := fields["to"]; ok {
		_ = json.Unmarshal(raw, &f.To)
	}
	return f, nil
}

// Relayed returns the frame re-encoded for forwarding: the addressing
// field is stripped and the originating peer's id is stamped on as
// "sender". All other fields are preserved byte for byte.
func (f *Frame) Relayed(senderID string) ([]byte, error) {
	delete(f.fields, "to")
	sender, err := json.Marshal(senderID)
	if err != nil {
		return nil, err
	}
	f.fields["sender"] = sender
	return json.Marshal(f.fields)
}

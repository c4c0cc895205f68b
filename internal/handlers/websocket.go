package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/lanbeam/signaling/internal/grouping"
	"github.com/lanbeam/signaling/internal/identity"
	"github.com/lanbeam/signaling/internal/names"
	"github.com/lanbeam/signaling/internal/signaling"
)

// Maximum frame size accepted from a client. Generous enough for SDP
// payloads.
const maxMessageSize = 64 * 1024

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware
		return true
	},
}

// Signaling is the WebSocket boundary: it resolves the grouping key
// and peer identity, upgrades the connection and hands the session to
// the core.
type Signaling struct {
	Registry     *signaling.Registry
	Router       *signaling.Router
	Signer       *identity.Signer
	Policy       grouping.Policy
	Keepalive    time.Duration
	NameStrategy names.Strategy
}

// Handler serves one signaling endpoint. rtcSupported distinguishes
// the primary path from the fallback one and is reported in the peer's
// public info.
func (h *Signaling) Handler(rtcSupported bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !websocket.IsWebSocketUpgrade(c.Request) {
			c.String(http.StatusUpgradeRequired, "websocket upgrade required")
			return
		}

		// Both are fixed for the whole session: the grouping key is
		// resolved before room assignment, the id comes from the
		// identity cookie if one verifies.
		key := h.Policy.Key(c.Request)
		id := h.Signer.FromRequest(c.Request)
		fresh := id == ""
		if fresh {
			id = uuid.New().String()
		}

		// Re-issue the cookie on every connect so an active client
		// never ages out of its identity.
		header := http.Header{}
		if token, err := h.Signer.Issue(id); err == nil {
			header.Add("Set-Cookie", h.Signer.Cookie(token).String())
		} else {
			log.Warnf("failed to issue identity token: %v", err)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, header)
		if err != nil {
			log.Warnf("failed to upgrade connection: %v", err)
			return
		}

		name := names.Derive(c.Request.UserAgent(), id, h.NameStrategy)
		peer := signaling.NewPeer(conn, signaling.PeerConfig{
			ID:                id,
			Name:              name,
			RTCSupported:      rtcSupported,
			GroupKey:          key,
			KeepaliveInterval: h.Keepalive,
		})
		peer.OnClose(func(p *signaling.Peer) { h.Registry.Leave(p) })

		peer.Send(signaling.DisplayNameMessage(name))
		if fresh {
			peer.Send(signaling.PeerIDMessage(id))
		}
		h.Registry.Join(peer)
		peer.StartKeepalive()

		conn.SetReadLimit(maxMessageSize)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					log.Debugf("read ended for peer %s: %v", id, err)
				}
				break
			}
			h.Router.Dispatch(peer, data)
		}
		// Transport close and transport error both land here; an
		// explicit disconnect or keepalive timeout already closed the
		// peer and this is a no-op.
		peer.Close()
	}
}

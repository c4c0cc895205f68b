// Package grouping resolves the key that partitions peers into rooms.
// Whether forwarded headers are trusted is a deployment decision: only
// enable TrustProxy behind a reverse proxy you control, since clients
// can set those headers themselves.
package grouping

import (
	"net"
	"net/http"
	"strings"
)

// Policy resolves a request to its grouping key. The key is computed
// once, before room assignment, and stays fixed for the session.
type Policy struct {
	TrustProxy bool
}

// Key returns the grouping key for r: the client IP as seen either
// through proxy headers or on the raw transport.
func (p Policy) Key(r *http.Request) string {
	if p.TrustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return normalize(strings.TrimSpace(first))
		}
		if rip := r.Header.Get("X-Real-IP"); rip != "" {
			return normalize(strings.TrimSpace(rip))
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return normalize(host)
}

// normalize folds the IPv6 representations of local and mapped-IPv4
// clients so they share a room with their IPv4 form.
func normalize(ip string) string {
	ip = strings.TrimPrefix(ip, "::ffff:")
	if ip == "::1" || ip == "" {
		return "127.0.0.1"
	}
	return ip
}

package grouping

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func request(remoteAddr string, headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/server/webrtc", nil)
	r.RemoteAddr = remoteAddr
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestRemoteAddrKey(t *testing.T) {
	p := Policy{TrustProxy: false}

	assert.Equal(t, "192.168.1.50", p.Key(request("192.168.1.50:54321", nil)))
	assert.Equal(t, "2001:db8::2", p.Key(request("[2001:db8::2]:443", nil)))
}

func TestForwardedHeadersIgnoredWithoutTrust(t *testing.T) {
	p := Policy{TrustProxy: false}

	r := request("10.1.2.3:1234", map[string]string{"X-Forwarded-For": "203.0.113.9"})
	assert.Equal(t, "10.1.2.3", p.Key(r))
}

func TestForwardedHeadersWithTrust(t *testing.T) {
	p := Policy{TrustProxy: true}

	r := request("10.1.2.3:1234", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"})
	assert.Equal(t, "203.0.113.9", p.Key(r))

	r = request("10.1.2.3:1234", map[string]string{"X-Real-IP": "198.51.100.7"})
	assert.Equal(t, "198.51.100.7", p.Key(r))

	// No headers at all: fall through to the transport address.
	assert.Equal(t, "10.1.2.3", p.Key(request("10.1.2.3:1234", nil)))
}

func TestLoopbackNormalization(t *testing.T) {
	p := Policy{TrustProxy: false}

	assert.Equal(t, "127.0.0.1", p.Key(request("[::1]:9999", nil)))
	assert.Equal(t, "192.0.2.4", p.Key(request("[::ffff:192.0.2.4]:1024", nil)))
	assert.Equal(t, "127.0.0.1", p.Key(request("127.0.0.1:8000", nil)))
}

// Package identity issues and verifies the reusable peer-identity
// token that lets a reconnecting client keep its prior peer id. The
// token is an HMAC-signed JWT carried in a cookie.
package identity

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the identity token.
const CookieName = "peerid"

type claims struct {
	PeerID string `json:"peer_id"`
	jwt.RegisteredClaims
}

// Signer issues and verifies identity tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token binding peerID for the signer's TTL.
func (s *Signer) Issue(peerID string) (string, error) {
	now := time.Now()
	c := claims{
		PeerID: peerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Verify parses tokenString and returns the peer id it binds. Any
// failure (bad signature, wrong method, expiry, empty id) is an error;
// callers fall back to generating a fresh id.
func (s *Signer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.PeerID == "" {
		return "", errors.New("invalid identity claims")
	}
	return c.PeerID, nil
}

// Cookie wraps a signed token for the upgrade response.
func (s *Signer) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// FromRequest extracts and verifies the identity cookie, returning the
// bound peer id or empty when absent or invalid.
func (s *Signer) FromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	id, err := s.Verify(cookie.Value)
	if err != nil {
		return ""
	}
	return id
}

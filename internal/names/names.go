// Package names derives the presentation record shown to other peers:
// a device name from the User-Agent and a memorable display name.
package names

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/mileusna/useragent"

	"github.com/lanbeam/signaling/internal/signaling"
)

// UnknownDevice is the sentinel used when the User-Agent reveals
// nothing usable.
const UnknownDevice = "Unknown Device"

// Strategy selects how display names are produced.
type Strategy string

const (
	// Deterministic seeds the name with the peer id, so a reconnecting
	// peer (reused identity token) keeps its display name.
	Deterministic Strategy = "deterministic"
	// Random draws a fresh name each session.
	Random Strategy = "random"
)

// ParseStrategy maps a config string to a Strategy, defaulting to
// Deterministic for anything unrecognized.
func ParseStrategy(s string) Strategy {
	if Strategy(strings.ToLower(s)) == Random {
		return Random
	}
	return Deterministic
}

// Derive builds the immutable name record for a session.
func Derive(userAgent, peerID string, strategy Strategy) signaling.NameRecord {
	return signaling.NameRecord{
		DeviceName:  deviceName(userAgent),
		DisplayName: displayName(peerID, strategy),
	}
}

// deviceName summarizes the User-Agent: OS (long labels shortened)
// followed by the device model, else the browser name. Falls back to
// the UnknownDevice sentinel when nothing is known.
func deviceName(userAgent string) string {
	ua := useragent.Parse(userAgent)

	var parts []string
	if ua.OS != "" {
		parts = append(parts, shortOS(ua.OS))
	}
	switch {
	case ua.Device != "":
		parts = append(parts, ua.Device)
	case ua.Name != "":
		parts = append(parts, ua.Name)
	}
	if len(parts) == 0 {
		return UnknownDevice
	}
	return strings.Join(parts, " ")
}

func shortOS(os string) string {
	switch os {
	case "macOS", "Mac OS", "Mac OS X":
		return "Mac"
	case "Chrome OS":
		return "Chrome"
	}
	return os
}

func displayName(peerID string, strategy Strategy) string {
	var adjective, animal string
	if strategy == Deterministic {
		h := fnv.New64a()
		h.Write([]byte(peerID))
		rng := rand.New(rand.NewSource(int64(h.Sum64())))
		adjective = adjectives[rng.Intn(len(adjectives))]
		animal = animals[rng.Intn(len(animals))]
	} else {
		adjective = adjectives[rand.Intn(len(adjectives))]
		animal = animals[rand.Intn(len(animals))]
	}
	return fmt.Sprintf("%s %s", adjective, animal)
}

// Package presence mirrors room membership into Redis so occupancy is
// visible outside the process. The in-memory registry stays
// authoritative; the mirror is advisory bookkeeping.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/lanbeam/signaling/config"
)

const memberTTL = 24 * time.Hour

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Mirror reflects membership changes into per-room Redis sets.
type Mirror struct {
	client *redis.Client
	ctx    context.Context
}

func NewMirror(client *redis.Client) *Mirror {
	return &Mirror{client: client, ctx: context.Background()}
}

func (m *Mirror) PeerJoined(key, id string) {
	set := setKey(key)
	if err := m.client.SAdd(m.ctx, set, id).Err(); err != nil {
		log.Warnf("presence mirror add failed: %v", err)
		return
	}
	m.client.Expire(m.ctx, set, memberTTL)
}

func (m *Mirror) PeerLeft(key, id string) {
	if err := m.client.SRem(m.ctx, setKey(key), id).Err(); err != nil {
		log.Warnf("presence mirror remove failed: %v", err)
	}
}

func setKey(key string) string {
	return "room:" + key + ":peers"
}

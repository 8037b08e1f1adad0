package api

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const broadcastChannel = "broadcast"

const (
	eventGameCreated = "game.created"
	eventGameUpdated = "game.updated"
	eventGameDeleted = "game.deleted"
	eventUserCreated = "user.created"
	eventUserUpdated = "user.updated"
	eventUserDeleted = "user.deleted"
)

// Publisher announces row changes. Delivery is best effort; failures are
// logged and never reach the HTTP caller.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: broadcastChannel}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("marshal event")
		return
	}
	if err := p.rdb.Publish(ctx, p.channel, string(data)).Err(); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("publish event")
	}
}

func (s *HTTPServer) publish(ctx context.Context, eventType string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, payload)
}

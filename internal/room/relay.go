package room

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const relayChannelPrefix = "room_events:"

// relayEnvelope is the wire form of a Message on the Redis channel.
type relayEnvelope struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Exclude string          `json:"exclude,omitempty"`
}

// RedisRelay fans room messages out through Redis Pub/Sub so that every instance
// serving an item delivers the same stream. The Redis channel of the item is the
// single ordering point across instances.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
}

func NewRedisRelay(client *redis.Client, hub *Hub) *RedisRelay {
	return &RedisRelay{
		client: client,
		hub:    hub,
	}
}

func relayChannel(itemID int64) string {
	return fmt.Sprintf("%s%d", relayChannelPrefix, itemID)
}

// Publish sends msg to the Redis channel of itemID.
func (r *RedisRelay) Publish(ctx context.Context, itemID int64, msg Message) error {
	payload, err := encodeEnvelope(msg)
	if err != nil {
		return err
	}
	
	if err = r.client.Publish(ctx, relayChannel(itemID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", relayChannel(itemID), err)
	}
	return nil
}

func encodeEnvelope(msg Message) ([]byte, error) {
	payload, err := json.Marshal(relayEnvelope{
		Type:    msg.Type,
		Data:    msg.Data,
		Exclude: msg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relay envelope: %w", err)
	}
	return payload, nil
}

// Run subscribes to every room channel and delivers what arrives to the local hub.
// It blocks until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, relayChannelPrefix+"*")
	defer pubsub.Close()
	
	// Wait for confirmation that subscription is created before publishing anything.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to room channels: %w", err)
	}
	log.Info().Str("pattern", relayChannelPrefix+"*").Msg("room relay subscribed ✅")
	
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.deliver(msg)
		}
	}
}

func (r *RedisRelay) deliver(msg *redis.Message) {
	itemID, err := strconv.ParseInt(strings.TrimPrefix(msg.Channel, relayChannelPrefix), 10, 64)
	if err != nil {
		log.Warn().Str("channel", msg.Channel).Msg("ignoring message on malformed room channel")
		return
	}
	
	var env relayEnvelope
	if err = json.Unmarshal([]byte(msg.Payload), &env); err != nil {
		log.Warn().Err(err).Str("channel", msg.Channel).Msg("ignoring malformed room message")
		return
	}
	
	r.hub.Deliver(itemID, Message{
		Type:    env.Type,
		Data:    env.Data,
		Exclude: env.Exclude,
	})
}

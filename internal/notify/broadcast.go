package notify

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster delivers the push channel over Redis pub/sub. Connected
// front-ends subscribe to the topic and surface messages in-app.
type RedisBroadcaster struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisBroadcaster wraps the shared Redis client.
func NewRedisBroadcaster(client *redis.Client, timeout time.Duration) *RedisBroadcaster {
	return &RedisBroadcaster{client: client, timeout: timeout}
}

// Publish fans the message out to topic subscribers.
func (b *RedisBroadcaster) Publish(ctx context.Context, topic, message string) error {
	if b.client == nil {
		return errors.New("redis client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.client.Publish(ctx, topic, message).Err()
}

package bus

import (
	"context"

	"github.com/yungbote/automate-backend/internal/realtime"
)

// Bus fans SSE messages out across API instances. Every instance runs a
// forwarder that feeds received messages into its local hub.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}

type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Channel       string
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/teamhub/portal-api/internal/core/ports"
)

// LiveChannel broadcasts task updates over Redis pub/sub. Each task has its
// own channel (task:<id>); whoever serves the websocket edge subscribes
// there and relays to clients. The payload shape is fixed:
//
//	{"type": "task.update", "message": "<string>"}
type LiveChannel struct {
	client *redis.Client
}

// NewLiveChannel creates a LiveChannel wrapping the given Redis client.
func NewLiveChannel(client *redis.Client) *LiveChannel {
	return &LiveChannel{client: client}
}

type livePayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Publish broadcasts msg to all subscribers of the task's channel.
func (l *LiveChannel) Publish(ctx context.Context, msg ports.LiveMessage) error {
	payload, err := json.Marshal(livePayload{Type: "task.update", Message: msg.Message})
	if err != nil {
		return fmt.Errorf("live publish: %w", err)
	}
	if err := l.client.Publish(ctx, l.channel(msg.TaskID), payload).Err(); err != nil {
		return fmt.Errorf("live publish: %w", err)
	}
	return nil
}

func (l *LiveChannel) channel(taskID string) string {
	return "task:" + taskID
}

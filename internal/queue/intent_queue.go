package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/combat-engine/pkg/queue"
	"github.com/redis/go-redis/v9"
)

// IntentKey is the Redis list every combat intent goes through.
const IntentKey = "combat-intents"

// IntentQueue is a FIFO of player intents shared by all workers.
type IntentQueue struct {
	client *Client
}

func NewIntentQueue(client *Client) *IntentQueue {
	return &IntentQueue{client: client}
}

// Enqueue validates intent, fills in its request id and timestamp when unset
// and appends it to the queue.
func (q *IntentQueue) Enqueue(ctx context.Context, intent *queue.Intent) error {
	if err := intent.Validate(); err != nil {
		return fmt.Errorf("invalid intent: %w", err)
	}
	if intent.RequestID == "" {
		intent.RequestID = uuid.New().String()
	}
	if intent.EnqueuedAt.IsZero() {
		intent.EnqueuedAt = time.Now()
	}

	data, err := intent.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize intent: %w", err)
	}
	if err := q.client.rdb.RPush(ctx, IntentKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue intent: %w", err)
	}
	return nil
}

// Dequeue removes and returns the next intent, or nil when the queue is empty.
func (q *IntentQueue) Dequeue(ctx context.Context) (*queue.Intent, error) {
	result, err := q.client.rdb.LPop(ctx, IntentKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue intent: %w", err)
	}
	return parse(result)
}

// BlockingDequeue waits up to timeout for an intent. It returns nil, nil when
// the wait times out or ctx ends.
func (q *IntentQueue) BlockingDequeue(ctx context.Context, timeout time.Duration) (*queue.Intent, error) {
	result, err := q.client.rdb.BLPop(ctx, timeout, IntentKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || ctx.Err() != nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue intent: %w", err)
	}

	// BLPop returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BLPop result: %v", result)
	}
	return parse(result[1])
}

// Depth returns the number of queued intents.
func (q *IntentQueue) Depth(ctx context.Context) (int, error) {
	count, err := q.client.rdb.LLen(ctx, IntentKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return int(count), nil
}

func parse(raw string) (*queue.Intent, error) {
	intent, err := queue.FromJSON([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse intent: %w", err)
	}
	return intent, nil
}

// Package events publishes combat notices to Redis Pub/Sub for whatever
// front end renders them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/combat-engine/pkg/combat"
	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeNotice         EventType = "combat.notice"
	EventTypeSummary        EventType = "combat.summary"
	EventTypeRequestFailed  EventType = "request.failed"
	EventTypeSessionStarted EventType = "combat.session_started"
)

// Event is the envelope of everything published on a session channel.
type Event struct {
	Type      EventType         `json:"type"`
	SessionID string            `json:"session_id"`
	To        string            `json:"to,omitempty"`
	Message   *combat.Message   `json:"message,omitempty"`
	Summary   []combat.Snapshot `json:"summary,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Channel is the Pub/Sub channel of a session.
func Channel(sessionID string) string {
	return "combat-events:" + sessionID
}

// Broadcaster publishes events to Redis Pub/Sub. It implements combat.Sink.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

var _ combat.Sink = (*Broadcaster)(nil)

func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Notify publishes a session notice. Failures are logged only; the combat
// carries on whether or not anyone heard.
func (b *Broadcaster) Notify(n combat.Notice) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	msg := n.Message
	_ = b.publish(ctx, Event{
		Type:      EventTypeNotice,
		SessionID: n.Session,
		To:        n.To,
		Message:   &msg,
	})
}

// PublishSummary publishes the current status summary of a session.
func (b *Broadcaster) PublishSummary(ctx context.Context, sessionID string, summary []combat.Snapshot) error {
	return b.publish(ctx, Event{
		Type:      EventTypeSummary,
		SessionID: sessionID,
		Summary:   summary,
	})
}

// PublishSessionStarted announces a new session.
func (b *Broadcaster) PublishSessionStarted(ctx context.Context, sessionID, requestID string) error {
	return b.publish(ctx, Event{
		Type:      EventTypeSessionStarted,
		SessionID: sessionID,
		RequestID: requestID,
	})
}

// PublishRequestFailed tells the requester that an intent was rejected.
func (b *Broadcaster) PublishRequestFailed(ctx context.Context, sessionID, requestID, errorMsg string) error {
	return b.publish(ctx, Event{
		Type:      EventTypeRequestFailed,
		SessionID: sessionID,
		RequestID: requestID,
		Error:     errorMsg,
	})
}

func (b *Broadcaster) publish(ctx context.Context, event Event) error {
	channel := Channel(event.SessionID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"request_id", event.RequestID,
	)

	return nil
}

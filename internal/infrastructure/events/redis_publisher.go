package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Message is the envelope published for every interview event
type Message struct {
	RoutingKey    string                 `json:"routing_key"`
	Type          string                 `json:"type"`
	SessionID     uuid.UUID              `json:"session_id"`
	BotID         uuid.UUID              `json:"bot_id"`
	ParticipantID *uuid.UUID             `json:"participant_id,omitempty"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// NewMessage wraps an event in its wire envelope
func NewMessage(event entities.InterviewEvent) Message {
	return Message{
		RoutingKey:    event.RoutingKey(),
		Type:          string(event.Type),
		SessionID:     event.SessionID,
		BotID:         event.BotID,
		ParticipantID: event.ParticipantID,
		Payload:       event.Payload,
		Timestamp:     event.Timestamp.UTC(),
	}
}

// RedisPublisher publishes interview events on a Redis pub/sub channel
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisPublisher creates a publisher for channel
func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish sends the event to the channel
func (p *RedisPublisher) Publish(ctx context.Context, event entities.InterviewEvent) error {
	body, err := json.Marshal(NewMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.RoutingKey(), err)
	}
	return nil
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(context.Context, entities.InterviewEvent) error { return nil }

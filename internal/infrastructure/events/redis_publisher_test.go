package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

func TestNewMessage(t *testing.T) {
	participantID := uuid.New()
	event := entities.InterviewEvent{
		SessionID:     uuid.New(),
		BotID:         uuid.New(),
		ParticipantID: &participantID,
		Type:          entities.InterviewEventResponse,
		Payload:       map[string]interface{}{"question_index": 1},
		Timestamp:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	body, err := json.Marshal(NewMessage(event))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "interview.response", decoded["routing_key"])
	assert.Equal(t, "response", decoded["type"])
	assert.Equal(t, participantID.String(), decoded["participant_id"])
	assert.Equal(t, "2026-01-02T03:04:05Z", decoded["timestamp"])
}

func TestRedisPublisher_ReportsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer client.Close()

	p := NewRedisPublisher(client, "interview_events")
	err := p.Publish(context.Background(), entities.InterviewEvent{Type: entities.InterviewEventStart})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interview.start")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), entities.InterviewEvent{}))
}

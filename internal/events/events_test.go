package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type testPayload struct {
		ID     uuid.UUID `json:"id"`
		Action string    `json:"action"`
	}

	payload := testPayload{ID: uuid.New(), Action: "test_action"}

	event, err := NewEvent("test_event", payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "test_event", event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded testPayload
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEvent_UnmarshalablePayload(t *testing.T) {
	_, err := NewEvent("bad", make(chan int))
	assert.Error(t, err)
}

func TestNewCardReviewedEvent(t *testing.T) {
	payload := CardReviewedPayload{
		CardID:     uuid.New(),
		DeckID:     uuid.New(),
		Grade:      "Hard",
		ReviewedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	event, err := NewCardReviewedEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, CardReviewed, event.Type)

	var decoded CardReviewedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload.CardID, decoded.CardID)
	assert.Equal(t, payload.DeckID, decoded.DeckID)
	assert.Equal(t, "Hard", decoded.Grade)
	assert.True(t, payload.ReviewedAt.Equal(decoded.ReviewedAt))

	assert.Contains(t, string(event.Payload), `"reviewed_at"`)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *Event
	HandlerError error
	HandledCount int
}

func (m *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	m.LastEvent = event
	m.HandledCount++
	return m.HandlerError
}

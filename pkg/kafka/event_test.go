package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackPayload struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func TestEventRoundTrip(t *testing.T) {
	payload := feedbackPayload{ID: "fb-1", Message: "great store"}

	event, err := NewEvent("catalog.feedback.created", "fb-1", "feedback", "catalog-service", payload)
	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, 1, event.Version)

	event.WithCorrelationID("req-7")

	data, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "req-7", decoded.CorrelationID)

	var got feedbackPayload
	require.NoError(t, decoded.UnmarshalData(&got))
	assert.Equal(t, payload, got)
}

func TestUnmarshalEvent_Invalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{not json"))
	assert.Error(t, err)
}

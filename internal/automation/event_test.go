package automation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ValidPayload(t *testing.T) {
	event, err := Normalize(map[string]any{
		"type": "motion",
		"area": "main_office",
		"zone": "desk3",
	})
	require.NoError(t, err)
	assert.Equal(t, "motion", event.Type)
	assert.Equal(t, map[string]any{"area": "main_office", "zone": "desk3"}, event.Condition)
}

func TestNormalize_MissingType(t *testing.T) {
	_, err := Normalize(map[string]any{"area": "kitchen"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestNormalize_NonStringType(t *testing.T) {
	_, err := Normalize(map[string]any{"type": 42.0})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestNormalize_EmptyType(t *testing.T) {
	_, err := Normalize(map[string]any{"type": ""})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestNormalize_RejectsNestedConditionValues(t *testing.T) {
	_, err := Normalize(map[string]any{
		"type": "sensor",
		"area": map[string]any{"floor": 2.0},
	})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestNormalize_NoConditionFields(t *testing.T) {
	event, err := Normalize(map[string]any{"type": "time"})
	require.NoError(t, err)
	assert.Empty(t, event.Condition)
}

func TestTickPayload_FormatsClockZeroPadded(t *testing.T) {
	at := time.Date(2026, 3, 5, 7, 4, 59, 0, time.Local)
	payload := TickPayload(at)
	assert.Equal(t, "time", payload["type"])
	assert.Equal(t, "07:04", payload["time"])

	event, err := Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, "time", event.Type)
	assert.Equal(t, "07:04", event.Condition["time"])
}

package automation

import (
	"fmt"
	"time"
)

// Event is a normalized trigger input. It is created per invocation and
// discarded after processing; nothing in the engine outlives it.
type Event struct {
	Type      string
	Condition map[string]any
}

// Normalize converts a raw trigger payload into an Event. The payload is
// the decoded JSON body of a trigger request (or a synthesized tick): a
// "type" key plus arbitrary scalar condition fields.
func Normalize(payload map[string]any) (Event, error) {
	raw, ok := payload["type"]
	if !ok {
		return Event{}, fmt.Errorf("%w: missing type", ErrInvalidEvent)
	}
	eventType, ok := raw.(string)
	if !ok || eventType == "" {
		return Event{}, fmt.Errorf("%w: type must be a non-empty string", ErrInvalidEvent)
	}

	condition := make(map[string]any, len(payload)-1)
	for key, value := range payload {
		if key == "type" {
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			return Event{}, fmt.Errorf("%w: condition field %q must be a scalar", ErrInvalidEvent, key)
		}
		condition[key] = value
	}

	return Event{Type: eventType, Condition: condition}, nil
}

// TickPayload builds the raw payload for a scheduler tick at the given
// wall-clock time. Ticks enter the engine through the same Normalize
// path as externally submitted events.
func TickPayload(now time.Time) map[string]any {
	return map[string]any{
		"type": "time",
		"time": now.Format("15:04"),
	}
}

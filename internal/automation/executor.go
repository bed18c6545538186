package automation

import (
	"context"
	"fmt"

	"smartoffice/internal/models"
)

// StateStore is the mutation surface the engine reads and writes.
// Updates are single-field at the storage layer, so two concurrent
// actions on different fields never clobber each other.
type StateStore interface {
	ReadOfficeState(ctx context.Context) (models.OfficeState, error)
	UpdateOfficeStateField(ctx context.Context, field string, value any) error
	ListParkingSpots(ctx context.Context) ([]models.ParkingSpot, error)
	UpdateParkingSpot(ctx context.Context, id int, fields map[string]any) error
}

type actionHandler func(ctx context.Context, store StateStore, params map[string]any) (string, error)

// actionRegistry is the closed set of supported action types. Adding a
// kind means adding a handler here.
var actionRegistry = map[string]actionHandler{
	"lights_on":       setLights(true),
	"lights_off":      setLights(false),
	"hvac_off":        hvacOff,
	"hvac_on":         hvacOn,
	"set_temperature": setTemperature,
}

// Execute applies a single action to office state and returns a short
// outcome description. Unknown action types fail with
// ErrUnsupportedAction; store failures wrap ErrStorageUnavailable.
// Every supported action is idempotent: applying it twice leaves the
// same state as applying it once.
func Execute(ctx context.Context, action models.Action, store StateStore) (string, error) {
	handler, ok := actionRegistry[action.Type]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAction, action.Type)
	}
	return handler(ctx, store, action.Params)
}

func setLights(on bool) actionHandler {
	return func(ctx context.Context, store StateStore, _ map[string]any) (string, error) {
		if err := store.UpdateOfficeStateField(ctx, "lights_on", on); err != nil {
			return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return fmt.Sprintf("lights_on=%t", on), nil
	}
}

func hvacOff(ctx context.Context, store StateStore, _ map[string]any) (string, error) {
	if err := store.UpdateOfficeStateField(ctx, "hvac_mode", "off"); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return "hvac_mode=off", nil
}

func hvacOn(ctx context.Context, store StateStore, params map[string]any) (string, error) {
	mode, ok := params["mode"].(string)
	if !ok || mode == "" {
		return "", fmt.Errorf("hvac_on requires a mode parameter")
	}
	if err := store.UpdateOfficeStateField(ctx, "hvac_mode", mode); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return "hvac_mode=" + mode, nil
}

func setTemperature(ctx context.Context, store StateStore, params map[string]any) (string, error) {
	value, ok := asFloat(params["value"])
	if !ok {
		return "", fmt.Errorf("set_temperature requires a numeric value parameter")
	}
	degrees := int(value)
	if err := store.UpdateOfficeStateField(ctx, "temperature", degrees); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return fmt.Sprintf("temperature=%d", degrees), nil
}

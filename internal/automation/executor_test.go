package automation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"smartoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements StateStore in memory, recording every field
// write and optionally failing specific fields.
type fakeStore struct {
	state      models.OfficeState
	writes     []string
	failFields map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state:      models.OfficeState{Temperature: 21, HVACMode: "off", LightsOn: false},
		failFields: map[string]error{},
	}
}

func (s *fakeStore) ReadOfficeState(context.Context) (models.OfficeState, error) {
	return s.state, nil
}

func (s *fakeStore) UpdateOfficeStateField(_ context.Context, field string, value any) error {
	if err := s.failFields[field]; err != nil {
		return err
	}
	switch field {
	case "lights_on":
		s.state.LightsOn = value.(bool)
	case "hvac_mode":
		s.state.HVACMode = value.(string)
	case "temperature":
		s.state.Temperature = value.(int)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	s.writes = append(s.writes, fmt.Sprintf("%s=%v", field, value))
	return nil
}

func (s *fakeStore) ListParkingSpots(context.Context) ([]models.ParkingSpot, error) {
	return nil, nil
}

func (s *fakeStore) UpdateParkingSpot(context.Context, int, map[string]any) error {
	return nil
}

func TestExecute_LightsOn(t *testing.T) {
	store := newFakeStore()
	outcome, err := Execute(context.Background(), models.Action{Type: "lights_on"}, store)
	require.NoError(t, err)
	assert.Equal(t, "lights_on=true", outcome)
	assert.True(t, store.state.LightsOn)
}

func TestExecute_LightsOnIsIdempotent(t *testing.T) {
	store := newFakeStore()
	action := models.Action{Type: "lights_on"}

	_, err := Execute(context.Background(), action, store)
	require.NoError(t, err)
	once := store.state

	_, err = Execute(context.Background(), action, store)
	require.NoError(t, err)
	assert.Equal(t, once, store.state)
}

func TestExecute_HVACOffAndLightsOff(t *testing.T) {
	store := newFakeStore()
	store.state.HVACMode = "cool"
	store.state.LightsOn = true

	_, err := Execute(context.Background(), models.Action{Type: "hvac_off"}, store)
	require.NoError(t, err)
	_, err = Execute(context.Background(), models.Action{Type: "lights_off"}, store)
	require.NoError(t, err)

	assert.Equal(t, "off", store.state.HVACMode)
	assert.False(t, store.state.LightsOn)
}

func TestExecute_HVACOnRequiresMode(t *testing.T) {
	store := newFakeStore()

	outcome, err := Execute(context.Background(), models.Action{
		Type:   "hvac_on",
		Params: map[string]any{"mode": "heat"},
	}, store)
	require.NoError(t, err)
	assert.Equal(t, "hvac_mode=heat", outcome)
	assert.Equal(t, "heat", store.state.HVACMode)

	_, err = Execute(context.Background(), models.Action{Type: "hvac_on"}, store)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedAction)
}

func TestExecute_SetTemperatureCoercesJSONNumbers(t *testing.T) {
	store := newFakeStore()

	outcome, err := Execute(context.Background(), models.Action{
		Type:   "set_temperature",
		Params: map[string]any{"value": float64(24)},
	}, store)
	require.NoError(t, err)
	assert.Equal(t, "temperature=24", outcome)
	assert.Equal(t, 24, store.state.Temperature)

	_, err = Execute(context.Background(), models.Action{
		Type:   "set_temperature",
		Params: map[string]any{"value": "warm"},
	}, store)
	assert.Error(t, err)
}

func TestExecute_UnknownActionType(t *testing.T) {
	store := newFakeStore()
	_, err := Execute(context.Background(), models.Action{Type: "open_windows"}, store)
	assert.ErrorIs(t, err, ErrUnsupportedAction)
	assert.Empty(t, store.writes)
}

func TestExecute_StoreFailureWrapsStorageUnavailable(t *testing.T) {
	store := newFakeStore()
	store.failFields["lights_on"] = errors.New("connection refused")

	_, err := Execute(context.Background(), models.Action{Type: "lights_on"}, store)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

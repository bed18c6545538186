package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuleSource struct {
	rules []models.Rule
	err   error
}

func (s *fakeRuleSource) ListActiveRules(context.Context) ([]models.Rule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rules, nil
}

func newTestEngine(rules []models.Rule, store StateStore) *Engine {
	return NewEngine(nil, &fakeRuleSource{rules: rules}, store)
}

func TestProcessEvent_MotionTurnsLightsOn(t *testing.T) {
	store := newFakeStore()
	eng := newTestEngine([]models.Rule{{
		ID:      1,
		Trigger: models.Trigger{Type: "motion", Condition: map[string]any{"area": "main_office"}},
		Action:  models.Action{Type: "lights_on"},
		Active:  true,
	}}, store)

	result, err := eng.ProcessEvent(context.Background(), map[string]any{
		"type": "motion",
		"area": "main_office",
		"zone": "desk3",
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, result.MatchedRuleIDs)
	require.Len(t, result.AppliedEffects, 1)
	assert.Equal(t, AppliedEffect{RuleID: 1, ActionType: "lights_on", Outcome: "lights_on=true"}, result.AppliedEffects[0])
	assert.Empty(t, result.Skipped)
	assert.True(t, store.state.LightsOn)
}

func TestProcessEvent_NoMatchIsANoOp(t *testing.T) {
	store := newFakeStore()
	eng := newTestEngine([]models.Rule{{
		ID:      1,
		Trigger: models.Trigger{Type: "motion", Condition: map[string]any{"area": "main_office"}},
		Action:  models.Action{Type: "lights_on"},
		Active:  true,
	}}, store)

	result, err := eng.ProcessEvent(context.Background(), map[string]any{
		"type": "motion",
		"area": "kitchen",
	})
	require.NoError(t, err)

	assert.Empty(t, result.MatchedRuleIDs)
	assert.Empty(t, result.AppliedEffects)
	assert.Empty(t, store.writes)
}

func TestProcessEvent_SchedulerTickFiresExactMinuteOnly(t *testing.T) {
	store := newFakeStore()
	store.state.HVACMode = "cool"
	eng := newTestEngine([]models.Rule{{
		ID:      2,
		Trigger: models.Trigger{Type: "time", Condition: map[string]any{"time": "19:00"}},
		Action:  models.Action{Type: "hvac_off"},
		Active:  true,
	}}, store)

	result, err := eng.ProcessEvent(context.Background(),
		TickPayload(time.Date(2026, 1, 15, 19, 0, 0, 0, time.Local)))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, result.MatchedRuleIDs)
	assert.Equal(t, "off", store.state.HVACMode)

	store.state.HVACMode = "cool"
	store.writes = nil
	result, err = eng.ProcessEvent(context.Background(),
		TickPayload(time.Date(2026, 1, 15, 19, 1, 0, 0, time.Local)))
	require.NoError(t, err)
	assert.Empty(t, result.MatchedRuleIDs)
	assert.Equal(t, "cool", store.state.HVACMode)
	assert.Empty(t, store.writes)
}

func TestProcessEvent_OneBadRuleDoesNotBlockOthers(t *testing.T) {
	store := newFakeStore()
	eng := newTestEngine([]models.Rule{
		{ID: 1, Trigger: models.Trigger{Type: "motion"}, Action: models.Action{Type: "lights_on"}, Active: true},
		{ID: 2, Trigger: models.Trigger{Type: "motion"}, Action: models.Action{Type: "summon_butler"}, Active: true},
		{ID: 3, Trigger: models.Trigger{Type: "motion"}, Action: models.Action{Type: "set_temperature", Params: map[string]any{"value": 23.0}}, Active: true},
	}, store)

	result, err := eng.ProcessEvent(context.Background(), map[string]any{"type": "motion"})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, result.MatchedRuleIDs)
	require.Len(t, result.AppliedEffects, 2)
	assert.Equal(t, 1, result.AppliedEffects[0].RuleID)
	assert.Equal(t, 3, result.AppliedEffects[1].RuleID)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 2, result.Skipped[0].RuleID)
	assert.Contains(t, result.Skipped[0].Reason, "summon_butler")

	assert.True(t, store.state.LightsOn)
	assert.Equal(t, 23, store.state.Temperature)
}

func TestProcessEvent_SameFieldConflictResolvesByListingOrder(t *testing.T) {
	store := newFakeStore()
	eng := newTestEngine([]models.Rule{
		{ID: 1, Trigger: models.Trigger{Type: "time"}, Action: models.Action{Type: "hvac_on", Params: map[string]any{"mode": "heat"}}, Active: true},
		{ID: 2, Trigger: models.Trigger{Type: "time"}, Action: models.Action{Type: "hvac_off"}, Active: true},
	}, store)

	_, err := eng.ProcessEvent(context.Background(), map[string]any{"type": "time", "time": "08:00"})
	require.NoError(t, err)

	// Both rules applied, the later listing wins the shared field
	assert.Equal(t, []string{"hvac_mode=heat", "hvac_mode=off"}, store.writes)
	assert.Equal(t, "off", store.state.HVACMode)
}

func TestProcessEvent_InvalidPayloadRejected(t *testing.T) {
	eng := newTestEngine(nil, newFakeStore())

	_, err := eng.ProcessEvent(context.Background(), map[string]any{"area": "main_office"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestProcessEvent_RuleSourceFailureFailsEvaluation(t *testing.T) {
	eng := NewEngine(nil, &fakeRuleSource{err: errors.New("connection refused")}, newFakeStore())

	_, err := eng.ProcessEvent(context.Background(), map[string]any{"type": "motion"})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestProcessEvent_StateStoreFailureFailsEvaluation(t *testing.T) {
	store := newFakeStore()
	store.failFields["lights_on"] = errors.New("connection refused")
	eng := newTestEngine([]models.Rule{
		{ID: 1, Trigger: models.Trigger{Type: "motion"}, Action: models.Action{Type: "lights_on"}, Active: true},
	}, store)

	_, err := eng.ProcessEvent(context.Background(), map[string]any{"type": "motion"})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestProcessEvent_DeterministicForSameInputs(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Trigger: models.Trigger{Type: "motion", Condition: map[string]any{"area": "main_office"}}, Action: models.Action{Type: "lights_on"}, Active: true},
		{ID: 2, Trigger: models.Trigger{Type: "motion"}, Action: models.Action{Type: "set_temperature", Params: map[string]any{"value": 22.0}}, Active: true},
	}
	payload := map[string]any{"type": "motion", "area": "main_office"}

	first, err := newTestEngine(rules, newFakeStore()).ProcessEvent(context.Background(), payload)
	require.NoError(t, err)
	second, err := newTestEngine(rules, newFakeStore()).ProcessEvent(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

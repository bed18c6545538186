package automation

import (
	"testing"

	"smartoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(id int, triggerType string, condition map[string]any) models.Rule {
	return models.Rule{
		ID:      id,
		Trigger: models.Trigger{Type: triggerType, Condition: condition},
		Action:  models.Action{Type: "lights_on"},
		Active:  true,
	}
}

func TestMatch_ExtraEventKeysIgnored(t *testing.T) {
	// A coarse area trigger matches a richer sensor event
	rules := []models.Rule{rule(1, "motion", map[string]any{"area": "main_office"})}
	event := Event{Type: "motion", Condition: map[string]any{"area": "main_office", "zone": "desk3"}}

	matched := Match(event, rules)
	require.Len(t, matched, 1)
	assert.Equal(t, 1, matched[0].ID)
}

func TestMatch_DifferentConditionValue(t *testing.T) {
	rules := []models.Rule{rule(1, "motion", map[string]any{"area": "main_office"})}
	event := Event{Type: "motion", Condition: map[string]any{"area": "kitchen"}}

	assert.Empty(t, Match(event, rules))
}

func TestMatch_AbsentConditionKey(t *testing.T) {
	rules := []models.Rule{rule(1, "motion", map[string]any{"area": "main_office"})}
	event := Event{Type: "motion", Condition: map[string]any{"zone": "desk3"}}

	assert.Empty(t, Match(event, rules))
}

func TestMatch_EmptyTriggerConditionMatchesAnyEventOfType(t *testing.T) {
	rules := []models.Rule{rule(1, "motion", nil)}

	for _, condition := range []map[string]any{
		nil,
		{"area": "kitchen"},
		{"area": "main_office", "zone": "desk3"},
	} {
		matched := Match(Event{Type: "motion", Condition: condition}, rules)
		assert.Len(t, matched, 1)
	}

	assert.Empty(t, Match(Event{Type: "time", Condition: nil}, rules))
}

func TestMatch_TypeMustAgree(t *testing.T) {
	rules := []models.Rule{rule(1, "time", map[string]any{"time": "19:00"})}
	event := Event{Type: "motion", Condition: map[string]any{"time": "19:00"}}

	assert.Empty(t, Match(event, rules))
}

func TestMatch_InactiveRulesNeverMatch(t *testing.T) {
	inactive := rule(1, "motion", nil)
	inactive.Active = false

	assert.Empty(t, Match(Event{Type: "motion"}, []models.Rule{inactive}))
}

func TestMatch_PreservesListingOrder(t *testing.T) {
	rules := []models.Rule{
		rule(7, "motion", nil),
		rule(2, "motion", map[string]any{"area": "main_office"}),
		rule(9, "time", nil),
		rule(4, "motion", nil),
	}
	event := Event{Type: "motion", Condition: map[string]any{"area": "main_office"}}

	matched := Match(event, rules)
	require.Len(t, matched, 3)
	assert.Equal(t, []int{7, 2, 4}, []int{matched[0].ID, matched[1].ID, matched[2].ID})
}

func TestMatch_ExactTimeEquality(t *testing.T) {
	rules := []models.Rule{rule(1, "time", map[string]any{"time": "19:00"})}

	assert.Len(t, Match(Event{Type: "time", Condition: map[string]any{"time": "19:00"}}, rules), 1)
	assert.Empty(t, Match(Event{Type: "time", Condition: map[string]any{"time": "19:01"}}, rules))
}

func TestMatch_NumericValuesCompareAcrossTypes(t *testing.T) {
	// Triggers loaded from storage decode numbers as float64, events
	// built in-process may carry ints
	rules := []models.Rule{rule(1, "sensor", map[string]any{"floor": float64(2)})}
	event := Event{Type: "sensor", Condition: map[string]any{"floor": 2}}

	assert.Len(t, Match(event, rules), 1)
}

func TestMatch_BoolConditionValues(t *testing.T) {
	rules := []models.Rule{rule(1, "sensor", map[string]any{"occupied": true})}

	assert.Len(t, Match(Event{Type: "sensor", Condition: map[string]any{"occupied": true}}, rules), 1)
	assert.Empty(t, Match(Event{Type: "sensor", Condition: map[string]any{"occupied": false}}, rules))
	assert.Empty(t, Match(Event{Type: "sensor", Condition: map[string]any{"occupied": "true"}}, rules))
}

package automation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"smartoffice/internal/models"
	"smartoffice/internal/utils"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// RuleSource lists the rules eligible for matching. The engine treats
// it as read-only.
type RuleSource interface {
	ListActiveRules(ctx context.Context) ([]models.Rule, error)
}

// EvaluationResult summarizes one ProcessEvent call.
type EvaluationResult struct {
	MatchedRuleIDs []int           `json:"matchedRuleIds"`
	AppliedEffects []AppliedEffect `json:"appliedEffects"`
	Skipped        []SkippedRule   `json:"skipped"`
}

// AppliedEffect records one successfully executed rule action.
type AppliedEffect struct {
	RuleID     int    `json:"ruleId"`
	ActionType string `json:"actionType"`
	Outcome    string `json:"outcome"`
}

// SkippedRule records a matched rule whose action could not be applied.
type SkippedRule struct {
	RuleID int    `json:"ruleId"`
	Reason string `json:"reason"`
}

// Engine evaluates automation rules against incoming events. It holds
// no state across invocations; everything lives in the rule source and
// the state store. Events reach it from three symmetric call sites: the
// HTTP trigger endpoint, the per-minute scheduler tick, and the MQTT
// sensor subscription.
type Engine struct {
	mqttClient mqtt.Client
	rules      RuleSource
	store      StateStore
}

// NewEngine creates a new engine instance. The MQTT client may be nil
// when no broker is configured.
func NewEngine(mqttClient mqtt.Client, rules RuleSource, store StateStore) *Engine {
	return &Engine{
		mqttClient: mqttClient,
		rules:      rules,
		store:      store,
	}
}

// Start subscribes to sensor events. Sensors publish their condition
// payload to office/sensors/<type>/event.
func (e *Engine) Start() error {
	if e.mqttClient == nil {
		log.Info().Msg("engine started without MQTT sensor feed")
		return nil
	}
	log.Info().Str("topic", "office/sensors/+/event").Msg("subscribing to sensor events")
	if token := e.mqttClient.Subscribe("office/sensors/+/event", 1, e.onSensorEvent); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Info().Msg("engine started")
	return nil
}

// Stop stops the engine
func (e *Engine) Stop() {
	if e.mqttClient != nil {
		e.mqttClient.Disconnect(250)
	}
	log.Info().Msg("engine stopped")
}

// onSensorEvent maps an MQTT sensor message onto the event pipeline.
// The topic segment names the event type, the payload is the condition.
func (e *Engine) onSensorEvent(_ mqtt.Client, msg mqtt.Message) {
	eventType := utils.ParseEventType(msg.Topic())
	if eventType == "" {
		log.Warn().Str("topic", msg.Topic()).Msg("sensor event on unrecognized topic")
		return
	}

	payload := map[string]any{}
	if len(msg.Payload()) > 0 {
		if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
			log.Warn().Err(err).Str("topic", msg.Topic()).Msg("discarding malformed sensor payload")
			return
		}
	}
	payload["type"] = eventType

	result, err := e.ProcessEvent(context.Background(), payload)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("sensor event evaluation failed")
		return
	}
	log.Info().
		Str("type", eventType).
		Ints("matched", result.MatchedRuleIDs).
		Int("applied", len(result.AppliedEffects)).
		Int("skipped", len(result.Skipped)).
		Msg("sensor event processed")
}

// ProcessEvent runs the full pipeline for one raw trigger payload:
// normalize, load active rules, match, execute each match. Matched
// rules execute independently in listing order; a failing action is
// reported in Skipped and never blocks the remaining matches. Bad
// input and unreachable storage abort the whole evaluation instead,
// since no partial result can be trusted without the repository.
func (e *Engine) ProcessEvent(ctx context.Context, payload map[string]any) (*EvaluationResult, error) {
	event, err := Normalize(payload)
	if err != nil {
		return nil, err
	}

	rules, err := e.rules.ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing active rules: %v", ErrStorageUnavailable, err)
	}

	matched := Match(event, rules)
	result := &EvaluationResult{
		MatchedRuleIDs: make([]int, 0, len(matched)),
		AppliedEffects: []AppliedEffect{},
		Skipped:        []SkippedRule{},
	}

	for _, rule := range matched {
		result.MatchedRuleIDs = append(result.MatchedRuleIDs, rule.ID)

		outcome, err := Execute(ctx, rule.Action, e.store)
		if err != nil {
			if errors.Is(err, ErrStorageUnavailable) {
				return nil, err
			}
			log.Warn().Err(err).Int("rule_id", rule.ID).Str("action", rule.Action.Type).Msg("skipping rule action")
			result.Skipped = append(result.Skipped, SkippedRule{RuleID: rule.ID, Reason: err.Error()})
			continue
		}
		result.AppliedEffects = append(result.AppliedEffects, AppliedEffect{
			RuleID:     rule.ID,
			ActionType: rule.Action.Type,
			Outcome:    outcome,
		})
	}

	log.Debug().
		Str("type", event.Type).
		Ints("matched", result.MatchedRuleIDs).
		Int("applied", len(result.AppliedEffects)).
		Int("skipped", len(result.Skipped)).
		Msg("event evaluated")
	return result, nil
}

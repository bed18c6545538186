package automation

import "smartoffice/internal/models"

// Match returns every active rule whose trigger matches the event, in
// repository listing order. A trigger matches when its type equals the
// event type and every key in its condition is present and equal in the
// event condition. Extra event keys are ignored, so a coarse trigger
// like {area: main_office} still matches a richer sensor event. An
// empty trigger condition matches any event of the same type.
//
// Match is pure: it reads nothing but its arguments. Listing order is
// also the only same-field tie-break between matched rules.
func Match(event Event, rules []models.Rule) []models.Rule {
	var matched []models.Rule
	for _, rule := range rules {
		if !rule.Active || rule.Trigger.Type != event.Type {
			continue
		}
		if conditionMatches(rule.Trigger.Condition, event.Condition) {
			matched = append(matched, rule)
		}
	}
	return matched
}

func conditionMatches(trigger, event map[string]any) bool {
	for key, want := range trigger {
		got, ok := event[key]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares two condition values. Numbers compare by value
// regardless of how JSON decoding or storage typed them.
func valuesEqual(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

package utils

import "strings"

// ParseEventType extracts the event type from a sensor topic of the
// form office/sensors/<type>/event.
func ParseEventType(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) == 4 && parts[0] == "office" && parts[1] == "sensors" && parts[3] == "event" {
		return parts[2]
	}
	return ""
}

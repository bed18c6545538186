package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventType(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"office/sensors/motion/event", "motion"},
		{"office/sensors/temperature/event", "temperature"},
		{"office/sensors/motion/state", ""},
		{"devices/motion/event", ""},
		{"office/sensors/event", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseEventType(tt.topic), "topic %q", tt.topic)
	}
}

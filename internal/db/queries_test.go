package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateOfficeStateField_RejectsUnknownFields(t *testing.T) {
	d := &DB{}

	// The whitelist is checked before any query runs, so no pool is needed
	for _, field := range []string{"owner", "id", "lights_on; DROP TABLE users"} {
		err := d.UpdateOfficeStateField(context.Background(), field, true)
		assert.Error(t, err, "field %q", field)
	}
}

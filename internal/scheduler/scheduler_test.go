package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddJob_RegistersAndReplaces(t *testing.T) {
	s := NewScheduler()

	require.NoError(t, s.AddJob("tick", "* * * * *", func() {}))
	require.NoError(t, s.AddJob("purge", "* * * * *", func() {}))
	assert.Equal(t, 2, s.JobCount())

	// Re-registering a name replaces the old entry rather than stacking
	require.NoError(t, s.AddJob("tick", "*/5 * * * *", func() {}))
	assert.Equal(t, 2, s.JobCount())
}

func TestAddJob_RejectsBadSpec(t *testing.T) {
	s := NewScheduler()
	assert.Error(t, s.AddJob("broken", "every minute", func() {}))
	assert.Equal(t, 0, s.JobCount())
}

func TestRemoveJob(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.AddJob("tick", "* * * * *", func() {}))

	s.RemoveJob("tick")
	assert.Equal(t, 0, s.JobCount())

	// Removing an unknown name is a no-op
	s.RemoveJob("tick")
}

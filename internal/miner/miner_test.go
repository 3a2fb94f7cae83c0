package miner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eastworld-ai/eastworld/internal/synapse"
)

func TestChooseAction(t *testing.T) {
	ob := &synapse.Observation{
		ActionSpace: []map[string]any{{"name": "move"}, {"name": "wait"}},
	}

	action, err := chooseAction(ob)
	require.NoError(t, err)
	require.Len(t, action, 1)
	assert.Equal(t, "move", action[0]["name"])
}

func TestChooseAction_EmptyActionSpace(t *testing.T) {
	action, err := chooseAction(&synapse.Observation{})
	require.NoError(t, err)
	assert.Empty(t, action)
}

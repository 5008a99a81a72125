package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/config"
)

func TestLoad_DefaultsWhenOmitted(t *testing.T) {
	cfg, err := config.Load([]byte(`outputFormat: dot`))
	require.NoError(t, err)
	assert.Equal(t, "dot", cfg.OutputFormat)
	assert.True(t, cfg.PDG.BuildControl)
	assert.True(t, cfg.PDG.AvoidDefPropagation)
}

func TestLoad_OverridesPDGOptions(t *testing.T) {
	cfg, err := config.Load([]byte(`
pdg:
  avoidDefPropagationWhenBuildingDataDependence: false
  buildControlDependenceFromEnterToAllNodes: true
`))
	require.NoError(t, err)
	assert.False(t, cfg.PDG.AvoidDefPropagation)
	assert.True(t, cfg.PDG.ControlDependenceFromEnterToAllNodes)

	opts := cfg.PDG.ToOptions()
	assert.False(t, opts.AvoidDefPropagationWhenBuildingDataDependence)
	assert.True(t, opts.ControlDependenceFromEnterToAllNodes)
}

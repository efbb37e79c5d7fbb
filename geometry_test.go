package roboarm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()
	require.NoError(t, g.Validate())

	assert.Equal(t, 110.25, g.UpperArmSq)
	assert.InDelta(t, 94.09, g.ForearmSq, 1e-12)
	assert.InDelta(t, 20.2, g.MaxReach(), 1e-12)
	assert.InDelta(t, 0.8, g.MinReach(), 1e-12)
}

func TestEffectiveHandLength(t *testing.T) {
	g := DefaultGeometry()

	assert.InDelta(t, 12.5, g.EffectiveHandLength(0), 1e-12)
	assert.InDelta(t, 14, g.EffectiveHandLength(1), 1e-12)
	assert.InDelta(t, 14-(3-3*math.Cos(math.Pi/6)), g.EffectiveHandLength(0.5), 1e-12)

	// grip outside [0,1] is clamped
	assert.Equal(t, g.EffectiveHandLength(0), g.EffectiveHandLength(-2))
	assert.Equal(t, g.EffectiveHandLength(1), g.EffectiveHandLength(7))
	assert.Equal(t, g.EffectiveHandLength(0), g.EffectiveHandLength(math.NaN()))
}

func TestGeometryValidate(t *testing.T) {
	g := NewGeometry(2, 0, -1, math.NaN(), 14, -3)
	err := g.Validate()
	require.Error(t, err)
	for _, name := range []string{"upper_arm", "forearm", "wrist_height", "finger_length"} {
		assert.Contains(t, err.Error(), name)
	}
	assert.NotContains(t, err.Error(), "hand_length")

	// a zero shoulder offset is a valid arm
	require.NoError(t, NewGeometry(0, 10, 10, 0, 0, 0).Validate())
}

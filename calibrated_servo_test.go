package roboarm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServoAngle(t *testing.T) {
	normal := CalibrationEntry{Direction: DirectionNormal, Offset: 18, Min: 0, Max: 180}
	inverted := CalibrationEntry{Direction: DirectionInverted, Offset: 14, Min: 0, Max: 180}

	tests := []struct {
		name        string
		entry       CalibrationEntry
		degrees     float64
		wantServo   float64
		wantClamped bool
	}{
		{"normal in range", normal, 90, 108, false},
		{"normal below min", normal, -30, 0, true},
		{"normal above max", normal, 170, 180, true},
		{"inverted in range", inverted, 46.84, 147.16, false},
		{"inverted above max", inverted, 10, 180, true},
		{"inverted below min", inverted, 200, 0, true},
		{"on the bound", normal, 162, 180, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, clamped := tc.entry.ServoAngle(Radians(tc.degrees))
			assert.InDelta(t, tc.wantServo, got, 1e-9)
			assert.Equal(t, tc.wantClamped, clamped)
		})
	}

	got, clamped := normal.ServoAngle(math.NaN())
	assert.Equal(t, normal.Min, got)
	assert.True(t, clamped)
}

func TestJointAngleInvertsServoAngle(t *testing.T) {
	for _, j := range AllJoints() {
		entry := DefaultCalibration[j]
		for _, servo := range []float64{entry.Min, entry.Min + entry.Span()/3, entry.Max} {
			got, clamped := entry.ServoAngle(entry.JointAngle(servo))
			assert.False(t, clamped, "%s at %v", j, servo)
			assert.InDelta(t, servo, got, 1e-9, "%s at %v", j, servo)
		}
	}
}

func TestCalibrationEntryValidate(t *testing.T) {
	require.NoError(t, DefaultCalibration[Elbow].Validate())

	bad := []CalibrationEntry{
		{Direction: 0, Min: 0, Max: 180},
		{Direction: 1, Min: 90, Max: 90},
		{Direction: 1, Min: 100, Max: 10},
		{Direction: -1, Offset: math.Inf(1), Min: 0, Max: 180},
	}
	for _, entry := range bad {
		assert.Error(t, entry.Validate(), "%+v", entry)
	}
}

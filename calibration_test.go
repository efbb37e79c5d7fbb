package roboarm

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCalibration(t *testing.T) {
	require.NoError(t, DefaultCalibration.Validate())

	hand := DefaultCalibration[Hand]
	assert.Equal(t, 10.0, hand.Min)
	assert.Equal(t, 70.0, hand.Max)
	for _, j := range AllJoints()[1:] {
		assert.Equal(t, 0.0, DefaultCalibration[j].Min, j.String())
		assert.Equal(t, 180.0, DefaultCalibration[j].Max, j.String())
	}
}

func TestToServoCommand(t *testing.T) {
	// joint angles of the default home pose
	joints := JointState{
		Hand:              Radians(10),
		WristTwist:        Radians(90),
		WristFlex:         Radians(-11.070504),
		Elbow:             Radians(46.839439),
		ShoulderElevation: Radians(144.231065),
		ShoulderRotation:  0,
	}
	want := ServoCommand{10, 108, 71.070504, 147.160561, 118.811065, 90}

	cmd, reachable := DefaultCalibration.ToServoCommand(joints)
	require.True(t, reachable)
	if diff := cmp.Diff(want, cmd, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("ToServoCommand mismatch (-want +got):\n%s", diff)
	}

	again, _ := DefaultCalibration.ToServoCommand(joints)
	assert.Equal(t, cmd, again, "mapping must be deterministic")

	joints[Elbow] = Radians(-30)
	cmd, reachable = DefaultCalibration.ToServoCommand(joints)
	assert.False(t, reachable)
	assert.Equal(t, 180.0, cmd[Elbow])

	_, clamped := DefaultCalibration.MapJoints(joints)
	assert.Equal(t, [NumJoints]bool{Elbow: true}, clamped)
}

func TestHandServoAngle(t *testing.T) {
	cal := DefaultCalibration

	assert.Equal(t, 10.0, cal.HandServoAngle(0))
	assert.Equal(t, 70.0, cal.HandServoAngle(1))
	assert.Equal(t, 40.0, cal.HandServoAngle(0.5))
	assert.Equal(t, 10.0, cal.HandServoAngle(-1))
	assert.Equal(t, 70.0, cal.HandServoAngle(3))

	for _, grip := range []float64{0, 0.25, 1} {
		servo, clamped := cal[Hand].ServoAngle(cal.GripJointAngle(grip))
		assert.False(t, clamped)
		assert.InDelta(t, cal.HandServoAngle(grip), servo, 1e-9)
	}
}

func TestCalibrationValidate(t *testing.T) {
	cal := DefaultCalibration
	cal[WristFlex].Direction = 3
	cal[ShoulderRotation].Max = math.NaN()

	err := cal.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "joint wrist_flex")
	assert.Contains(t, err.Error(), "joint shoulder_rotation")
	assert.NotContains(t, err.Error(), "joint elbow")
}

func TestSaveCalibrationToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")

	cal := DefaultCalibration
	cal[Hand] = CalibrationEntry{Direction: DirectionInverted, Offset: 3, Min: 20, Max: 65}
	require.NoError(t, SaveCalibrationToFile(path, cal))

	loaded, err := LoadCalibrationFromFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cal, loaded)

	assert.Error(t, SaveCalibrationToFile(filepath.Join(t.TempDir(), "missing", "c.json"), cal))
}

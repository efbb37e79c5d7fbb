// calibration.go - per-joint servo calibration table and joint-to-servo mapping
package roboarm

import (
	"fmt"

	"go.uber.org/multierr"
)

// Calibration holds one entry per joint, indexed by Joint.
type Calibration [NumJoints]CalibrationEntry

// DefaultCalibration is the mounting polarity, offset and travel of the reference arm.
var DefaultCalibration = Calibration{
	Hand:              {Direction: DirectionNormal, Offset: 0, Min: 10, Max: 70},
	WristTwist:        {Direction: DirectionNormal, Offset: 18, Min: 0, Max: 180},
	WristFlex:         {Direction: DirectionInverted, Offset: -120, Min: 0, Max: 180},
	Elbow:             {Direction: DirectionInverted, Offset: 14, Min: 0, Max: 180},
	ShoulderElevation: {Direction: DirectionNormal, Offset: -25.42, Min: 0, Max: 180},
	ShoulderRotation:  {Direction: DirectionNormal, Offset: 90, Min: 0, Max: 180},
}

// ToServoCommand maps joint angles to clamped servo angles. reachable is false when any
// joint had to be clamped. It has no side effects, so equal inputs give equal outputs.
func (c Calibration) ToServoCommand(joints JointState) (cmd ServoCommand, reachable bool) {
	cmd, clamped := c.MapJoints(joints)
	reachable = true
	for _, hit := range clamped {
		if hit {
			reachable = false
		}
	}
	return cmd, reachable
}

// MapJoints is ToServoCommand with the clamp status of each joint.
func (c Calibration) MapJoints(joints JointState) (cmd ServoCommand, clamped [NumJoints]bool) {
	for i, entry := range c {
		cmd[i], clamped[i] = entry.ServoAngle(joints[i])
	}
	return cmd, clamped
}

// HandServoAngle linearly interpolates the hand servo between its calibrated bounds:
// grip 0 is Min and grip 1 is Max. grip is clamped to [0,1].
func (c Calibration) HandServoAngle(grip float64) float64 {
	hand := c[Hand]
	return hand.Min + clampUnit(grip)*hand.Span()
}

// GripJointAngle returns the hand joint angle, in radians, whose unclamped servo angle
// is HandServoAngle(grip).
func (c Calibration) GripJointAngle(grip float64) float64 {
	return c[Hand].JointAngle(c.HandServoAngle(grip))
}

// Validate checks every entry and reports all invalid joints at once.
func (c Calibration) Validate() error {
	var err error
	for _, j := range AllJoints() {
		if jerr := c[j].Validate(); jerr != nil {
			err = multierr.Append(err, fmt.Errorf("joint %s: %w", j, jerr))
		}
	}
	return err
}

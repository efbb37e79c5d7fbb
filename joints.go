package roboarm

import (
	"fmt"
	"strings"
)

// Joint identifies one of the arm's six servos. The numeric value is the servo index
// used by the calibration table and by downstream transports.
type Joint int

// Joints of the arm, ordered by servo index.
const (
	Hand Joint = iota
	WristTwist
	WristFlex
	Elbow
	ShoulderElevation
	ShoulderRotation
)

// NumJoints is the number of servos on the arm.
const NumJoints = 6

var jointNames = [NumJoints]string{
	Hand:              "hand",
	WristTwist:        "wrist_twist",
	WristFlex:         "wrist_flex",
	Elbow:             "elbow",
	ShoulderElevation: "shoulder_elevation",
	ShoulderRotation:  "shoulder_rotation",
}

func (j Joint) String() string {
	if j < 0 || int(j) >= NumJoints {
		return fmt.Sprintf("joint(%d)", int(j))
	}
	return jointNames[j]
}

// AllJoints returns every joint in servo index order.
func AllJoints() []Joint {
	return []Joint{Hand, WristTwist, WristFlex, Elbow, ShoulderElevation, ShoulderRotation}
}

// ParseJoint looks a joint up by its name.
func ParseJoint(name string) (Joint, error) {
	for i, n := range jointNames {
		if n == name {
			return Joint(i), nil
		}
	}
	return 0, fmt.Errorf("unknown joint %q", name)
}

// JointState holds the six joint angles in radians, indexed by Joint.
type JointState [NumJoints]float64

// ServoCommand holds the six servo angles in degrees, indexed by Joint, after
// calibration and clamping.
type ServoCommand [NumJoints]float64

func (c ServoCommand) String() string {
	var b strings.Builder
	for i, angle := range c {
		if i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(&b, "%d, %.2f", i, angle)
	}
	return b.String()
}

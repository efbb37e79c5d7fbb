// Package roboarm computes joint and servo commands for a 6-DoF servo arm from a
// desired end-effector pose.
package roboarm

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Geometry holds the physical link lengths of the arm, in the same units as target
// positions. Use NewGeometry so the cached squares are populated.
type Geometry struct {
	Shoulder     float64 `json:"shoulder"`
	UpperArm     float64 `json:"upper_arm"`
	Forearm      float64 `json:"forearm"`
	WristHeight  float64 `json:"wrist_height"`
	HandLength   float64 `json:"hand_length"`
	FingerLength float64 `json:"finger_length"`

	ShoulderSq    float64 `json:"-"`
	UpperArmSq    float64 `json:"-"`
	ForearmSq     float64 `json:"-"`
	WristHeightSq float64 `json:"-"`
	HandLengthSq  float64 `json:"-"`
}

// Default link lengths of the reference arm.
const (
	DefaultShoulder     = 2.0
	DefaultUpperArm     = 10.5
	DefaultForearm      = 9.7
	DefaultWristHeight  = 3.0
	DefaultHandLength   = 14.0
	DefaultFingerLength = 3.0
)

// NewGeometry returns a Geometry with its squared lengths cached.
func NewGeometry(shoulder, upperArm, forearm, wristHeight, handLength, fingerLength float64) Geometry {
	return Geometry{
		Shoulder:      shoulder,
		UpperArm:      upperArm,
		Forearm:       forearm,
		WristHeight:   wristHeight,
		HandLength:    handLength,
		FingerLength:  fingerLength,
		ShoulderSq:    shoulder * shoulder,
		UpperArmSq:    upperArm * upperArm,
		ForearmSq:     forearm * forearm,
		WristHeightSq: wristHeight * wristHeight,
		HandLengthSq:  handLength * handLength,
	}
}

// DefaultGeometry returns the link lengths of the reference arm.
func DefaultGeometry() Geometry {
	return NewGeometry(DefaultShoulder, DefaultUpperArm, DefaultForearm,
		DefaultWristHeight, DefaultHandLength, DefaultFingerLength)
}

// Validate checks that every link length is finite and that the links which take part
// in the triangle solve are positive.
func (g Geometry) Validate() error {
	var err error
	links := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"shoulder", g.Shoulder, false},
		{"upper_arm", g.UpperArm, true},
		{"forearm", g.Forearm, true},
		{"wrist_height", g.WristHeight, false},
		{"hand_length", g.HandLength, false},
		{"finger_length", g.FingerLength, false},
	}
	for _, link := range links {
		switch {
		case math.IsNaN(link.value) || math.IsInf(link.value, 0):
			err = multierr.Append(err, fmt.Errorf("%s: length must be finite, got %v", link.name, link.value))
		case link.positive && link.value <= 0:
			err = multierr.Append(err, fmt.Errorf("%s: length must be positive, got %v", link.name, link.value))
		case link.value < 0:
			err = multierr.Append(err, fmt.Errorf("%s: length must not be negative, got %v", link.name, link.value))
		}
	}
	return err
}

// MaxReach is the longest shoulder-to-wrist distance the upper arm and forearm span.
func (g Geometry) MaxReach() float64 {
	return g.UpperArm + g.Forearm
}

// MinReach is the shortest shoulder-to-wrist distance the upper arm and forearm span.
func (g Geometry) MinReach() float64 {
	return math.Abs(g.UpperArm - g.Forearm)
}

// EffectiveHandLength is the wrist-to-grip-point length for a grip in [0,1]. The
// fingers swing inwards as the grip opens, pulling the grip point towards the wrist.
func (g Geometry) EffectiveHandLength(grip float64) float64 {
	theta := (1 - clampUnit(grip)) * (math.Pi / 3)
	return g.HandLength - (g.FingerLength - g.FingerLength*math.Cos(theta))
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

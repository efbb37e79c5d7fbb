package roboarm

import (
	"fmt"
	"math"
)

// Servo mounting directions
const (
	DirectionNormal   = 1  // servo angle grows with the joint angle
	DirectionInverted = -1 // servo is mounted mirrored; angles are reflected about 180°
)

// boundsTolerance absorbs the rounding of a radians round trip, so an angle that sits on
// a bound is not reported as clamped.
const boundsTolerance = 1e-9

// CalibrationEntry maps one joint angle onto its servo's command range
type CalibrationEntry struct {
	Direction int     `json:"direction"`
	Offset    float64 `json:"offset"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// ServoAngle converts a joint angle in radians to a servo angle in degrees, clamped to
// the entry's bounds. clamped reports whether the bounds were hit.
func (c CalibrationEntry) ServoAngle(radians float64) (degrees float64, clamped bool) {
	degrees = c.unclamped(radians)
	if math.IsNaN(degrees) {
		return c.Min, true
	}

	// Clamp to servo travel
	if degrees < c.Min {
		return c.Min, degrees < c.Min-boundsTolerance
	}
	if degrees > c.Max {
		return c.Max, degrees > c.Max+boundsTolerance
	}
	return degrees, false
}

func (c CalibrationEntry) unclamped(radians float64) float64 {
	degrees := Degrees(radians)
	if c.Direction == DirectionInverted {
		degrees = 180 - degrees
	}
	return degrees + c.Offset
}

// JointAngle converts a servo angle in degrees back to a joint angle in radians. It is
// the exact inverse of ServoAngle before clamping.
func (c CalibrationEntry) JointAngle(degrees float64) float64 {
	degrees -= c.Offset
	if c.Direction == DirectionInverted {
		degrees = 180 - degrees
	}
	return Radians(degrees)
}

// Span returns the width of the servo's travel in degrees
func (c CalibrationEntry) Span() float64 {
	return c.Max - c.Min
}

// Validate checks if the calibration parameters are valid
func (c CalibrationEntry) Validate() error {
	if c.Direction != DirectionNormal && c.Direction != DirectionInverted {
		return fmt.Errorf("invalid direction: %d (must be 1 or -1)", c.Direction)
	}

	for _, v := range []float64{c.Offset, c.Min, c.Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("calibration values must be finite, got offset=%v min=%v max=%v", c.Offset, c.Min, c.Max)
		}
	}

	if c.Min >= c.Max {
		return fmt.Errorf("invalid range: min (%v) must be less than max (%v)", c.Min, c.Max)
	}

	return nil
}

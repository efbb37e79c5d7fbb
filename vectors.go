package roboarm

import (
	"math"

	"github.com/golang/geo/r3"
)

// degenerateEpsilon is the length below which a derived axis is treated as zero.
const degenerateEpsilon = 1e-9

var (
	unitY = r3.Vector{Y: 1}
	unitZ = r3.Vector{Z: 1}
)

// Project returns the component of raw parallel to target. The second result is false
// when target has zero length, in which case the zero vector is returned and the caller
// must pick a fallback axis.
func Project(raw, target r3.Vector) (r3.Vector, bool) {
	if isDegenerate(target) {
		return r3.Vector{}, false
	}
	dir := target.Normalize()
	return dir.Mul(raw.Dot(dir)), true
}

// Squash returns the component of raw orthogonal to normal. A zero normal leaves raw
// unchanged.
func Squash(raw, normal r3.Vector) r3.Vector {
	parallel, _ := Project(raw, normal)
	return raw.Sub(parallel)
}

// AngleBetween returns the angle between a and b in [0, π]. It is NaN when either
// vector has zero length.
func AngleBetween(a, b r3.Vector) float64 {
	bot := a.Norm() * b.Norm()
	if bot == 0 {
		return math.NaN()
	}
	cos := a.Dot(b) / bot
	// rounding can push parallel vectors just past ±1
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

func isDegenerate(v r3.Vector) bool {
	return v.Norm() < degenerateEpsilon
}

func isFinite(v r3.Vector) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

package roboarm

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"gonum.org/v1/gonum/floats/scalar"
)

// acosTolerance is how far an arccosine argument may stray past ±1 before the
// clamp counts as a real reach violation rather than rounding noise.
const acosTolerance = 1e-9

// Solution is the result of a single inverse kinematics solve. The Hand joint is left
// at zero; it is driven by the grip through the calibration table.
type Solution struct {
	Joints JointState
	// Rectified is the wrist target after removing the hand and wrist offsets.
	Rectified r3.Vector
	// ForearmElevation is the forearm's angle above horizontal.
	ForearmElevation float64
	// Clamped reports that a law-of-cosines argument had to be clamped into [-1, 1].
	Clamped bool
}

// Solver turns target poses into joint angles for a fixed arm geometry. It holds no
// mutable state and is safe for concurrent use.
type Solver struct {
	geometry Geometry
	logger   logging.Logger
}

// NewSolver returns a solver for the given geometry.
func NewSolver(geometry Geometry, logger logging.Logger) *Solver {
	if logger == nil {
		logger = logging.NewBlankLogger("roboarm-solver")
	}
	return &Solver{geometry: geometry, logger: logger}
}

// Geometry returns the link lengths the solver was built with.
func (s *Solver) Geometry() Geometry {
	return s.geometry
}

// Solve computes the joint angles that place the grip point at position with the hand
// pointing along orientation. The orientation need not be normalized. grip in [0,1]
// shortens the effective hand length.
//
// When the wrist target is out of reach the arccosine arguments are clamped, the
// best-effort solution is returned and the error wraps ErrUnreachablePose. Any other
// error comes with a zero Solution.
func (s *Solver) Solve(position, orientation r3.Vector, grip float64) (Solution, error) {
	if !isFinite(position) || !isFinite(orientation) || math.IsNaN(grip) || math.IsInf(grip, 0) {
		return Solution{}, errors.Wrapf(ErrNonFiniteInput, "position %v, orientation %v, grip %v",
			position, orientation, grip)
	}
	if isDegenerate(orientation) {
		return Solution{}, ErrDegenerateOrientation
	}
	orientation = orientation.Normalize()

	axis := s.wristFlexAxis(position)

	var sol Solution
	sol.Rectified = position.Add(s.orientationOffset(orientation, axis, grip))
	s.logger.Debugf("rectified position: %v", sol.Rectified)

	forearmElevation, err := s.solvePosition(sol.Rectified, &sol.Joints)
	if err != nil {
		sol.Clamped = true
	}
	sol.ForearmElevation = forearmElevation
	s.solveOrientation(position, orientation, axis, forearmElevation, &sol.Joints)

	s.logger.Debugf("solved joints (deg): shoulder_rotation=%.2f shoulder_elevation=%.2f elbow=%.2f wrist_flex=%.2f wrist_twist=%.2f",
		Degrees(sol.Joints[ShoulderRotation]), Degrees(sol.Joints[ShoulderElevation]),
		Degrees(sol.Joints[Elbow]), Degrees(sol.Joints[WristFlex]), Degrees(sol.Joints[WristTwist]))
	return sol, err
}

// wristFlexAxis is the horizontal axis the wrist flexes about. A target on the
// vertical axis has no defined heading, so Y is used.
func (s *Solver) wristFlexAxis(target r3.Vector) r3.Vector {
	axis := target.Cross(unitZ)
	if isDegenerate(axis) {
		s.logger.Debugf("target %v lies on the vertical axis, using Y as wrist flex axis", target)
		return unitY
	}
	return axis
}

// orientationOffset is the displacement from the grip point back to the wrist centre
// for a normalized heading.
func (s *Solver) orientationOffset(heading, axis r3.Vector, grip float64) r3.Vector {
	flex := Squash(heading, axis)
	heightOffset := flex.Mul(-s.geometry.WristHeight)
	// Normalize yields the zero vector when heading is parallel to the axis.
	dir := flex.Cross(axis).Normalize()
	if isDegenerate(dir) {
		s.logger.Debugf("heading %v is parallel to the wrist flex axis, ignoring hand length", heading)
	}
	return dir.Mul(-s.geometry.EffectiveHandLength(grip)).Add(heightOffset)
}

// solvePosition fills the shoulder and elbow joints for the rectified wrist target and
// returns the forearm elevation.
func (s *Solver) solvePosition(target r3.Vector, joints *JointState) (float64, error) {
	g := s.geometry

	planar := math.Hypot(target.X, target.Y)
	var rotation float64
	if target.X != 0 || target.Y != 0 {
		// must stay atan, not atan2; the calibration offsets depend on it
		rotation = math.Atan(target.Y / target.X)
	}
	if target.X < 0 {
		planar = -planar
	}
	planar += g.Shoulder

	distSq := planar*planar + target.Z*target.Z
	dist := math.Sqrt(distSq)

	auxArg := (g.UpperArmSq - g.ForearmSq + distSq) / (2 * g.UpperArm * dist)
	elbowArg := (g.UpperArmSq + g.ForearmSq - distSq) / (2 * g.UpperArm * g.Forearm)
	aux, auxOK := clampedAcos(auxArg)
	elbow, elbowOK := clampedAcos(elbowArg)

	var elevation float64
	if planar != 0 || target.Z != 0 {
		elevation = math.Atan(target.Z / planar)
		if planar < 0 {
			elevation += math.Pi
		}
	}
	shoulderElevation := aux + elevation

	joints[ShoulderRotation] = rotation
	joints[ShoulderElevation] = shoulderElevation
	joints[Elbow] = elbow

	forearmElevation := elbow + shoulderElevation - math.Pi

	if !auxOK || !elbowOK {
		arg := auxArg
		if auxOK {
			arg = elbowArg
		}
		return forearmElevation, &UnreachableError{
			Distance: dist,
			MinReach: g.MinReach(),
			MaxReach: g.MaxReach(),
			Argument: arg,
		}
	}
	return forearmElevation, nil
}

// solveOrientation fills the wrist joints. Both wrist angles depend on the raw target
// and the heading, never the rectified target.
func (s *Solver) solveOrientation(target, orientation, axis r3.Vector, forearmElevation float64, joints *JointState) {
	flex := Squash(orientation, axis)
	horizontal := r3.Vector{X: target.X, Y: target.Y}
	if isDegenerate(horizontal) {
		horizontal = unitZ.Cross(axis)
	}

	var wristElevation float64
	if !isDegenerate(flex) {
		wristElevation = AngleBetween(flex, horizontal) - math.Pi/2
	}

	joints[WristFlex] = -forearmElevation + wristElevation
	joints[WristTwist] = math.Pi - AngleBetween(orientation, axis)
}

// clampedAcos returns acos of arg clamped into [-1, 1]. ok is false when the clamp
// moved arg by more than rounding noise, or arg was NaN.
func clampedAcos(arg float64) (angle float64, ok bool) {
	if math.IsNaN(arg) {
		return 0, false
	}
	clamped := math.Max(-1, math.Min(1, arg))
	return math.Acos(clamped), scalar.EqualWithinAbs(arg, clamped, acosTolerance)
}

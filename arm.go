package roboarm

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
)

// State is a consistent snapshot of everything the arm last published.
type State struct {
	Pose      Pose
	Joints    JointState
	Servos    ServoCommand
	Grip      float64
	Reachable bool
}

// Arm owns the arm's pose, joint angles, servo command and grip. A single lock spans
// every update from solve to publish, so readers never see a servo command assembled
// from two different poses.
type Arm struct {
	solver      *Solver
	calibration Calibration
	home        Pose
	logger      logging.Logger

	mu          sync.RWMutex
	pose        Pose
	joints      JointState
	servos      ServoCommand
	clamped     [NumJoints]bool
	unreachable bool
	grip        float64
}

// NewArm builds an arm from its config and moves it to the home pose. A nil config
// uses the reference arm with the default calibration.
func NewArm(cfg *Config, logger logging.Logger) (*Arm, error) {
	if logger == nil {
		logger = logging.NewLogger("roboarm")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(""); err != nil {
		return nil, errors.Wrap(err, "invalid arm config")
	}

	calibration, _ := cfg.LoadCalibration(logger)

	a := &Arm{
		solver:      NewSolver(cfg.ArmGeometry(), logger),
		calibration: calibration,
		home:        cfg.HomePose(),
		logger:      logger,
	}

	if !a.Home() {
		logger.Warnf("Home pose %v is not reachable with the current calibration", a.home)
	}
	logger.Infof("Arm initialized at home pose %v, servos: %v", a.home, a.ServoCommand())

	return a, nil
}

// SetPose solves for the given position and orientation and publishes the result. It
// reports whether every servo angle stayed inside its calibrated travel. An unreachable
// target publishes the clamped best-effort solution and returns false; a zero or
// non-finite input leaves the state untouched and returns false.
func (a *Arm) SetPose(position, orientation r3.Vector) bool {
	reachable, _ := a.UpdatePose(position, orientation)
	return reachable
}

// UpdatePose is SetPose with the reason for a false result. An error wrapping
// ErrUnreachablePose means the clamped solution was published; any other error means
// the input was rejected and nothing changed.
func (a *Arm) UpdatePose(position, orientation r3.Vector) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sol, err := a.solver.Solve(position, orientation, a.grip)
	if err != nil && !errors.Is(err, ErrUnreachablePose) {
		a.logger.Warnf("Rejected pose %v / %v: %v", position, orientation, err)
		return false, err
	}
	if err != nil {
		a.logger.Warnf("Publishing clamped solution: %v", err)
	}

	joints := sol.Joints
	joints[Hand] = a.calibration.GripJointAngle(a.grip)
	servos, clamped := a.calibration.MapJoints(joints)

	a.pose = NewPose(position, orientation)
	a.joints = joints
	a.servos = servos
	a.clamped = clamped
	a.unreachable = err != nil

	for _, j := range AllJoints() {
		if clamped[j] {
			a.logger.Warnf("Joint %s angle %.2f deg outside servo travel, clamped to %.2f",
				j, Degrees(joints[j]), servos[j])
		}
	}

	reachable := a.reachableLocked()
	a.logger.Debugf("flush adjusted: %v inBounds: %v", servos, reachable)
	return reachable, err
}

// SetSpatialPose is SetPose for an rdk pose.
func (a *Arm) SetSpatialPose(pose spatialmath.Pose) bool {
	p := PoseFromSpatial(pose)
	return a.SetPose(p.Position, p.Orientation)
}

// Home moves the arm to its configured home pose.
func (a *Arm) Home() bool {
	return a.SetPose(a.home.Position, a.home.Orientation)
}

// SetGrip sets the grip opening, clamped to [0,1], and republishes the hand servo. The
// other joints keep their last solution.
func (a *Arm) SetGrip(percent float64) {
	grip := clampUnit(percent)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.grip = grip
	a.joints[Hand] = a.calibration.GripJointAngle(grip)
	a.servos[Hand], a.clamped[Hand] = a.calibration[Hand].ServoAngle(a.joints[Hand])
}

// Grip returns the grip opening in [0,1].
func (a *Arm) Grip() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grip
}

// ServoCommand returns a copy of the last published servo angles, in degrees.
func (a *Arm) ServoCommand() ServoCommand {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.servos
}

// Joints returns a copy of the last solved joint angles, in radians.
func (a *Arm) Joints() JointState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.joints
}

// Pose returns the last accepted pose.
func (a *Arm) Pose() Pose {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pose
}

// Cursor returns the last accepted target position.
func (a *Arm) Cursor() r3.Vector {
	return a.Pose().Position
}

// Gimbal returns the last accepted hand direction, normalized.
func (a *Arm) Gimbal() r3.Vector {
	return a.Pose().Orientation
}

// Reachable reports whether the published servo command needed no clamping.
func (a *Arm) Reachable() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.reachableLocked()
}

// State returns a snapshot of the arm taken under a single lock.
func (a *Arm) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return State{
		Pose:      a.pose,
		Joints:    a.joints,
		Servos:    a.servos,
		Grip:      a.grip,
		Reachable: a.reachableLocked(),
	}
}

// Calibration returns the calibration table in use.
func (a *Arm) Calibration() Calibration {
	return a.calibration
}

// Geometry returns the link lengths in use.
func (a *Arm) Geometry() Geometry {
	return a.solver.Geometry()
}

func (a *Arm) reachableLocked() bool {
	if a.unreachable {
		return false
	}
	for _, hit := range a.clamped {
		if hit {
			return false
		}
	}
	return true
}

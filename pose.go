package roboarm

import (
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
)

// Pose is an end-effector target: where the grip point sits and which way the hand
// points. Orientation is a unit vector once built by NewPose.
type Pose struct {
	Position    r3.Vector
	Orientation r3.Vector
}

// NewPose returns a pose with its orientation normalized. A zero orientation stays zero.
func NewPose(position, orientation r3.Vector) Pose {
	return Pose{Position: position, Orientation: orientation.Normalize()}
}

// Spatial converts the pose to an rdk pose. The hand direction becomes the orientation
// vector axis with zero rotation about it.
func (p Pose) Spatial() spatialmath.Pose {
	return spatialmath.NewPose(p.Position, &spatialmath.OrientationVector{
		OX: p.Orientation.X,
		OY: p.Orientation.Y,
		OZ: p.Orientation.Z,
	})
}

// PoseFromSpatial converts an rdk pose. Rotation about the orientation vector axis has
// no counterpart here and is dropped.
func PoseFromSpatial(sp spatialmath.Pose) Pose {
	ov := sp.Orientation().OrientationVectorRadians()
	return NewPose(sp.Point(), r3.Vector{X: ov.OX, Y: ov.OY, Z: ov.OZ})
}

// Package collision implements the pose-parameterized swept-volume shapes
// (spec.md C2). The continuous collision engine that sweeps them along
// trajectory pairs lives in package sweep.
package collision

import (
	"fmt"

	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/swerr"
)

// Kind tags a Shape's concrete variant, used to dispatch InCollision and to
// report IncompatibleShapePair for unsupported combinations.
type Kind int

const (
	KindLine Kind = iota
	KindLineWithDisc
	KindOrientedBox
	KindAnchoredBoxEndEffector
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindLineWithDisc:
		return "LineWithDisc"
	case KindOrientedBox:
		return "OrientedBox"
	case KindAnchoredBoxEndEffector:
		return "AnchoredBoxEndEffector"
	default:
		return "Unknown"
	}
}

// Shape is the capability every collision volume variant must satisfy:
// pose-setting plus a pairwise test. Concrete shapes are Line, LineWithDisc,
// OrientedBox, and AnchoredBoxEndEffector.
type Shape interface {
	// Kind reports which concrete variant this is, for dispatch.
	Kind() Kind

	// SetPose repositions the shape. For OrientedBox this sets the full
	// SE(3) pose; AnchoredBoxEndEffector and the line-family shapes use only
	// the translation component (AnchoredBoxEndEffector re-derives its
	// orientation from the anchor geometry).
	SetPose(geometry.Pose)

	// Translation returns the shape's current reference point — the tip for
	// line-family shapes, the end-effector position for
	// AnchoredBoxEndEffector, the center for a bare OrientedBox.
	Translation() geometry.Vec3

	// SetTranslation repositions the shape by its reference point alone,
	// holding orientation fixed (or, for AnchoredBoxEndEffector, re-deriving
	// orientation from the anchor geometry).
	SetTranslation(geometry.Vec3)

	// InCollision tests this shape against other. It fails with
	// swerr.ErrIncompatibleShapePair when other is a kind this shape has no
	// defined test against.
	InCollision(other Shape) (bool, error)
}

func incompatible(a, b Shape) error {
	return fmt.Errorf("%w: %s vs %s", swerr.ErrIncompatibleShapePair, a.Kind(), b.Kind())
}

// SavePose captures enough state from a Shape to restore it later via
// Restore — used by the collision engine to save/restore poses around a
// query, per spec.md §5's "collision routines MUST save and restore pose on
// every query".
type SavePose struct {
	shape Shape
	pose  geometry.Pose
}

// Save captures s's current pose.
func Save(s Shape) SavePose {
	return SavePose{shape: s, pose: currentPose(s)}
}

// Restore writes the captured pose back onto the shape it was taken from.
func (sp SavePose) Restore() {
	sp.shape.SetPose(sp.pose)
}

func currentPose(s Shape) geometry.Pose {
	switch v := s.(type) {
	case *OrientedBox:
		return v.pose
	case *AnchoredBoxEndEffector:
		return v.eePose
	default:
		return geometry.NewPoseFromPoint(s.Translation())
	}
}

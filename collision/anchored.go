package collision

import (
	"math"

	"github.com/elektrokombinacija/swarmweld/geometry"
)

// AnchoredBoxEndEffector models a robot of bounding dimensions
// dims=(lx,ly,lz) whose base is pinned at an anchor in the world, with an
// end-effector offset in the end-effector frame. Setting Translation (the
// end-effector tip in world) derives both an end-effector pose and a box
// pose used for collision; callers never see the derivation, only the tip.
type AnchoredBoxEndEffector struct {
	halfExtents geometry.Vec3
	anchor      geometry.Vec3
	offset      geometry.Vec3

	eePose  geometry.Pose // end-effector pose, used by trajectory sampling
	boxPose geometry.Pose // box pose, used by collision
}

// NewAnchoredBoxEndEffector creates a shape with the base pinned at anchor
// and the end-effector tip initially at anchor.
func NewAnchoredBoxEndEffector(dims, anchor, offset geometry.Vec3) *AnchoredBoxEndEffector {
	a := &AnchoredBoxEndEffector{
		halfExtents: geometry.Vec3{X: dims.X / 2, Y: dims.Y / 2, Z: dims.Z / 2},
		anchor:      anchor,
		offset:      offset,
	}
	a.SetTranslation(anchor)
	return a
}

func (a *AnchoredBoxEndEffector) Kind() Kind { return KindAnchoredBoxEndEffector }

func (a *AnchoredBoxEndEffector) SetPose(p geometry.Pose) { a.SetTranslation(p.Translation) }

// EndEffectorPose returns the maintained end-effector pose, consumed by
// trajectory sampling.
func (a *AnchoredBoxEndEffector) EndEffectorPose() geometry.Pose { return a.eePose }

// BoxPose returns the maintained box pose, consumed by collision.
func (a *AnchoredBoxEndEffector) BoxPose() geometry.Pose { return a.boxPose }

func (a *AnchoredBoxEndEffector) Translation() geometry.Vec3 { return a.eePose.Translation }

// SetTranslation sets the end-effector tip p in world and re-derives:
//   - in-plane direction d̂ = unit(p.xy - anchor.xy)
//   - rotation about world-Z so local +x aligns with d̂
//   - box center = p + R·(offset - (lx/2, 0, 0)), z clamped to anchor.z
func (a *AnchoredBoxEndEffector) SetTranslation(p geometry.Vec3) {
	a.eePose = geometry.NewPoseFromPoint(p)

	delta := geometry.Vec3{X: p.X - a.anchor.X, Y: p.Y - a.anchor.Y}
	rot := geometry.IdentityRotation()
	if d, err := geometry.UnitVector(delta); err == nil {
		theta := angleOfXY(d)
		rot = geometry.RotationZ(theta)
	}

	// offset - (lx/2, 0, 0); halfExtents.X already == lx/2.
	localOffset := geometry.Vec3{
		X: a.offset.X - a.halfExtents.X,
		Y: a.offset.Y,
		Z: a.offset.Z,
	}

	center := p.Add(rot.ApplyToVector(localOffset))
	center.Z = a.anchor.Z

	a.boxPose = geometry.NewPose(center, rot)
}

func angleOfXY(d geometry.Vec3) float64 {
	return math.Atan2(d.Y, d.X)
}

func (a *AnchoredBoxEndEffector) InCollision(other Shape) (bool, error) {
	switch o := other.(type) {
	case *OrientedBox:
		return obbIntersect(a.boxPose, a.halfExtents, o.pose, o.halfExtents), nil
	case *AnchoredBoxEndEffector:
		return obbIntersect(a.boxPose, a.halfExtents, o.boxPose, o.halfExtents), nil
	default:
		return false, incompatible(a, other)
	}
}

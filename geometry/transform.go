package geometry

// Pose is an SE(3) element stored as a (translation, unit-quaternion) pair,
// per spec: "either a homogeneous 4x4 matrix or a (translation, unit
// quaternion) pair; both are admissible if compose, inverse, interp, and
// rotate_vector are provided".
type Pose struct {
	Translation Vec3
	Rotation    Rotation
}

// IdentityPose is the no-op pose.
func IdentityPose() Pose { return Pose{Rotation: IdentityRotation()} }

// NewPose builds a pose from a translation and rotation.
func NewPose(t Vec3, r Rotation) Pose { return Pose{Translation: t, Rotation: r} }

// NewPoseFromPoint builds a pose with identity orientation at a point; this
// is the common case of describing a bare tip/tool position.
func NewPoseFromPoint(p Vec3) Pose { return Pose{Translation: p, Rotation: IdentityRotation()} }

// Compose returns the pose obtained by applying o in p's frame:
// p.Compose(o).Apply(v) == p.Apply(o.Apply(v)).
func (p Pose) Compose(o Pose) Pose {
	return Pose{
		Translation: p.Translation.Add(p.Rotation.ApplyToVector(o.Translation)),
		Rotation:    o.Rotation.Compose(p.Rotation),
	}
}

// Inverse returns the pose such that p.Compose(p.Inverse()) is identity.
func (p Pose) Inverse() Pose {
	invR := p.Rotation.Inverse()
	return Pose{
		Translation: invR.ApplyToVector(p.Translation).Scale(-1),
		Rotation:    invR,
	}
}

// ApplyToVector maps a point from p's local frame into the world frame.
func (p Pose) ApplyToVector(v Vec3) Vec3 {
	return p.Translation.Add(p.Rotation.ApplyToVector(v))
}

// Interp interpolates translation linearly and rotation via slerp, at
// s in [0,1].
func (p Pose) Interp(o Pose, s float64) Pose {
	return Pose{
		Translation: p.Translation.Lerp(o.Translation, s),
		Rotation:    p.Rotation.Interp(o.Rotation, s),
	}
}

// Equal reports structural equality within tolerance.
func (p Pose) Equal(o Pose) bool {
	return p.Translation.Equal(o.Translation) && p.Rotation.Equal(o.Rotation)
}

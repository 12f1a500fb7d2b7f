package collision

import (
	"math"

	"github.com/elektrokombinacija/swarmweld/geometry"
)

// satEpsilon guards near-parallel cross-product axes against numerical
// noise in the separating-axis test.
const satEpsilon = 1e-6

// OrientedBox is a swept oriented bounding box of half-extents
// (lx/2, ly/2, lz/2) carried by a full SE(3) pose. The exact polytope
// intersection test is the separating-axis theorem (SAT) over the box
// faces' normals and their pairwise cross products — plain arithmetic, no
// external geometry library (see DESIGN.md).
type OrientedBox struct {
	halfExtents geometry.Vec3
	pose        geometry.Pose
}

// NewOrientedBox creates a box of dimensions (lx,ly,lz) at the identity pose.
func NewOrientedBox(lx, ly, lz float64) *OrientedBox {
	return &OrientedBox{
		halfExtents: geometry.Vec3{X: lx / 2, Y: ly / 2, Z: lz / 2},
		pose:        geometry.IdentityPose(),
	}
}

func (b *OrientedBox) Kind() Kind { return KindOrientedBox }

func (b *OrientedBox) SetPose(p geometry.Pose) { b.pose = p }

func (b *OrientedBox) Pose() geometry.Pose { return b.pose }

func (b *OrientedBox) Translation() geometry.Vec3 { return b.pose.Translation }

func (b *OrientedBox) SetTranslation(v geometry.Vec3) { b.pose.Translation = v }

func (b *OrientedBox) InCollision(other Shape) (bool, error) {
	switch o := other.(type) {
	case *OrientedBox:
		return obbIntersect(b.pose, b.halfExtents, o.pose, o.halfExtents), nil
	case *AnchoredBoxEndEffector:
		return obbIntersect(b.pose, b.halfExtents, o.boxPose, o.halfExtents), nil
	default:
		return false, incompatible(b, other)
	}
}

// obbIntersect implements the SAT test between two oriented boxes given
// their world poses and half-extents, testing the 6 face normals and the 9
// pairwise cross products of their local axes (Ericson, Real-Time Collision
// Detection §4.4.1).
func obbIntersect(poseA geometry.Pose, extA geometry.Vec3, poseB geometry.Pose, extB geometry.Vec3) bool {
	ax, ay, az := poseA.Rotation.Axes()
	bx, by, bz := poseB.Rotation.Axes()
	axes := [3]geometry.Vec3{ax, ay, az}
	bxes := [3]geometry.Vec3{bx, by, bz}
	ea := [3]float64{extA.X, extA.Y, extA.Z}
	eb := [3]float64{extB.X, extB.Y, extB.Z}

	d := poseB.Translation.Sub(poseA.Translation)

	// Rotation matrix expressing B's axes in A's frame, and its absolute
	// value with a numerical-noise guard for near-parallel axes.
	var r, absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = axes[i].Dot(bxes[j])
			absR[i][j] = math.Abs(r[i][j]) + satEpsilon
		}
	}

	// Translation vector in A's frame.
	var t [3]float64
	for i := 0; i < 3; i++ {
		t[i] = d.Dot(axes[i])
	}

	// Test the 3 face normals of A.
	for i := 0; i < 3; i++ {
		ra := ea[i]
		rb := eb[0]*absR[i][0] + eb[1]*absR[i][1] + eb[2]*absR[i][2]
		if math.Abs(t[i]) > ra+rb {
			return false
		}
	}

	// Test the 3 face normals of B.
	for j := 0; j < 3; j++ {
		ra := ea[0]*absR[0][j] + ea[1]*absR[1][j] + ea[2]*absR[2][j]
		rb := eb[j]
		tProj := t[0]*r[0][j] + t[1]*r[1][j] + t[2]*r[2][j]
		if math.Abs(tProj) > ra+rb {
			return false
		}
	}

	// Test the 9 cross-product axes A_i x B_j.
	type pair struct{ i0, i1 int }
	idx := [3]pair{{1, 2}, {2, 0}, {0, 1}}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			i0, i1 := idx[i].i0, idx[i].i1
			j0, j1 := idx[j].i0, idx[j].i1

			ra := ea[i0]*absR[i1][j] + ea[i1]*absR[i0][j]
			rb := eb[j0]*absR[i][j1] + eb[j1]*absR[i][j0]
			tProj := t[i1]*r[i0][j] - t[i0]*r[i1][j]

			if math.Abs(tProj) > ra+rb {
				return false
			}
		}
	}

	return true
}

// Package geometry provides the R3 vector and SE(3) pose kernel used by
// every other swarmweld package: collision shapes, trajectories, and the
// scheduler all build on Vec3 and Pose.
package geometry

import (
	"math"

	"github.com/elektrokombinacija/swarmweld/swerr"
)

// AbsTol and RelTol are the default tolerances used by structural equality
// checks across the package (Vec3.Equal, Rotation.Equal, Pose.Equal).
const (
	AbsTol = 1e-9
	RelTol = 1e-9
)

// Vec3 is an ordered triple of reals: a point or a free vector in R3.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v*s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the inner product v.o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Lerp returns the linear interpolation v + (o-v)*s.
func (v Vec3) Lerp(o Vec3, s float64) Vec3 {
	return v.Add(o.Sub(v).Scale(s))
}

// Equal reports structural equality within AbsTol/RelTol.
func (v Vec3) Equal(o Vec3) bool {
	return closeEnough(v.X, o.X) && closeEnough(v.Y, o.Y) && closeEnough(v.Z, o.Z)
}

func closeEnough(a, b float64) bool {
	d := math.Abs(a - b)
	if d <= AbsTol {
		return true
	}
	return d <= RelTol*math.Max(math.Abs(a), math.Abs(b))
}

// UnitVector normalizes v, failing with swerr.ErrDegenerateVector when
// ‖v‖ = 0.
func UnitVector(v Vec3) (Vec3, error) {
	n := v.Norm()
	if n == 0 {
		return Vec3{}, swerr.ErrDegenerateVector
	}
	return v.Scale(1 / n), nil
}

// AngleBetween returns the angle in radians between v1 and v2, computed as
// arccos(clamp(⟨û1,û2⟩, −1, 1)).
func AngleBetween(v1, v2 Vec3) (float64, error) {
	u1, err := UnitVector(v1)
	if err != nil {
		return 0, err
	}
	u2, err := UnitVector(v2)
	if err != nil {
		return 0, err
	}
	d := u1.Dot(u2)
	if d > 1 {
		d = 1
	}
	if d < -1 {
		d = -1
	}
	return math.Acos(d), nil
}

// Distance returns ‖o-v‖.
func Distance(v, o Vec3) float64 { return v.Sub(o).Norm() }

// PathLength returns the polyline length Σ‖pᵢ₊₁−pᵢ‖.
func PathLength(path []Vec3) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += Distance(path[i], path[i+1])
	}
	return total
}

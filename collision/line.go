package collision

import (
	"math"

	"github.com/elektrokombinacija/swarmweld/geometry"
)

// segmentEpsilon is the orientation tolerance used by the 2D segment
// intersection test: touching is not colliding unless tips coincide.
const segmentEpsilon = 1e-2

// Line is a swept line segment [base, tip] (projected to the XY plane for
// the intersection test, matching the source's 2D orientation-test
// approach). base is fixed; tip is the settable reference point.
type Line struct {
	base geometry.Vec3
	tip  geometry.Vec3
}

// NewLine creates a Line anchored at base with tip initially at base.
func NewLine(base geometry.Vec3) *Line {
	return &Line{base: base, tip: base}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) SetPose(p geometry.Pose) { l.tip = p.Translation }

func (l *Line) Translation() geometry.Vec3 { return l.tip }

func (l *Line) SetTranslation(v geometry.Vec3) { l.tip = v }

// Base returns the fixed anchor point.
func (l *Line) Base() geometry.Vec3 { return l.base }

func (l *Line) InCollision(other Shape) (bool, error) {
	switch o := other.(type) {
	case *Line:
		return segmentsIntersect(l.base, l.tip, o.base, o.tip), nil
	case *LineWithDisc:
		return segmentsIntersect(l.base, l.tip, o.base, o.tip), nil
	default:
		return false, incompatible(l, other)
	}
}

// LineWithDisc is a Line whose tip additionally carries a disc of radius r:
// collision is the segment test OR ‖tipA-tipB‖ < rA+rB.
type LineWithDisc struct {
	base   geometry.Vec3
	tip    geometry.Vec3
	radius float64
}

// NewLineWithDisc creates a LineWithDisc anchored at base with the given tip disc radius.
func NewLineWithDisc(base geometry.Vec3, radius float64) *LineWithDisc {
	return &LineWithDisc{base: base, tip: base, radius: radius}
}

func (l *LineWithDisc) Kind() Kind { return KindLineWithDisc }

func (l *LineWithDisc) SetPose(p geometry.Pose) { l.tip = p.Translation }

func (l *LineWithDisc) Translation() geometry.Vec3 { return l.tip }

func (l *LineWithDisc) SetTranslation(v geometry.Vec3) { l.tip = v }

// Base returns the fixed anchor point.
func (l *LineWithDisc) Base() geometry.Vec3 { return l.base }

func (l *LineWithDisc) InCollision(other Shape) (bool, error) {
	switch o := other.(type) {
	case *Line:
		return segmentsIntersect(l.base, l.tip, o.base, o.tip), nil
	case *LineWithDisc:
		if segmentsIntersect(l.base, l.tip, o.base, o.tip) {
			return true, nil
		}
		return geometry.Distance(l.tip, o.tip) < l.radius+o.radius, nil
	default:
		return false, incompatible(l, other)
	}
}

// orientation2D returns the signed area of (a,b,c) projected to XY: >0 for
// counter-clockwise, <0 clockwise, ~0 collinear (within segmentEpsilon).
func orientation2D(a, b, c geometry.Vec3) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment2D(a, b, p geometry.Vec3) bool {
	return p.X >= math.Min(a.X, b.X)-segmentEpsilon && p.X <= math.Max(a.X, b.X)+segmentEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-segmentEpsilon && p.Y <= math.Max(a.Y, b.Y)+segmentEpsilon
}

// segmentsIntersect tests [a1,a2] vs [b1,b2] using signed orientation tests
// with tolerance segmentEpsilon, including the collinear-overlap special
// case.
func segmentsIntersect(a1, a2, b1, b2 geometry.Vec3) bool {
	o1 := orientation2D(a1, a2, b1)
	o2 := orientation2D(a1, a2, b2)
	o3 := orientation2D(b1, b2, a1)
	o4 := orientation2D(b1, b2, a2)

	sign := func(v float64) int {
		switch {
		case v > segmentEpsilon:
			return 1
		case v < -segmentEpsilon:
			return -1
		default:
			return 0
		}
	}

	s1, s2, s3, s4 := sign(o1), sign(o2), sign(o3), sign(o4)

	if s1 != s2 && s3 != s4 {
		return true
	}

	// Collinear overlap special cases.
	if s1 == 0 && onSegment2D(a1, a2, b1) {
		return true
	}
	if s2 == 0 && onSegment2D(a1, a2, b2) {
		return true
	}
	if s3 == 0 && onSegment2D(b1, b2, a1) {
		return true
	}
	if s4 == 0 && onSegment2D(b1, b2, a2) {
		return true
	}

	return false
}

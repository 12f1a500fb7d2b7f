// Package trajectory implements the piecewise-linear, time-parameterized
// path algebra: construction at constant velocity, time-indexed sampling,
// slicing, concatenation, and concurrent-interval pairing (spec.md C3).
package trajectory

import (
	"fmt"
	"sort"

	"github.com/elektrokombinacija/swarmweld/geometry"
)

// Point is a single (data, time) sample. Ordering is by Time only (the
// source's `<` comparator was occasionally seen comparing data instead of
// time; this package fixes that: ordering is always by time).
type Point struct {
	Data geometry.Vec3
	Time float64
}

// Less reports whether p sorts before o, by time.
func (p Point) Less(o Point) bool { return p.Time < o.Time }

// Trajectory is a list of Points in strictly non-decreasing time order.
type Trajectory struct {
	points []Point
}

// New wraps points as a Trajectory. Points must already be in
// non-decreasing time order; callers that build a trajectory from
// untrusted input should use FromConstVelPath instead.
func New(points []Point) Trajectory {
	return Trajectory{points: points}
}

// Empty returns a trajectory with no points.
func Empty() Trajectory { return Trajectory{} }

// FromConstVelPath builds a trajectory visiting path at constant speed v,
// starting at t0: point[i].time = t0 + (Σ_{j<i} ‖p[j+1]-p[j]‖) / v.
func FromConstVelPath(path []geometry.Vec3, v float64, t0 float64) Trajectory {
	if len(path) == 0 {
		return Empty()
	}
	pts := make([]Point, len(path))
	acc := 0.0
	pts[0] = Point{Data: path[0], Time: t0}
	for i := 1; i < len(path); i++ {
		acc += geometry.Distance(path[i-1], path[i])
		pts[i] = Point{Data: path[i], Time: t0 + acc/v}
	}
	return Trajectory{points: pts}
}

// Points returns the underlying points (read-only use expected; callers
// must not mutate the returned slice in place).
func (t Trajectory) Points() []Point { return t.points }

// Len returns the number of points.
func (t Trajectory) Len() int { return len(t.points) }

// IsEmpty reports whether the trajectory has no points.
func (t Trajectory) IsEmpty() bool { return len(t.points) == 0 }

// StartTime returns points[0].Time.
func (t Trajectory) StartTime() float64 { return t.points[0].Time }

// EndTime returns points[len-1].Time.
func (t Trajectory) EndTime() float64 { return t.points[len(t.points)-1].Time }

// Elapsed returns EndTime() - StartTime(), which is always >= 0.
func (t Trajectory) Elapsed() float64 {
	if t.IsEmpty() {
		return 0
	}
	return t.EndTime() - t.StartTime()
}

// Distance returns Σ‖p[i+1].Data - p[i].Data‖.
func (t Trajectory) Distance() float64 {
	total := 0.0
	for i := 0; i+1 < len(t.points); i++ {
		total += geometry.Distance(t.points[i].Data, t.points[i+1].Data)
	}
	return total
}

// AvgSpeed returns Distance()/Elapsed(), or 0 if Elapsed() is 0.
func (t Trajectory) AvgSpeed() float64 {
	e := t.Elapsed()
	if e == 0 {
		return 0
	}
	return t.Distance() / e
}

// Sample returns the linear interpolation of the bracketing segment at time
// tm. Sampling is inclusive at both endpoints (spec.md §9 fixes this).
// Returns ok=false outside [StartTime, EndTime].
func (t Trajectory) Sample(tm float64) (geometry.Vec3, bool) {
	if t.IsEmpty() {
		return geometry.Vec3{}, false
	}
	if tm < t.StartTime() || tm > t.EndTime() {
		return geometry.Vec3{}, false
	}
	// Binary search for the first point with Time >= tm.
	idx := sort.Search(len(t.points), func(i int) bool {
		return t.points[i].Time >= tm
	})
	if idx < len(t.points) && t.points[idx].Time == tm {
		return t.points[idx].Data, true
	}
	// idx is the index of the first point strictly after tm; idx-1 brackets.
	prev := t.points[idx-1]
	next := t.points[idx]
	span := next.Time - prev.Time
	if span == 0 {
		return prev.Data, true
	}
	s := (tm - prev.Time) / span
	return prev.Data.Lerp(next.Data, s), true
}

// Slice returns the sub-trajectory covering [t0,t1]. Endpoints are
// interpolated values (unless already present); interior points with
// strictly-between times are kept verbatim. Disjoint windows yield an empty
// trajectory; t0==t1 yields a single sampled point.
func (t Trajectory) Slice(t0, t1 float64) Trajectory {
	if t.IsEmpty() {
		return Empty()
	}
	lo, hi := t0, t1
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < t.StartTime() || lo > t.EndTime() {
		return Empty()
	}
	lo = max(lo, t.StartTime())
	hi = min(hi, t.EndTime())

	if lo == hi {
		v, ok := t.Sample(lo)
		if !ok {
			return Empty()
		}
		return New([]Point{{Data: v, Time: lo}})
	}

	var out []Point
	startV, _ := t.Sample(lo)
	out = append(out, Point{Data: startV, Time: lo})
	for _, p := range t.points {
		if p.Time > lo && p.Time < hi {
			out = append(out, p)
		}
	}
	endV, _ := t.Sample(hi)
	if out[len(out)-1].Time != hi {
		out = append(out, Point{Data: endV, Time: hi})
	}
	return New(out)
}

// CanConcat reports whether t can be followed by o: t.EndTime() <= o.StartTime().
func (t Trajectory) CanConcat(o Trajectory) bool {
	if t.IsEmpty() || o.IsEmpty() {
		return true
	}
	return t.EndTime() <= o.StartTime()
}

// Concat returns t followed by o. A duplicate boundary point (equal time
// and, within tolerance, equal data) is collapsed to one.
func (t Trajectory) Concat(o Trajectory) (Trajectory, error) {
	if t.IsEmpty() {
		return o, nil
	}
	if o.IsEmpty() {
		return t, nil
	}
	if !t.CanConcat(o) {
		return Trajectory{}, fmt.Errorf(
			"trajectory: cannot concat, end %.6f > start %.6f", t.EndTime(), o.StartTime())
	}
	out := make([]Point, 0, len(t.points)+len(o.points))
	out = append(out, t.points...)
	rest := o.points
	last := out[len(out)-1]
	if last.Time == rest[0].Time && last.Data.Equal(rest[0].Data) {
		rest = rest[1:]
	}
	out = append(out, rest...)
	return New(out), nil
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

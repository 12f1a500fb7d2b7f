// Package toolpath defines the Contour/Toolpath data the scheduler consumes.
// Producing contours — G-code parsing, translate/rotate/scale/split/relabel
// preprocessing — is explicitly out of scope (spec.md §1); this package only
// defines the shape of the data and ships one trivial in-memory source.
package toolpath

import "github.com/elektrokombinacija/swarmweld/geometry"

// ToolID is an opaque, hashable tool/material capability tag.
type ToolID string

// Contour is an ordered polyline (>=2 points) tagged with a tool id; the
// atomic unit of execution. ID is caller-supplied (spec.md §9: contour
// identity is never a global counter) — typically the contour's position
// in the toolpath, or a user-provided id.
type Contour struct {
	ID   int
	Path []geometry.Vec3
	Tool ToolID
}

// PathLength returns Σ‖pᵢ₊₁−pᵢ‖ over the contour's path.
func (c Contour) PathLength() float64 { return geometry.PathLength(c.Path) }

// NSegments returns len(path)-1, or 0 for an empty path.
func (c Contour) NSegments() int {
	if len(c.Path) == 0 {
		return 0
	}
	return len(c.Path) - 1
}

// Source produces the ordered contours of a toolpath. A G-code reader or
// any other preprocessing pipeline is one such source; the scheduler only
// ever calls Contours.
type Source interface {
	Contours() []Contour
}

// Static is the in-memory Source: a fixed, pre-built contour list. It is the
// only Source this module ships — callers that need to parse a real
// toolpath format bring their own.
type Static struct {
	contours []Contour
}

// NewStatic wraps a fixed contour list as a Source.
func NewStatic(contours []Contour) Static { return Static{contours: contours} }

// Contours implements Source.
func (s Static) Contours() []Contour { return s.contours }

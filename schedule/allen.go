package schedule

// Relation names one of Allen's 13 mutually exclusive relations between two
// closed intervals [start,end].
type Relation int

const (
	RelationPrecedes Relation = iota
	RelationMeets
	RelationOverlaps
	RelationStarts
	RelationDuring
	RelationFinishes
	RelationEquals
	RelationFinishedBy
	RelationContains
	RelationStartedBy
	RelationOverlappedBy
	RelationMetBy
	RelationPrecededBy
)

func (r Relation) String() string {
	switch r {
	case RelationPrecedes:
		return "precedes"
	case RelationMeets:
		return "meets"
	case RelationOverlaps:
		return "overlaps"
	case RelationStarts:
		return "starts"
	case RelationDuring:
		return "during"
	case RelationFinishes:
		return "finishes"
	case RelationEquals:
		return "equals"
	case RelationFinishedBy:
		return "finished_by"
	case RelationContains:
		return "contains"
	case RelationStartedBy:
		return "started_by"
	case RelationOverlappedBy:
		return "overlapped_by"
	case RelationMetBy:
		return "met_by"
	case RelationPrecededBy:
		return "preceded_by"
	default:
		return "unknown"
	}
}

// Relate returns the single Allen relation that holds between a and b's
// closed intervals [Start,End]. Every ordered pair of non-empty intervals
// satisfies exactly one of the 13 relations. Cases are ordered so each
// later case may assume every earlier case's condition is false.
func Relate(a, b Event) Relation {
	as, ae := a.Start(), a.End()
	bs, be := b.Start(), b.End()

	switch {
	case ae < bs:
		return RelationPrecedes
	case ae == bs:
		return RelationMeets
	case as > be:
		return RelationPrecededBy
	case as == be:
		return RelationMetBy
	case as == bs && ae == be:
		return RelationEquals
	case as == bs && ae < be:
		return RelationStarts
	case as == bs && ae > be:
		return RelationStartedBy
	case ae == be && as > bs:
		return RelationFinishes
	case ae == be && as < bs:
		return RelationFinishedBy
	case as > bs && ae < be:
		return RelationDuring
	case as < bs && ae > be:
		return RelationContains
	case as < bs && ae < be:
		return RelationOverlaps
	case as > bs && ae > be:
		return RelationOverlappedBy
	default:
		// Unreachable: the 13 cases above partition every ordering of
		// (as,ae,bs,be) consistent with as<=ae and bs<=be.
		return RelationEquals
	}
}

// Precedes reports whether Relate(a,b) == RelationPrecedes.
func Precedes(a, b Event) bool { return Relate(a, b) == RelationPrecedes }

// Meets reports whether Relate(a,b) == RelationMeets.
func Meets(a, b Event) bool { return Relate(a, b) == RelationMeets }

// Overlaps reports whether Relate(a,b) == RelationOverlaps.
func Overlaps(a, b Event) bool { return Relate(a, b) == RelationOverlaps }

// Starts reports whether Relate(a,b) == RelationStarts.
func Starts(a, b Event) bool { return Relate(a, b) == RelationStarts }

// During reports whether Relate(a,b) == RelationDuring.
func During(a, b Event) bool { return Relate(a, b) == RelationDuring }

// Finishes reports whether Relate(a,b) == RelationFinishes.
func Finishes(a, b Event) bool { return Relate(a, b) == RelationFinishes }

// Equals reports whether Relate(a,b) == RelationEquals.
func Equals(a, b Event) bool { return Relate(a, b) == RelationEquals }

// FinishedBy reports whether Relate(a,b) == RelationFinishedBy.
func FinishedBy(a, b Event) bool { return Relate(a, b) == RelationFinishedBy }

// Contains reports whether Relate(a,b) == RelationContains.
func Contains(a, b Event) bool { return Relate(a, b) == RelationContains }

// StartedBy reports whether Relate(a,b) == RelationStartedBy.
func StartedBy(a, b Event) bool { return Relate(a, b) == RelationStartedBy }

// OverlappedBy reports whether Relate(a,b) == RelationOverlappedBy.
func OverlappedBy(a, b Event) bool { return Relate(a, b) == RelationOverlappedBy }

// MetBy reports whether Relate(a,b) == RelationMetBy.
func MetBy(a, b Event) bool { return Relate(a, b) == RelationMetBy }

// PrecededBy reports whether Relate(a,b) == RelationPrecededBy.
func PrecededBy(a, b Event) bool { return Relate(a, b) == RelationPrecededBy }

// overlapsWindow reports whether event e overlaps the closed window
// [t0,t1] under any of the 13 relations except strict precedes/preceded_by
// — i.e. whether e and the window share at least one instant.
func overlapsWindow(e Event, t0, t1 float64) bool {
	return e.Start() <= t1 && e.End() >= t0
}

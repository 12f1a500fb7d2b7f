package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swarmweld/geometry"
	"github.com/elektrokombinacija/swarmweld/schedule"
)

func ev(start, end float64) schedule.Event {
	if end <= start {
		return schedule.NewMove(start, []geometry.Vec3{{}}, 1.0)
	}
	return schedule.NewMove(start, []geometry.Vec3{{}, {X: end - start}}, 1.0)
}

// TestAllen13Exhaustiveness checks property 7: every ordered pair of
// non-empty intervals satisfies exactly one of the 13 relations.
func TestAllen13Exhaustiveness(t *testing.T) {
	bounds := []float64{0, 1, 2, 3, 4}
	var intervals []schedule.Event
	for _, s := range bounds {
		for _, e := range bounds {
			if e >= s {
				intervals = append(intervals, ev(s, e))
			}
		}
	}

	all := []func(a, b schedule.Event) bool{
		schedule.Precedes, schedule.Meets, schedule.Overlaps, schedule.Starts,
		schedule.During, schedule.Finishes, schedule.Equals, schedule.FinishedBy,
		schedule.Contains, schedule.StartedBy, schedule.OverlappedBy,
		schedule.MetBy, schedule.PrecededBy,
	}

	for _, a := range intervals {
		for _, b := range intervals {
			matches := 0
			for _, f := range all {
				if f(a, b) {
					matches++
				}
			}
			require.Equal(t, 1, matches, "a=[%v,%v] b=[%v,%v] matched %d relations",
				a.Start(), a.End(), b.Start(), b.End(), matches)
		}
	}
}

func TestRelateMatchesPredicate(t *testing.T) {
	a := ev(0, 2)
	b := ev(2, 4)
	require.Equal(t, schedule.RelationMeets, schedule.Relate(a, b))
	require.True(t, schedule.Meets(a, b))
}

package trajectory

// Pair is a pair of trajectory slices covering the same concurrent time
// window, one drawn from each input list.
type Pair struct {
	A, B Trajectory
}

// ConcurrentIntervals merges two sorted, internally non-overlapping lists of
// trajectories and produces the sequence of pairs (a.Slice(s,e), b.Slice(s,e))
// over the intersection of their time supports. O(|a|+|b|) merge sweep.
func ConcurrentIntervals(a, b []Trajectory) []Pair {
	var out []Pair
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ta, tb := a[i], b[j]
		lo := ta.StartTime()
		if tb.StartTime() > lo {
			lo = tb.StartTime()
		}
		hi := ta.EndTime()
		if tb.EndTime() < hi {
			hi = tb.EndTime()
		}
		if lo <= hi {
			out = append(out, Pair{A: ta.Slice(lo, hi), B: tb.Slice(lo, hi)})
		}
		if ta.EndTime() < tb.EndTime() {
			i++
		} else if tb.EndTime() < ta.EndTime() {
			j++
		} else {
			i++
			j++
		}
	}
	return out
}

package grid

import "github.com/Faultbox/gridkit/pkg/math"

// nudge breaks ties when a sample point lies exactly on a cell boundary.
var nudge = math.Vec2{X: 1e-4, Y: 2e-4}

// Range returns every cell within radius of center, center first, in
// breadth-first order. A negative radius yields only the center.
func Range[C Coordinate[C]](center C, radius int) []C {
	out := []C{center}
	if radius <= 0 {
		return out
	}
	seen := map[C]struct{}{center: {}}
	for i := 0; i < len(out); i++ {
		for _, n := range out[i].Neighbors() {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			if center.Distance(n) <= radius {
				out = append(out, n)
			}
		}
	}
	return out
}

// Ring returns the cells at exactly radius from center.
func Ring[C Coordinate[C]](center C, radius int) []C {
	if radius <= 0 {
		return []C{center}
	}
	var ring []C
	for _, c := range Range(center, radius) {
		if center.Distance(c) == radius {
			ring = append(ring, c)
		}
	}
	return ring
}

// Walk moves from start toward target in the planar embedding, calling visit
// for every cell entered (start excluded). The segment is sampled samples
// times and each sample is reached by greedy neighbor descent, so consecutive
// visited cells are always neighbors. Walk stops early when visit returns false.
func Walk[C Planar[C]](start C, target math.Vec2, samples int, visit func(C) bool) {
	if samples < 1 {
		samples = 1
	}
	from := start.Center().Add(nudge)
	to := target.Add(nudge)
	cur := start
	for i := 1; i <= samples; i++ {
		p := from.Lerp(to, float32(i)/float32(samples))
		for {
			next, ok := closerNeighbor(cur, p)
			if !ok {
				break
			}
			cur = next
			if !visit(cur) {
				return
			}
		}
	}
}

// Line returns a connected chain of cells from a to b inclusive.
func Line[C Planar[C]](a, b C) []C {
	line := []C{a}
	if a == b {
		return line
	}
	Walk(a, b.Center(), 2*a.Distance(b), func(c C) bool {
		line = append(line, c)
		return c != b
	})
	if line[len(line)-1] != b {
		line = append(line, b)
	}
	return line
}

func closerNeighbor[C Planar[C]](c C, p math.Vec2) (C, bool) {
	best := c
	bestD := c.Center().Sub(p).LengthSq()
	found := false
	for _, n := range c.Neighbors() {
		if d := n.Center().Sub(p).LengthSq(); d < bestD-1e-6 {
			best, bestD, found = n, d, true
		}
	}
	return best, found
}

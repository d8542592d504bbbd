// Package grid defines the coordinate algebra shared by every grid topology.
//
// A topology is a concrete coordinate type (hex.Axial, square.Coord, tri.Coord,
// iso.Coord) instantiated with marker type parameters. Algorithms in pathfind,
// fov and flowfield are written once against the constraints below.
package grid

import "github.com/Faultbox/gridkit/pkg/math"

// Coordinate is the minimal algebra needed by the search algorithms.
//
// Distance must be symmetric and zero only for equal coordinates. It must
// equal the minimum hop count through Neighbors so it can serve as an
// admissible A* heuristic.
//
// Neighbors returns the full, fixed-size neighbor set in a deterministic
// order. It never filters by bounds; callers do that through predicates.
type Coordinate[C any] interface {
	comparable
	Distance(other C) int
	Neighbors() []C
}

// Planar is a Coordinate with a position in a unit planar embedding.
type Planar[C any] interface {
	Coordinate[C]
	Center() math.Vec2
}

// Indexed is a Coordinate that maps onto a dense (column, row) pair.
type Indexed[C any] interface {
	Coordinate[C]
	Tuple() (int, int)
}

// Cell is the full constraint satisfied by every topology in this module.
type Cell[C any] interface {
	Coordinate[C]
	Center() math.Vec2
	Tuple() (int, int)
}

// Lattice is implemented by topologies whose cells form an axis-aligned
// integer lattice. It enables octant-based algorithms.
type Lattice[C any] interface {
	Translate(dx, dy int) C
}

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

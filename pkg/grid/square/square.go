// Package square implements square grid coordinates with 4- or 8-way
// connectivity chosen by a marker type.
package square

import (
	"fmt"

	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/math"
)

// Connectivity is the closed set of square neighborhoods.
type Connectivity interface {
	distance(dx, dy int) int
	offsets() [][2]int
	name() string
}

// FourConnected moves orthogonally only; distance is Manhattan.
type FourConnected struct{}

// EightConnected also moves diagonally; distance is Chebyshev.
type EightConnected struct{}

var (
	orthogonal = [][2]int{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}
	allEight   = [][2]int{
		{1, 0}, {-1, 0}, {0, -1}, {0, 1},
		{1, -1}, {-1, -1}, {1, 1}, {-1, 1},
	}
)

func (FourConnected) distance(dx, dy int) int { return grid.Abs(dx) + grid.Abs(dy) }
func (FourConnected) offsets() [][2]int       { return orthogonal }
func (FourConnected) name() string            { return "four" }

func (EightConnected) distance(dx, dy int) int { return max(grid.Abs(dx), grid.Abs(dy)) }
func (EightConnected) offsets() [][2]int       { return allEight }
func (EightConnected) name() string            { return "eight" }

// Coord is a square cell (x, y). y grows downward.
type Coord[K Connectivity] struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Four- and eight-connected aliases.
type (
	Four  = Coord[FourConnected]
	Eight = Coord[EightConnected]
)

// At returns the coordinate (x, y).
func At[K Connectivity](x, y int) Coord[K] {
	return Coord[K]{X: x, Y: y}
}

// Recast relabels c under another connectivity. Cells are identical, only
// the neighborhood changes.
func Recast[To, From Connectivity](c Coord[From]) Coord[To] {
	return Coord[To]{X: c.X, Y: c.Y}
}

// Distance is Manhattan for FourConnected and Chebyshev for EightConnected.
func (c Coord[K]) Distance(other Coord[K]) int {
	var k K
	return k.distance(c.X-other.X, c.Y-other.Y)
}

// Neighbors returns right, left, up, down, then for EightConnected the
// diagonals up-right, up-left, down-right, down-left.
func (c Coord[K]) Neighbors() []Coord[K] {
	var k K
	offs := k.offsets()
	out := make([]Coord[K], len(offs))
	for i, d := range offs {
		out[i] = Coord[K]{X: c.X + d[0], Y: c.Y + d[1]}
	}
	return out
}

// Translate returns c shifted by (dx, dy).
func (c Coord[K]) Translate(dx, dy int) Coord[K] {
	return Coord[K]{X: c.X + dx, Y: c.Y + dy}
}

// Add returns the component-wise sum.
func (c Coord[K]) Add(o Coord[K]) Coord[K] {
	return Coord[K]{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the component-wise difference.
func (c Coord[K]) Sub(o Coord[K]) Coord[K] {
	return Coord[K]{X: c.X - o.X, Y: c.Y - o.Y}
}

// Scale multiplies both components by k.
func (c Coord[K]) Scale(n int) Coord[K] {
	return Coord[K]{X: c.X * n, Y: c.Y * n}
}

func (c Coord[K]) Tuple() (int, int) { return c.X, c.Y }

func (c Coord[K]) Array() [2]int { return [2]int{c.X, c.Y} }

// Center returns the cell center with unit spacing.
func (c Coord[K]) Center() math.Vec2 {
	return math.Vec2{X: float32(c.X), Y: float32(c.Y)}
}

func (c Coord[K]) String() string {
	var k K
	return fmt.Sprintf("Square[%s](%d, %d)", k.name(), c.X, c.Y)
}

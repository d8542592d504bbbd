// Package tri implements triangular grid coordinates.
//
// Triangle (x, y) lives in row y (growing downward) and points up when x+y
// is even. Adjacent triangles in a row alternate orientation and overlap by
// half a side, so column x is half a side wide.
package tri

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/math"
)

// Connectivity is the closed set of triangle neighborhoods.
type Connectivity interface {
	name() string
}

// TwelveConnected treats every triangle sharing an edge or a vertex as a
// neighbor.
type TwelveConnected struct{}

func (TwelveConnected) name() string { return "twelve" }

var height = gomath.Sqrt(3) / 2

// Edge neighbors come first in both tables.
var (
	upOffsets = [12][2]int{
		{-1, 0}, {1, 0}, {0, 1},
		{-2, 0}, {2, 0},
		{-1, -1}, {0, -1}, {1, -1},
		{-2, 1}, {-1, 1}, {1, 1}, {2, 1},
	}
	downOffsets = [12][2]int{
		{-1, 0}, {1, 0}, {0, -1},
		{-2, 0}, {2, 0},
		{-2, -1}, {-1, -1}, {1, -1}, {2, -1},
		{-1, 1}, {0, 1}, {1, 1},
	}
)

// Coord is a triangle (x, y).
type Coord[K Connectivity] struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Twelve is the vertex-connected triangle grid.
type Twelve = Coord[TwelveConnected]

// At returns the triangle (x, y).
func At[K Connectivity](x, y int) Coord[K] {
	return Coord[K]{X: x, Y: y}
}

// Up reports whether the triangle points up.
func (c Coord[K]) Up() bool {
	return (c.X+c.Y)&1 == 0
}

func (c Coord[K]) offsets() *[12][2]int {
	if c.Up() {
		return &upOffsets
	}
	return &downOffsets
}

// Neighbors returns the 3 edge neighbors followed by the 9 triangles that
// share only a vertex.
func (c Coord[K]) Neighbors() []Coord[K] {
	offs := c.offsets()
	out := make([]Coord[K], len(offs))
	for i, d := range offs {
		out[i] = Coord[K]{X: c.X + d[0], Y: c.Y + d[1]}
	}
	return out
}

// EdgeNeighbors returns the 3 triangles sharing an edge with c.
func (c Coord[K]) EdgeNeighbors() []Coord[K] {
	return c.Neighbors()[:3]
}

// vertices returns the corners of c in doubled lattice coordinates (h, j),
// where h counts half sides and j counts rows.
func (c Coord[K]) vertices() [3][2]int {
	if c.Up() {
		return [3][2]int{{c.X, c.Y}, {c.X - 1, c.Y + 1}, {c.X + 1, c.Y + 1}}
	}
	return [3][2]int{{c.X - 1, c.Y}, {c.X + 1, c.Y}, {c.X, c.Y + 1}}
}

func vertexDistance(a, b [2]int) int {
	dh := grid.Abs(a[0] - b[0])
	dj := grid.Abs(a[1] - b[1])
	return dj + max(0, (dh-dj)/2)
}

// Distance returns the minimum number of neighbor steps between c and
// other. Two triangles are one step apart when they share a vertex, so the
// distance is one more than the shortest vertex-to-vertex walk.
func (c Coord[K]) Distance(other Coord[K]) int {
	if c == other {
		return 0
	}
	best := gomath.MaxInt
	for _, va := range c.vertices() {
		for _, vb := range other.vertices() {
			best = min(best, vertexDistance(va, vb))
		}
	}
	return best + 1
}

// Add returns the component-wise sum. The result keeps the orientation
// rule of its own position, not of either operand.
func (c Coord[K]) Add(o Coord[K]) Coord[K] {
	return Coord[K]{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the component-wise difference.
func (c Coord[K]) Sub(o Coord[K]) Coord[K] {
	return Coord[K]{X: c.X - o.X, Y: c.Y - o.Y}
}

// Scale multiplies both components by n.
func (c Coord[K]) Scale(n int) Coord[K] {
	return Coord[K]{X: c.X * n, Y: c.Y * n}
}

func (c Coord[K]) Tuple() (int, int) { return c.X, c.Y }

func (c Coord[K]) Array() [2]int { return [2]int{c.X, c.Y} }

// Center returns the centroid for triangles of side 1.
func (c Coord[K]) Center() math.Vec2 {
	y := float64(c.Y) * height
	if c.Up() {
		y += 2 * height / 3
	} else {
		y += height / 3
	}
	return math.Vec2{X: float32(c.X) / 2, Y: float32(y)}
}

func (c Coord[K]) String() string {
	var k K
	dir := "down"
	if c.Up() {
		dir = "up"
	}
	return fmt.Sprintf("Tri[%s](%d, %d %s)", k.name(), c.X, c.Y, dir)
}

// Package iso implements isometric grid coordinates. Cells are logical
// square cells with orthogonal adjacency; only the screen projection differs.
package iso

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/math"
)

// Projection is the closed set of isometric projections.
type Projection interface {
	toScreen(x, y int, tile float32) math.Vec2
	fromScreen(p math.Vec2, tile float32) (x, y int)
	name() string
}

// Diamond is the standard 2:1 diamond projection.
type Diamond struct{}

func (Diamond) toScreen(x, y int, tile float32) math.Vec2 {
	return math.Vec2{
		X: float32(x-y) * tile / 2,
		Y: float32(x+y) * tile / 4,
	}
}

func (Diamond) fromScreen(p math.Vec2, tile float32) (int, int) {
	xn := float64(p.X) / float64(tile/2)
	yn := float64(p.Y) / float64(tile/4)
	return int(gomath.Round((xn + yn) / 2)), int(gomath.Round((yn - xn) / 2))
}

func (Diamond) name() string { return "diamond" }

// Coord is an isometric cell (x, y) in logical grid space.
type Coord[P Projection] struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// DiamondCoord is the diamond-projected instantiation.
type DiamondCoord = Coord[Diamond]

// At returns the cell (x, y).
func At[P Projection](x, y int) Coord[P] {
	return Coord[P]{X: x, Y: y}
}

// Distance is Manhattan distance in logical space.
func (c Coord[P]) Distance(other Coord[P]) int {
	return grid.Abs(c.X-other.X) + grid.Abs(c.Y-other.Y)
}

// Neighbors returns right, left, (x, y+1), (x, y-1).
func (c Coord[P]) Neighbors() []Coord[P] {
	return []Coord[P]{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

// Translate returns c shifted by (dx, dy) in logical space.
func (c Coord[P]) Translate(dx, dy int) Coord[P] {
	return Coord[P]{X: c.X + dx, Y: c.Y + dy}
}

func (c Coord[P]) Add(o Coord[P]) Coord[P] { return Coord[P]{X: c.X + o.X, Y: c.Y + o.Y} }
func (c Coord[P]) Sub(o Coord[P]) Coord[P] { return Coord[P]{X: c.X - o.X, Y: c.Y - o.Y} }
func (c Coord[P]) Scale(n int) Coord[P]    { return Coord[P]{X: c.X * n, Y: c.Y * n} }

func (c Coord[P]) Tuple() (int, int) { return c.X, c.Y }

func (c Coord[P]) Array() [2]int { return [2]int{c.X, c.Y} }

// Center returns the logical cell center. Line of sight is computed in
// logical space, so this is not the screen position.
func (c Coord[P]) Center() math.Vec2 {
	return math.Vec2{X: float32(c.X), Y: float32(c.Y)}
}

// ToScreen projects the cell to screen pixels for tiles tile pixels wide.
func (c Coord[P]) ToScreen(tile float32) math.Vec2 {
	var p P
	return p.toScreen(c.X, c.Y, tile)
}

// FromScreen returns the cell whose projected center is nearest to pos.
func FromScreen[P Projection](pos math.Vec2, tile float32) Coord[P] {
	var p P
	x, y := p.fromScreen(pos, tile)
	return Coord[P]{X: x, Y: y}
}

func (c Coord[P]) String() string {
	var p P
	return fmt.Sprintf("Iso[%s](%d, %d)", p.name(), c.X, c.Y)
}

// Package hex implements hexagonal grid coordinates in axial and offset form.
//
// Orientation (Pointy, Flat) and offset parity (Odd, Even) are marker types
// chosen at instantiation, so Axial[Pointy] and Axial[Flat] cannot be mixed.
package hex

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/math"
)

var sqrt3 = gomath.Sqrt(3)

// Directions lists the axial neighbor offsets in Neighbors order:
// E, NE, NW, W, SW, SE for pointy hexes.
var Directions = [6][2]int{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// Axial is a hex coordinate (q, r); the third cube component is s = -q - r.
type Axial[O Orientation] struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Pointy and flat aliases for the common instantiations.
type (
	PointyAxial = Axial[Pointy]
	FlatAxial   = Axial[Flat]
)

// At returns the axial coordinate (q, r).
func At[O Orientation](q, r int) Axial[O] {
	return Axial[O]{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (a Axial[O]) S() int {
	return -a.Q - a.R
}

// Distance returns the hex step count between a and b.
func (a Axial[O]) Distance(b Axial[O]) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (grid.Abs(dq) + grid.Abs(dr) + grid.Abs(dq+dr)) / 2
}

// Neighbors returns the 6 adjacent hexes in Directions order.
func (a Axial[O]) Neighbors() []Axial[O] {
	out := make([]Axial[O], len(Directions))
	for i, d := range Directions {
		out[i] = Axial[O]{Q: a.Q + d[0], R: a.R + d[1]}
	}
	return out
}

// Neighbor returns the adjacent hex in direction dir (0-5, wrapping).
func (a Axial[O]) Neighbor(dir int) Axial[O] {
	d := Directions[((dir%6)+6)%6]
	return Axial[O]{Q: a.Q + d[0], R: a.R + d[1]}
}

// Add returns the component-wise sum.
func (a Axial[O]) Add(b Axial[O]) Axial[O] {
	return Axial[O]{Q: a.Q + b.Q, R: a.R + b.R}
}

// Sub returns the component-wise difference.
func (a Axial[O]) Sub(b Axial[O]) Axial[O] {
	return Axial[O]{Q: a.Q - b.Q, R: a.R - b.R}
}

// Scale multiplies both components by k.
func (a Axial[O]) Scale(k int) Axial[O] {
	return Axial[O]{Q: a.Q * k, R: a.R * k}
}

// Tuple returns (q, r).
func (a Axial[O]) Tuple() (int, int) {
	return a.Q, a.R
}

// Array returns [q, r].
func (a Axial[O]) Array() [2]int {
	return [2]int{a.Q, a.R}
}

// Center returns the hex center for hexes of circumradius 1.
func (a Axial[O]) Center() math.Vec2 {
	var o O
	return o.center(a.Q, a.R)
}

// Pixel returns the hex center for hexes of circumradius size.
func (a Axial[O]) Pixel(size float32) math.Vec2 {
	return a.Center().Scale(size)
}

func (a Axial[O]) String() string {
	var o O
	return fmt.Sprintf("Axial[%s](%d, %d)", o.name(), a.Q, a.R)
}

// FromPixel returns the hex containing p for hexes of circumradius size.
func FromPixel[O Orientation](p math.Vec2, size float32) Axial[O] {
	var o O
	fq, fr := o.fractional(float64(p.X)/float64(size), float64(p.Y)/float64(size))
	q, r := round(fq, fr)
	return Axial[O]{Q: q, R: r}
}

// round snaps fractional axial coordinates to the nearest hex by rounding
// all three cube components and fixing the one with the largest error.
func round(q, r float64) (int, int) {
	s := -q - r
	rq := gomath.Round(q)
	rr := gomath.Round(r)
	rs := gomath.Round(s)

	dq := gomath.Abs(rq - q)
	dr := gomath.Abs(rr - r)
	ds := gomath.Abs(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}
	return int(rq), int(rr)
}

package hex

import "github.com/Faultbox/gridkit/pkg/math"

// Orientation is the closed set of hex orientations: Pointy and Flat.
type Orientation interface {
	center(q, r int) math.Vec2
	fractional(x, y float64) (q, r float64)
	toOffset(q, r, sign int) (col, row int)
	fromOffset(col, row, sign int) (q, r int)
	name() string
}

// Pointy marks pointy-topped hexes; offset layouts shift alternate rows.
type Pointy struct{}

// Flat marks flat-topped hexes; offset layouts shift alternate columns.
type Flat struct{}

func (Pointy) center(q, r int) math.Vec2 {
	return math.Vec2{
		X: float32(sqrt3 * (float64(q) + float64(r)/2)),
		Y: float32(1.5 * float64(r)),
	}
}

func (Pointy) fractional(x, y float64) (float64, float64) {
	return sqrt3/3*x - y/3, 2.0 / 3.0 * y
}

func (Pointy) toOffset(q, r, sign int) (int, int) {
	return q + (r+sign*(r&1))/2, r
}

func (Pointy) fromOffset(col, row, sign int) (int, int) {
	return col - (row+sign*(row&1))/2, row
}

func (Pointy) name() string { return "pointy" }

func (Flat) center(q, r int) math.Vec2 {
	return math.Vec2{
		X: float32(1.5 * float64(q)),
		Y: float32(sqrt3 * (float64(r) + float64(q)/2)),
	}
}

func (Flat) fractional(x, y float64) (float64, float64) {
	return 2.0 / 3.0 * x, -x/3 + sqrt3/3*y
}

func (Flat) toOffset(q, r, sign int) (int, int) {
	return q, r + (q+sign*(q&1))/2
}

func (Flat) fromOffset(col, row, sign int) (int, int) {
	return col, row - (col+sign*(col&1))/2
}

func (Flat) name() string { return "flat" }

// Parity is the closed set of offset layouts: Odd and Even.
type Parity interface {
	sign() int
	name() string
}

// Odd shifts odd rows (pointy) or columns (flat).
type Odd struct{}

// Even shifts even rows (pointy) or columns (flat).
type Even struct{}

func (Odd) sign() int     { return -1 }
func (Odd) name() string  { return "odd" }
func (Even) sign() int    { return 1 }
func (Even) name() string { return "even" }

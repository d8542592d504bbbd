package hex

import (
	"fmt"

	"github.com/Faultbox/gridkit/pkg/math"
)

// Offset is a hex coordinate in (column, row) form, as used by rectangular
// hex maps. Alternate rows (Pointy) or columns (Flat) are shifted by half a
// hex, selected by the parity P.
type Offset[P Parity, O Orientation] struct {
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`
}

// OffsetAt returns the offset coordinate (col, row).
func OffsetAt[P Parity, O Orientation](col, row int) Offset[P, O] {
	return Offset[P, O]{Col: col, Row: row}
}

// AxialToOffset converts an axial coordinate to offset form. The mapping
// is a bijection.
func AxialToOffset[P Parity, O Orientation](a Axial[O]) Offset[P, O] {
	var o O
	var p P
	col, row := o.toOffset(a.Q, a.R, p.sign())
	return Offset[P, O]{Col: col, Row: row}
}

// OffsetToAxial converts an offset coordinate back to axial form.
func OffsetToAxial[P Parity, O Orientation](c Offset[P, O]) Axial[O] {
	return c.Axial()
}

// Axial returns the equivalent axial coordinate.
func (c Offset[P, O]) Axial() Axial[O] {
	var o O
	var p P
	q, r := o.fromOffset(c.Col, c.Row, p.sign())
	return Axial[O]{Q: q, R: r}
}

// Distance returns the hex step count between c and other.
func (c Offset[P, O]) Distance(other Offset[P, O]) int {
	return c.Axial().Distance(other.Axial())
}

// Neighbors returns the 6 adjacent hexes in Directions order.
func (c Offset[P, O]) Neighbors() []Offset[P, O] {
	axial := c.Axial().Neighbors()
	out := make([]Offset[P, O], len(axial))
	for i, a := range axial {
		out[i] = AxialToOffset[P](a)
	}
	return out
}

// Tuple returns (col, row).
func (c Offset[P, O]) Tuple() (int, int) {
	return c.Col, c.Row
}

// Array returns [col, row].
func (c Offset[P, O]) Array() [2]int {
	return [2]int{c.Col, c.Row}
}

// Center returns the hex center for hexes of circumradius 1.
func (c Offset[P, O]) Center() math.Vec2 {
	return c.Axial().Center()
}

func (c Offset[P, O]) String() string {
	var o O
	var p P
	return fmt.Sprintf("Offset[%s,%s](%d, %d)", p.name(), o.name(), c.Col, c.Row)
}

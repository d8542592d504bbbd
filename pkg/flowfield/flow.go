package flowfield

import (
	"fmt"

	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/math"
)

// FlowDirection is an index into a cell's Neighbors(), or one of the
// sentinels below.
type FlowDirection int8

const (
	DirNone FlowDirection = -1 // unreached, or no lower neighbor
	DirGoal FlowDirection = -2 // standing on the goal
)

// Moves reports whether the direction points at a neighbor.
func (d FlowDirection) Moves() bool { return d >= 0 }

func (d FlowDirection) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirGoal:
		return "goal"
	default:
		return fmt.Sprintf("neighbor[%d]", int8(d))
	}
}

// FlowAt returns the direction of steepest descent from c: the neighbor
// with the strictly lowest cost below c's own, ties going to the lowest
// neighbor index. Cells outside the field or unreached return DirNone.
func (f *IntegrationField[C]) FlowAt(c C) FlowDirection {
	own, ok := f.lookup(c)
	if !ok || own >= Unreached {
		return DirNone
	}
	if f.hasGoal && c == f.goal {
		return DirGoal
	}
	return descend(c, own, f.lookup)
}

func descend[C grid.Coordinate[C]](c C, own int, lookup func(C) (int, bool)) FlowDirection {
	best := DirNone
	bestCost := own
	for i, n := range c.Neighbors() {
		v, ok := lookup(n)
		if ok && v < bestCost {
			best, bestCost = FlowDirection(i), v
		}
	}
	return best
}

// Next returns the neighbor FlowAt points to.
func (f *IntegrationField[C]) Next(c C) (C, bool) {
	return follow(c, f.FlowAt(c))
}

// Delta returns the (column, row) step FlowAt points along, or (0, 0).
func (f *IntegrationField[C]) Delta(c C) (int, int) {
	return delta(c, f.FlowAt(c))
}

// Steer returns a unit vector in the planar embedding toward the next
// cell, or the zero vector when there is no move.
func (f *IntegrationField[C]) Steer(c C) math.Vec2 {
	return steer(c, f.FlowAt(c))
}

func follow[C grid.Coordinate[C]](c C, d FlowDirection) (C, bool) {
	if !d.Moves() {
		return c, false
	}
	return c.Neighbors()[d], true
}

func delta[C grid.Cell[C]](c C, d FlowDirection) (int, int) {
	n, ok := follow(c, d)
	if !ok {
		return 0, 0
	}
	x0, y0 := c.Tuple()
	x1, y1 := n.Tuple()
	return x1 - x0, y1 - y0
}

func steer[C grid.Cell[C]](c C, d FlowDirection) math.Vec2 {
	n, ok := follow(c, d)
	if !ok {
		return math.Vec2{}
	}
	return n.Center().Sub(c.Center()).Normalize()
}

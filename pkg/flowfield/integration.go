// Package flowfield computes goal-directed integration fields and the flow
// directions derived from them, for steering many agents at once.
package flowfield

import (
	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/grid/dense"
)

// Unreached marks cells the wavefront never got to. It is larger than any
// real accumulated cost.
const Unreached = 1<<30 - 1

// IntegrationField holds the accumulated cost from every cell to a goal
// over a width x height block of cells addressed by Tuple().
type IntegrationField[C grid.Cell[C]] struct {
	costs   *dense.Array[int]
	goal    C
	hasGoal bool
	heap    minHeap[C]
}

// NewIntegrationField allocates a field whose top-left cell tuple is
// (originCol, originRow). Every cell starts Unreached.
func NewIntegrationField[C grid.Cell[C]](width, height, originCol, originRow int) *IntegrationField[C] {
	return &IntegrationField[C]{
		costs: dense.New(width, height, originCol, originRow, Unreached),
	}
}

// Width returns the column count.
func (f *IntegrationField[C]) Width() int { return f.costs.Width() }

// Height returns the row count.
func (f *IntegrationField[C]) Height() int { return f.costs.Height() }

// Origin returns the tuple of the first cell.
func (f *IntegrationField[C]) Origin() (int, int) { return f.costs.Origin() }

// Goal returns the goal of the last computation.
func (f *IntegrationField[C]) Goal() (C, bool) { return f.goal, f.hasGoal }

// Contains reports whether c lies inside the field.
func (f *IntegrationField[C]) Contains(c C) bool {
	return f.costs.Contains(c.Tuple())
}

// Cost returns the integration cost at c, or Unreached. It panics when c
// is outside the field.
func (f *IntegrationField[C]) Cost(c C) int {
	return f.get(c)
}

// Reached reports whether c is inside the field and connected to the goal.
func (f *IntegrationField[C]) Reached(c C) bool {
	v, ok := f.lookup(c)
	return ok && v < Unreached
}

// Reset marks every cell Unreached and forgets the goal.
func (f *IntegrationField[C]) Reset() {
	f.costs.Fill(Unreached)
	var zero C
	f.goal, f.hasGoal = zero, false
}

// Compute runs a unit-cost wavefront from goal.
func (f *IntegrationField[C]) Compute(goal C, isAccessible func(C) bool) {
	f.ComputeWeighted(goal, isAccessible, nil)
}

// ComputeWeighted runs a Dijkstra wavefront outward from goal over
// Neighbors. A neighbor n is entered when it lies inside the field and
// isAccessible(n) holds, at cost(n) (1 when cost is nil). The goal is
// seeded at 0 without an accessibility check. A goal outside the field
// leaves every cell Unreached.
func (f *IntegrationField[C]) ComputeWeighted(goal C, isAccessible func(C) bool, cost func(C) int) {
	f.Reset()
	if !f.Contains(goal) {
		return
	}
	f.goal, f.hasGoal = goal, true
	f.set(goal, 0)

	f.heap = f.heap[:0]
	f.heap.push(heapEntry[C]{coord: goal, dist: 0})
	f.propagate(isAccessible, cost)
}

// propagate drains the heap, lowering neighbor costs where a cheaper route
// exists. It only ever decreases costs.
func (f *IntegrationField[C]) propagate(isAccessible func(C) bool, cost func(C) int) bool {
	changed := false
	for len(f.heap) > 0 {
		e := f.heap.pop()
		if e.dist > f.get(e.coord) {
			continue // stale
		}
		for _, n := range e.coord.Neighbors() {
			cur, ok := f.lookup(n)
			if !ok || !accessible(isAccessible, n) {
				continue
			}
			d := e.dist + stepCost(cost, n)
			if d < cur {
				f.set(n, d)
				f.heap.push(heapEntry[C]{coord: n, dist: d})
				changed = true
			}
		}
	}
	return changed
}

func (f *IntegrationField[C]) get(c C) int {
	col, row := c.Tuple()
	return f.costs.Get(col, row)
}

func (f *IntegrationField[C]) set(c C, v int) {
	col, row := c.Tuple()
	f.costs.Set(col, row, v)
}

func (f *IntegrationField[C]) lookup(c C) (int, bool) {
	col, row := c.Tuple()
	return f.costs.Lookup(col, row)
}

func accessible[C any](isAccessible func(C) bool, c C) bool {
	return isAccessible == nil || isAccessible(c)
}

func stepCost[C any](cost func(C) int, c C) int {
	if cost == nil {
		return 1
	}
	return cost(c)
}

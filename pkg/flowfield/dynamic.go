package flowfield

import "github.com/Faultbox/gridkit/pkg/grid"

// DynamicFlowField keeps an integration field current while terrain
// changes. Callers mark changed cells dirty and call Update; cheap changes
// are patched in place and the rest fall back to a full recompute.
type DynamicFlowField[C grid.Cell[C]] struct {
	field        *IntegrationField[C]
	isAccessible func(C) bool
	cost         func(C) int

	dirty map[C]struct{}
	order []C

	recomputes int
	patches    int
}

// NewDynamicFlowField returns a field with no goal. The predicates are
// consulted live, so they should reflect the current terrain.
func NewDynamicFlowField[C grid.Cell[C]](width, height, originCol, originRow int, isAccessible func(C) bool, cost func(C) int) *DynamicFlowField[C] {
	return &DynamicFlowField[C]{
		field:        NewIntegrationField[C](width, height, originCol, originRow),
		isAccessible: isAccessible,
		cost:         cost,
		dirty:        make(map[C]struct{}),
	}
}

// Field exposes the underlying integration field for queries.
func (d *DynamicFlowField[C]) Field() *IntegrationField[C] { return d.field }

// SetGoal recomputes the field toward goal and clears pending changes.
func (d *DynamicFlowField[C]) SetGoal(goal C) {
	d.clearDirty()
	d.field.ComputeWeighted(goal, d.isAccessible, d.cost)
	d.recomputes++
}

// MarkDirty records that accessibility or cost of c may have changed.
func (d *DynamicFlowField[C]) MarkDirty(c C) {
	if _, ok := d.dirty[c]; ok {
		return
	}
	d.dirty[c] = struct{}{}
	d.order = append(d.order, c)
}

// Pending returns the number of dirty cells awaiting Update.
func (d *DynamicFlowField[C]) Pending() int { return len(d.order) }

// Stats returns how many full recomputes and in-place patches ran.
func (d *DynamicFlowField[C]) Stats() (recomputes, patches int) {
	return d.recomputes, d.patches
}

// Update applies pending changes and reports whether any cost changed.
//
// If a dirty cell got more expensive or was blocked while on the field,
// costs may rise anywhere downstream, so the field is rebuilt. Otherwise
// every change is a decrease, and a Dijkstra pass seeded from the dirty
// cells gives the same result as a rebuild.
func (d *DynamicFlowField[C]) Update() bool {
	if len(d.order) == 0 {
		return false
	}
	defer d.clearDirty()

	goal, ok := d.field.Goal()
	if !ok {
		return false
	}

	f := d.field
	f.heap = f.heap[:0]
	var seeds []heapEntry[C]
	for _, c := range d.order {
		cur, ok := f.lookup(c)
		if !ok || c == goal {
			continue
		}
		if !accessible(d.isAccessible, c) {
			if cur < Unreached {
				return d.rebuild(goal)
			}
			continue
		}
		want := Unreached
		for _, n := range c.Neighbors() {
			if v, ok := f.lookup(n); ok && v < Unreached {
				want = min(want, v+stepCost(d.cost, c))
			}
		}
		switch {
		case want > cur:
			return d.rebuild(goal)
		case want < cur:
			seeds = append(seeds, heapEntry[C]{coord: c, dist: want})
		}
	}

	if len(seeds) == 0 {
		return false
	}
	for _, s := range seeds {
		f.set(s.coord, s.dist)
		f.heap.push(s)
	}
	f.propagate(d.isAccessible, d.cost)
	d.patches++
	return true
}

func (d *DynamicFlowField[C]) rebuild(goal C) bool {
	before := make([]int, 0, d.field.costs.Len())
	d.field.costs.Each(func(_, _ int, v int) { before = append(before, v) })

	d.field.ComputeWeighted(goal, d.isAccessible, d.cost)
	d.recomputes++

	changed := false
	i := 0
	d.field.costs.Each(func(_, _ int, v int) {
		if v != before[i] {
			changed = true
		}
		i++
	})
	return changed
}

func (d *DynamicFlowField[C]) clearDirty() {
	clear(d.dirty)
	d.order = d.order[:0]
}

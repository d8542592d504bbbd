package flowfield

import (
	"fmt"

	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/math"
)

// MultiGoalFlowField keeps one IntegrationField per goal and steers each
// cell toward whichever goal is cheapest to reach from it.
type MultiGoalFlowField[C grid.Cell[C]] struct {
	width, height        int
	originCol, originRow int
	isAccessible         func(C) bool
	cost                 func(C) int

	goals  []C
	fields []*IntegrationField[C]
}

// NewMultiGoalFlowField returns an empty multi-goal field. A nil cost means
// unit cost; a nil isAccessible admits every in-bounds cell.
func NewMultiGoalFlowField[C grid.Cell[C]](width, height, originCol, originRow int, isAccessible func(C) bool, cost func(C) int) *MultiGoalFlowField[C] {
	return &MultiGoalFlowField[C]{
		width:        width,
		height:       height,
		originCol:    originCol,
		originRow:    originRow,
		isAccessible: isAccessible,
		cost:         cost,
	}
}

// AddGoal computes a field for goal. It reports false if goal is already
// present.
func (m *MultiGoalFlowField[C]) AddGoal(goal C) bool {
	for _, g := range m.goals {
		if g == goal {
			return false
		}
	}
	f := NewIntegrationField[C](m.width, m.height, m.originCol, m.originRow)
	f.ComputeWeighted(goal, m.isAccessible, m.cost)
	m.goals = append(m.goals, goal)
	m.fields = append(m.fields, f)
	return true
}

// RemoveGoal drops goal and its field. It reports whether goal was present.
func (m *MultiGoalFlowField[C]) RemoveGoal(goal C) bool {
	for i, g := range m.goals {
		if g == goal {
			m.goals = append(m.goals[:i], m.goals[i+1:]...)
			m.fields = append(m.fields[:i], m.fields[i+1:]...)
			return true
		}
	}
	return false
}

// Goals returns the goals in insertion order.
func (m *MultiGoalFlowField[C]) Goals() []C {
	return append([]C(nil), m.goals...)
}

// Len returns the number of goals.
func (m *MultiGoalFlowField[C]) Len() int { return len(m.goals) }

// Recompute rebuilds every goal field from the current predicates.
func (m *MultiGoalFlowField[C]) Recompute() {
	for i, f := range m.fields {
		f.ComputeWeighted(m.goals[i], m.isAccessible, m.cost)
	}
}

// nearest returns the index of the cheapest goal at c, -1 if none reaches it.
func (m *MultiGoalFlowField[C]) nearest(c C) (int, int) {
	best, bestCost := -1, Unreached
	for i, f := range m.fields {
		v, ok := f.lookup(c)
		if ok && v < bestCost {
			best, bestCost = i, v
		}
	}
	return best, bestCost
}

// NearestGoal returns the goal cheapest to reach from c and its cost. The
// earliest added goal wins ties.
func (m *MultiGoalFlowField[C]) NearestGoal(c C) (C, int, bool) {
	i, cost := m.nearest(c)
	if i < 0 {
		var zero C
		return zero, Unreached, false
	}
	return m.goals[i], cost, true
}

// Cost returns the minimum cost over all goals, or Unreached. It panics
// when c is outside the field bounds.
func (m *MultiGoalFlowField[C]) Cost(c C) int {
	if !m.Contains(c) {
		panic(fmt.Sprintf("flowfield: %v outside %dx%d field at (%d, %d)",
			c, m.width, m.height, m.originCol, m.originRow))
	}
	_, cost := m.nearest(c)
	return cost
}

// Contains reports whether c lies within the field bounds.
func (m *MultiGoalFlowField[C]) Contains(c C) bool {
	col, row := c.Tuple()
	col -= m.originCol
	row -= m.originRow
	return col >= 0 && col < m.width && row >= 0 && row < m.height
}

// FlowAt returns the direction given by the cheapest goal's field.
func (m *MultiGoalFlowField[C]) FlowAt(c C) FlowDirection {
	i, _ := m.nearest(c)
	if i < 0 {
		return DirNone
	}
	return m.fields[i].FlowAt(c)
}

// Next returns the neighbor FlowAt points to.
func (m *MultiGoalFlowField[C]) Next(c C) (C, bool) {
	return follow(c, m.FlowAt(c))
}

// Steer returns a unit planar vector toward the next cell.
func (m *MultiGoalFlowField[C]) Steer(c C) math.Vec2 {
	return steer(c, m.FlowAt(c))
}

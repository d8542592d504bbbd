// Package pathfind implements A* search over any grid topology.
package pathfind

import (
	"container/heap"

	"github.com/Faultbox/gridkit/pkg/grid"
)

// Finder runs A* searches with an optional expansion budget.
type Finder[C grid.Coordinate[C]] struct {
	// MaxIterations caps node expansions. Zero means unbounded. A search
	// that runs out of budget reports no path.
	MaxIterations int
}

// AStar finds a least-cost path from start to goal.
//
// Successors of a cell are its Neighbors filtered by isAccessible; entering
// a cell costs cost(cell), or 1 when cost is nil. The heuristic is
// goal.Distance, so the result is optimal as long as every step costs at
// least 1. The start cell itself is never tested for accessibility.
//
// The returned path includes both endpoints. When no path exists AStar
// returns nil, 0, false.
func AStar[C grid.Coordinate[C]](start, goal C, isAccessible func(C) bool, cost func(C) int) ([]C, int, bool) {
	var f Finder[C]
	return f.Find(start, goal, isAccessible, cost)
}

// Find is AStar bounded by f.MaxIterations.
func (f Finder[C]) Find(start, goal C, isAccessible func(C) bool, cost func(C) int) ([]C, int, bool) {
	if start == goal {
		return []C{start}, 0, true
	}
	if cost == nil {
		cost = unitCost[C]
	}

	open := &openSet[C]{}
	heap.Init(open)
	nodes := make(map[C]*node[C])
	closed := make(map[C]bool)
	seq := 0

	startNode := &node[C]{coord: start, h: goal.Distance(start)}
	heap.Push(open, startNode)
	nodes[start] = startNode

	iterations := 0
	for open.Len() > 0 {
		if f.MaxIterations > 0 && iterations >= f.MaxIterations {
			return nil, 0, false
		}
		iterations++

		current := heap.Pop(open).(*node[C])
		if current.coord == goal {
			return reconstructPath(current), current.g, true
		}
		closed[current.coord] = true

		for _, n := range current.coord.Neighbors() {
			if closed[n] || !isAccessible(n) {
				continue
			}
			g := current.g + cost(n)

			next, exists := nodes[n]
			if !exists {
				seq++
				next = &node[C]{
					coord:  n,
					g:      g,
					h:      goal.Distance(n),
					seq:    seq,
					parent: current,
				}
				nodes[n] = next
				heap.Push(open, next)
			} else if g < next.g {
				next.g = g
				next.parent = current
				heap.Fix(open, next.index)
			}
		}
	}

	return nil, 0, false
}

// PathCost sums cost over every cell of path after the first, the same
// way Find accounts for it. A nil cost counts each step as 1.
func PathCost[C any](path []C, cost func(C) int) int {
	if len(path) < 2 {
		return 0
	}
	if cost == nil {
		return len(path) - 1
	}
	total := 0
	for _, c := range path[1:] {
		total += cost(c)
	}
	return total
}

func unitCost[C any](C) int { return 1 }

func reconstructPath[C any](n *node[C]) []C {
	var path []C
	for ; n != nil; n = n.parent {
		path = append(path, n.coord)
	}
	// Built goal to start.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

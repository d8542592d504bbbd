package world

import (
	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/pathfind"
)

// PathFinder handles pathfinding on a world's terrain.
type PathFinder[C grid.Cell[C]] struct {
	world    *World[C]
	finder   pathfind.Finder[C]
	weighted bool
}

// NewPathFinder creates a new pathfinder. maxIterations bounds node
// expansions (0 = unbounded); weighted charges terrain costs instead of
// one per step.
func NewPathFinder[C grid.Cell[C]](w *World[C], maxIterations int, weighted bool) *PathFinder[C] {
	if w == nil {
		return nil
	}
	return &PathFinder[C]{
		world:    w,
		finder:   pathfind.Finder[C]{MaxIterations: maxIterations},
		weighted: weighted,
	}
}

// FindPath finds a path from start to goal using A*. It reports false when
// either end is off the map, the goal is not walkable, or no path exists.
func (pf *PathFinder[C]) FindPath(start, goal C) ([]C, int, bool) {
	if pf == nil {
		return nil, 0, false
	}
	if !pf.world.Contains(start) || !pf.world.Contains(goal) {
		return nil, 0, false
	}
	if !pf.world.IsWalkable(goal) {
		return nil, 0, false
	}
	return pf.finder.Find(start, goal, pf.world.IsWalkable, pf.Cost())
}

// Cost returns the step cost function in use, nil for unit cost.
func (pf *PathFinder[C]) Cost() func(C) int {
	if pf.weighted {
		return pf.world.Cost
	}
	return nil
}

// IsWalkable checks if a cell is walkable.
func (pf *PathFinder[C]) IsWalkable(c C) bool {
	if pf == nil {
		return false
	}
	return pf.world.IsWalkable(c)
}

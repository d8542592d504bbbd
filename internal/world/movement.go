package world

import "github.com/Faultbox/gridkit/pkg/grid"

// MovementController moves a single walker one cell per Update, either
// along an A* path or down a flow field.
type MovementController[C grid.Cell[C]] struct {
	pathFinder *PathFinder[C]
	position   C

	// Current path
	path      []C
	pathIndex int

	// Movement state
	IsFollowingPath bool
}

// NewMovementController creates a new movement controller standing at start.
func NewMovementController[C grid.Cell[C]](pathFinder *PathFinder[C], start C) *MovementController[C] {
	return &MovementController[C]{
		pathFinder: pathFinder,
		position:   start,
	}
}

// Position returns the walker's current cell.
func (mc *MovementController[C]) Position() C { return mc.position }

// Teleport moves the walker without a path and clears any path.
func (mc *MovementController[C]) Teleport(c C) {
	mc.position = c
	mc.ClearPath()
}

// MoveTo plans a path to dest. It returns the full path including the
// current cell, or nil if none exists.
func (mc *MovementController[C]) MoveTo(dest C) []C {
	if mc.pathFinder == nil {
		return nil
	}

	path, _, ok := mc.pathFinder.FindPath(mc.position, dest)
	if !ok {
		return nil
	}

	// Skip first node as it's the current position.
	mc.path = path[1:]
	mc.pathIndex = 0
	mc.IsFollowingPath = len(mc.path) > 0
	return path
}

// Update advances one waypoint. It reports whether the walker moved.
// A waypoint that became unwalkable since planning stops the walk.
func (mc *MovementController[C]) Update() bool {
	if !mc.IsFollowingPath {
		return false
	}
	if mc.pathIndex >= len(mc.path) {
		mc.IsFollowingPath = false
		return false
	}

	next := mc.path[mc.pathIndex]
	if !mc.pathFinder.IsWalkable(next) {
		mc.ClearPath()
		return false
	}
	mc.position = next
	mc.pathIndex++
	if mc.pathIndex >= len(mc.path) {
		mc.IsFollowingPath = false
	}
	return true
}

// FollowFlow walks down a flow field from the current position until next
// reports no move or maxSteps is reached. It returns the cells visited,
// starting with the current one.
func (mc *MovementController[C]) FollowFlow(next func(C) (C, bool), maxSteps int) []C {
	mc.ClearPath()
	trail := []C{mc.position}
	for len(trail) <= maxSteps {
		n, ok := next(mc.position)
		if !ok {
			break
		}
		mc.position = n
		trail = append(trail, n)
	}
	return trail
}

// ClearPath stops the current path following.
func (mc *MovementController[C]) ClearPath() {
	mc.path = nil
	mc.pathIndex = 0
	mc.IsFollowingPath = false
}

// GetPath returns the remaining planned waypoints.
func (mc *MovementController[C]) GetPath() []C {
	return mc.path[mc.pathIndex:]
}

// CanWalkTo checks if a cell is walkable.
func (mc *MovementController[C]) CanWalkTo(c C) bool {
	if mc.pathFinder == nil {
		return false
	}
	return mc.pathFinder.IsWalkable(c)
}

// Package fov computes field of view and multi-source lighting over any
// grid topology that has a planar embedding.
package fov

import (
	"fmt"
	"strings"

	"github.com/Faultbox/gridkit/pkg/grid"
)

// Algorithm selects how visibility is computed.
type Algorithm int

const (
	// Shadowcasting scans outward from the viewer and shadows everything
	// strictly behind an opaque cell.
	Shadowcasting Algorithm = iota
	// RayCasting walks rays toward the radius ring and stops each at the
	// first opaque cell. Cheaper and coarser than Shadowcasting.
	RayCasting
	// FloodFill reveals everything reachable within the radius without
	// passing through opaque cells. No occlusion shaping.
	FloodFill
	// LineCast tests every cell in range on its own and reveals it when
	// LineOfSight from the viewer holds. One line walk per cell in range.
	LineCast
)

var algorithmNames = map[Algorithm]string{
	Shadowcasting: "shadowcasting",
	RayCasting:    "raycasting",
	FloodFill:     "floodfill",
	LineCast:      "linecast",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm accepts the names returned by Algorithm.String,
// case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range algorithmNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown fov algorithm %q", s)
}

// FieldOfView computes visibility with a fixed algorithm. It holds no
// per-call state and may be shared between goroutines.
type FieldOfView[C grid.Planar[C]] struct {
	alg Algorithm
}

// New returns a FieldOfView using alg.
func New[C grid.Planar[C]](alg Algorithm) *FieldOfView[C] {
	return &FieldOfView[C]{alg: alg}
}

// Algorithm returns the configured algorithm.
func (f *FieldOfView[C]) Algorithm() Algorithm {
	return f.alg
}

// Calculate returns the cells visible from viewer within radius, measured
// with the topology's own Distance. The viewer is always visible. A
// negative radius is treated as 0. A nil isOpaque means nothing blocks.
func (f *FieldOfView[C]) Calculate(viewer C, radius int, isOpaque func(C) bool) *VisibilityState[C] {
	radius = max(radius, 0)
	if isOpaque == nil {
		isOpaque = func(C) bool { return false }
	}
	state := newState(viewer, radius)
	state.reveal(viewer, 0, isOpaque(viewer))
	if radius == 0 {
		return state
	}

	switch f.alg {
	case RayCasting:
		rayCast(state, viewer, radius, isOpaque)
	case FloodFill:
		floodFill(state, viewer, radius, isOpaque)
	case LineCast:
		lineCast(state, viewer, radius, isOpaque)
	default:
		shadowCast(state, viewer, radius, isOpaque)
	}
	return state
}

// LineOfSight reports whether no opaque cell lies strictly between from
// and to along grid.Line. The endpoints themselves may be opaque.
func LineOfSight[C grid.Planar[C]](from, to C, isOpaque func(C) bool) bool {
	line := grid.Line(from, to)
	if len(line) <= 2 {
		return true
	}
	for _, c := range line[1 : len(line)-1] {
		if isOpaque(c) {
			return false
		}
	}
	return true
}

func floodFill[C grid.Planar[C]](state *VisibilityState[C], viewer C, radius int, isOpaque func(C) bool) {
	queue := []C{viewer}
	seen := map[C]bool{viewer: true}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range c.Neighbors() {
			if seen[n] {
				continue
			}
			seen[n] = true
			d := viewer.Distance(n)
			if d > radius {
				continue
			}
			opaque := isOpaque(n)
			state.reveal(n, d, opaque)
			if !opaque {
				queue = append(queue, n)
			}
		}
	}
}

func lineCast[C grid.Planar[C]](state *VisibilityState[C], viewer C, radius int, isOpaque func(C) bool) {
	for _, c := range grid.Range(viewer, radius) {
		if c != viewer && LineOfSight(viewer, c, isOpaque) {
			state.reveal(c, viewer.Distance(c), isOpaque(c))
		}
	}
}

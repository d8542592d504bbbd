package fov

import "github.com/Faultbox/gridkit/pkg/grid"

// rayCast casts one ray toward every cell on the radius ring, so the ray
// count grows with the radius. Each ray stops past the radius or right
// after the first opaque cell it reveals.
func rayCast[C grid.Planar[C]](state *VisibilityState[C], viewer C, radius int, isOpaque func(C) bool) {
	samples := 2*radius + 2
	for _, target := range grid.Ring(viewer, radius) {
		grid.Walk(viewer, target.Center(), samples, func(c C) bool {
			d := viewer.Distance(c)
			if d > radius {
				return false
			}
			opaque := isOpaque(c)
			state.reveal(c, d, opaque)
			return !opaque
		})
	}
}

package fov

import (
	"cmp"
	gomath "math"
	"slices"

	"github.com/Faultbox/gridkit/pkg/grid"
)

// Octant transforms for recursive shadowcasting: column i maps the scan's
// (dx, dy) onto one of the eight octants.
var octants = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// shadowRadius scales the minimum neighbor spacing into the angular radius
// an opaque cell blocks. It must exceed half the spacing so that shadows of
// adjacent walls overlap.
const shadowRadius = 0.55

func shadowCast[C grid.Planar[C]](state *VisibilityState[C], viewer C, radius int, isOpaque func(C) bool) {
	if _, ok := any(viewer).(grid.Lattice[C]); ok {
		for oct := 0; oct < 8; oct++ {
			castOctant(state, viewer, radius, isOpaque, 1, 1.0, 0.0,
				octants[0][oct], octants[1][oct], octants[2][oct], octants[3][oct])
		}
		return
	}
	sweep(state, viewer, radius, isOpaque)
}

// castOctant is the classic recursive octant scan. Rows run outward from
// the viewer; start and end are the slopes still in light.
func castOctant[C grid.Planar[C]](state *VisibilityState[C], viewer C, radius int, isOpaque func(C) bool,
	row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	lattice := any(viewer).(grid.Lattice[C])
	newStart := 0.0
	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false
		for dx := -j; dx <= 0; dx++ {
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			c := lattice.Translate(dx*xx+dy*xy, dx*yx+dy*yy)
			d := viewer.Distance(c)
			opaque := isOpaque(c)
			if d <= radius {
				state.reveal(c, d, opaque)
			}

			if blocked {
				if opaque {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				castOctant(state, viewer, radius, isOpaque, j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

type shadow struct {
	angle, half float64
}

// sweep handles topologies without an integer lattice (hex, triangular).
// Cells are visited in order of planar distance; each opaque cell casts an
// angular shadow, and a cell is visible when its center direction is not
// inside any earlier shadow.
func sweep[C grid.Planar[C]](state *VisibilityState[C], viewer C, radius int, isOpaque func(C) bool) {
	origin := viewer.Center()
	spacing := gomath.Inf(1)
	for _, n := range viewer.Neighbors() {
		spacing = min(spacing, float64(n.Center().Distance(origin)))
	}
	rho := shadowRadius * spacing

	type candidate struct {
		c     C
		dist  float64
		angle float64
	}
	cells := grid.Range(viewer, radius)[1:]
	cands := make([]candidate, len(cells))
	for i, c := range cells {
		v := c.Center().Sub(origin)
		cands[i] = candidate{c: c, dist: float64(v.Length()), angle: v.Angle()}
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(a.dist, b.dist)
	})

	var shadows []shadow
	for _, cand := range cands {
		opaque := isOpaque(cand.c)
		if !inShadow(shadows, cand.angle) {
			state.reveal(cand.c, viewer.Distance(cand.c), opaque)
		}
		// Opaque cells block light even when their center is in shadow.
		if opaque {
			shadows = append(shadows, shadow{
				angle: cand.angle,
				half:  gomath.Asin(min(1, rho/cand.dist)),
			})
		}
	}
}

func inShadow(shadows []shadow, angle float64) bool {
	for _, s := range shadows {
		if angleDiff(angle, s.angle) < s.half-1e-9 {
			return true
		}
	}
	return false
}

// angleDiff returns |a - b| folded into [0, pi].
func angleDiff(a, b float64) float64 {
	d := gomath.Mod(gomath.Abs(a-b), 2*gomath.Pi)
	if d > gomath.Pi {
		d = 2*gomath.Pi - d
	}
	return d
}

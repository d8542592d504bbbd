// Package world binds a scenario's terrain to one coordinate type so the
// generic pathfinding, visibility and flow engines can run on it.
package world

import (
	"github.com/Faultbox/gridkit/internal/render"
	"github.com/Faultbox/gridkit/internal/scenario"
	"github.com/Faultbox/gridkit/pkg/grid"
)

// World is a scenario seen through coordinate type C.
type World[C grid.Cell[C]] struct {
	Scenario *scenario.Scenario

	terrain *scenario.Terrain
	at      func(col, row int) C
}

// New binds sc to C. The at function builds a coordinate from a (col, row)
// tuple and must invert C.Tuple.
func New[C grid.Cell[C]](sc *scenario.Scenario, at func(col, row int) C) *World[C] {
	return &World[C]{
		Scenario: sc,
		terrain:  sc.Terrain(),
		at:       at,
	}
}

// At converts a scenario point to a coordinate.
func (w *World[C]) At(p scenario.Point) C { return w.at(p[0], p[1]) }

// Point converts a coordinate back to a scenario point.
func (w *World[C]) Point(c C) scenario.Point {
	col, row := c.Tuple()
	return scenario.Point{col, row}
}

// Terrain returns the live terrain. Changes are visible to every predicate.
func (w *World[C]) Terrain() *scenario.Terrain { return w.terrain }

// Bounds returns width, height and origin of the map.
func (w *World[C]) Bounds() (width, height, originCol, originRow int) {
	oc, or := w.terrain.Origin()
	return w.terrain.Width(), w.terrain.Height(), oc, or
}

// Cells returns every cell of the map in row-major order.
func (w *World[C]) Cells() []C {
	width, height, oc, or := w.Bounds()
	out := make([]C, 0, width*height)
	for row := or; row < or+height; row++ {
		for col := oc; col < oc+width; col++ {
			out = append(out, w.at(col, row))
		}
	}
	return out
}

// Contains reports whether c lies on the map.
func (w *World[C]) Contains(c C) bool {
	col, row := c.Tuple()
	return w.terrain.Contains(col, row)
}

// IsWalkable checks if c can be entered. Off-map cells are not walkable.
func (w *World[C]) IsWalkable(c C) bool {
	col, row := c.Tuple()
	return w.terrain.IsWalkable(col, row)
}

// IsOpaque checks if c blocks sight. Off-map cells are opaque.
func (w *World[C]) IsOpaque(c C) bool {
	col, row := c.Tuple()
	return w.terrain.IsOpaque(col, row)
}

// Cost returns the cost of entering c.
func (w *World[C]) Cost(c C) int {
	col, row := c.Tuple()
	return w.terrain.Cost(col, row)
}

// Canvas returns a canvas showing the bare terrain.
func (w *World[C]) Canvas() *render.Canvas {
	width, height, oc, or := w.Bounds()
	cv := render.NewCanvas(width, height, oc, or)
	for row := or; row < or+height; row++ {
		for col := oc; col < oc+width; col++ {
			cv.Set(col, row, render.Cell{Glyph: w.terrain.GetCell(col, row).Glyph()})
		}
	}
	return cv
}

// overlay draws glyph at c on cv.
func (w *World[C]) overlay(cv *render.Canvas, c C, glyph rune, kind render.Kind) {
	col, row := c.Tuple()
	cv.Overlay(col, row, glyph, kind)
}

// Package render draws grid results as text for the terminal.
package render

import (
	"image/color"

	"github.com/Faultbox/gridkit/pkg/grid/dense"
)

// Kind classifies a canvas cell for styling.
type Kind uint8

const (
	KindTerrain Kind = iota
	KindPath
	KindStart
	KindGoal
	KindViewer
	KindVisible
	KindRemembered
	KindHidden
	KindLight
	KindFlow
	KindUnreached
	KindChanged
)

// Cell is one character on the canvas. A zero Tint alpha means no tint.
type Cell struct {
	Glyph rune
	Kind  Kind
	Tint  color.NRGBA
}

// Layout tells the renderer how rows relate on screen.
type Layout uint8

const (
	Rect     Layout = iota // rows stacked directly
	OddRows                // odd rows shifted half a cell right (pointy hex, odd-r)
	Diamond                // rows sheared into an isometric diamond
	OddColumns             // odd columns shifted half a cell down (flat hex, odd-q)
)

// Canvas is a rectangle of cells addressed by (col, row).
type Canvas struct {
	cells *dense.Array[Cell]
}

// NewCanvas returns a canvas filled with blank terrain.
func NewCanvas(width, height, originCol, originRow int) *Canvas {
	return &Canvas{cells: dense.New(width, height, originCol, originRow, Cell{Glyph: ' '})}
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.cells.Width() }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.cells.Height() }

// Origin returns the (col, row) of the top-left cell.
func (c *Canvas) Origin() (int, int) { return c.cells.Origin() }

// Set stores cell at (col, row). Points outside the canvas are ignored.
func (c *Canvas) Set(col, row int, cell Cell) bool {
	if !c.cells.Contains(col, row) {
		return false
	}
	c.cells.Set(col, row, cell)
	return true
}

// Get returns the cell at (col, row).
func (c *Canvas) Get(col, row int) (Cell, bool) {
	return c.cells.Lookup(col, row)
}

// Overlay replaces the glyph and kind at (col, row), keeping any tint.
func (c *Canvas) Overlay(col, row int, glyph rune, kind Kind) bool {
	cell, ok := c.cells.Lookup(col, row)
	if !ok {
		return false
	}
	cell.Glyph, cell.Kind = glyph, kind
	c.cells.Set(col, row, cell)
	return true
}

// Tint colors the cell at (col, row).
func (c *Canvas) Tint(col, row int, tint color.NRGBA) bool {
	cell, ok := c.cells.Lookup(col, row)
	if !ok {
		return false
	}
	cell.Tint = tint
	c.cells.Set(col, row, cell)
	return true
}

// Rows returns the plain glyphs, one string per row, without layout.
func (c *Canvas) Rows() []string {
	rows := make([]string, c.Height())
	buf := make([][]rune, c.Height())
	_, or := c.cells.Origin()
	c.cells.Each(func(_, row int, cell Cell) {
		buf[row-or] = append(buf[row-or], cell.Glyph)
	})
	for i, r := range buf {
		rows[i] = string(r)
	}
	return rows
}

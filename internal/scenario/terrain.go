package scenario

import (
	"fmt"
	"strings"

	"github.com/Faultbox/gridkit/pkg/grid/dense"
)

// CellType is the terrain of one cell.
type CellType uint8

// Cell type constants.
const (
	Floor CellType = iota // walkable, transparent
	Wall                  // blocks movement and sight
	Water                 // walkable at extra cost
	Cliff                 // blocks movement, not sight
	Brush                 // walkable, blocks sight
)

var cellGlyphs = map[CellType]rune{
	Floor: '.',
	Wall:  '#',
	Water: '~',
	Cliff: '^',
	Brush: '%',
}

// ParseCellType returns the cell type drawn as r.
func ParseCellType(r rune) (CellType, error) {
	for t, g := range cellGlyphs {
		if g == r {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, r)
}

// Glyph returns the character used for t in scenario rows.
func (t CellType) Glyph() rune {
	if g, ok := cellGlyphs[t]; ok {
		return g
	}
	return '?'
}

// String returns a human-readable cell type name.
func (t CellType) String() string {
	switch t {
	case Floor:
		return "Floor"
	case Wall:
		return "Wall"
	case Water:
		return "Water"
	case Cliff:
		return "Cliff"
	case Brush:
		return "Brush"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWalkable returns true if the cell type allows walking.
func (t CellType) IsWalkable() bool {
	return t == Floor || t == Water || t == Brush
}

// IsOpaque returns true if the cell type blocks sight.
func (t CellType) IsOpaque() bool {
	return t == Wall || t == Brush
}

// Cost returns the cost of entering a cell of this type.
func (t CellType) Cost() int {
	switch t {
	case Water:
		return 3
	case Brush:
		return 2
	default:
		return 1
	}
}

// Terrain is a rectangular block of cells addressed by (col, row) tuples.
// Everything outside it counts as Wall.
type Terrain struct {
	cells *dense.Array[CellType]
}

// NewTerrain returns an all-Floor terrain.
func NewTerrain(width, height, originCol, originRow int) *Terrain {
	return &Terrain{cells: dense.New(width, height, originCol, originRow, Floor)}
}

// ParseTerrain builds a terrain from rows of glyphs, row 0 first.
func ParseTerrain(rows []string, originCol, originRow int) (*Terrain, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	width := len([]rune(rows[0]))
	t := NewTerrain(width, len(rows), originCol, originRow)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, row 0 has %d", ErrRaggedRows, y, len(runes), width)
		}
		for x, r := range runes {
			ct, err := ParseCellType(r)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			t.cells.Set(originCol+x, originRow+y, ct)
		}
	}
	return t, nil
}

// Width returns the number of columns.
func (t *Terrain) Width() int { return t.cells.Width() }

// Height returns the number of rows.
func (t *Terrain) Height() int { return t.cells.Height() }

// Origin returns the (col, row) of the top-left cell.
func (t *Terrain) Origin() (int, int) { return t.cells.Origin() }

// Contains reports whether (col, row) lies inside the terrain.
func (t *Terrain) Contains(col, row int) bool { return t.cells.Contains(col, row) }

// GetCell returns the cell type at (col, row), or Wall outside the terrain.
func (t *Terrain) GetCell(col, row int) CellType {
	ct, ok := t.cells.Lookup(col, row)
	if !ok {
		return Wall
	}
	return ct
}

// SetCell changes the cell type at (col, row). It reports false outside
// the terrain.
func (t *Terrain) SetCell(col, row int, ct CellType) bool {
	if !t.cells.Contains(col, row) {
		return false
	}
	t.cells.Set(col, row, ct)
	return true
}

// IsWalkable checks if the cell at (col, row) is walkable.
func (t *Terrain) IsWalkable(col, row int) bool { return t.GetCell(col, row).IsWalkable() }

// IsOpaque checks if the cell at (col, row) blocks sight.
func (t *Terrain) IsOpaque(col, row int) bool { return t.GetCell(col, row).IsOpaque() }

// Cost returns the cost of entering (col, row).
func (t *Terrain) Cost(col, row int) int { return t.GetCell(col, row).Cost() }

// Count returns how many cells have type ct.
func (t *Terrain) Count(ct CellType) int {
	n := 0
	t.cells.Each(func(_, _ int, v CellType) {
		if v == ct {
			n++
		}
	})
	return n
}

// String returns the terrain as glyph rows.
func (t *Terrain) String() string {
	var b strings.Builder
	oc, _ := t.cells.Origin()
	t.cells.Each(func(col, _ int, v CellType) {
		if col == oc && b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteRune(v.Glyph())
	})
	return b.String()
}

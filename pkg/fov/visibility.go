package fov

// Visibility is the per-cell outcome of a field-of-view computation.
type Visibility uint8

const (
	Hidden Visibility = iota
	Remembered
	Visible
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Remembered:
		return "remembered"
	default:
		return "hidden"
	}
}

// Cell is what a VisibilityState knows about one coordinate.
type Cell struct {
	Visibility Visibility
	Distance   int     // native grid distance from the viewer
	Light      float32 // 1 at the viewer, falling toward 0 at the radius edge
	Opaque     bool    // the cell blocks sight
}

// VisibilityState is the immutable result of one FOV computation. Cells
// not present are Hidden.
type VisibilityState[C comparable] struct {
	viewer C
	radius int
	cells  map[C]Cell
}

func newState[C comparable](viewer C, radius int) *VisibilityState[C] {
	return &VisibilityState[C]{
		viewer: viewer,
		radius: radius,
		cells:  make(map[C]Cell),
	}
}

// Viewer returns the coordinate the state was computed from.
func (s *VisibilityState[C]) Viewer() C { return s.viewer }

// Radius returns the effective radius (never negative).
func (s *VisibilityState[C]) Radius() int { return s.radius }

// At returns the cell record for c; unknown cells are Hidden.
func (s *VisibilityState[C]) At(c C) Cell {
	return s.cells[c]
}

// IsVisible reports whether c is currently in view.
func (s *VisibilityState[C]) IsVisible(c C) bool {
	return s.cells[c].Visibility == Visible
}

// IsRemembered reports whether c was seen before but is not in view now.
func (s *VisibilityState[C]) IsRemembered(c C) bool {
	return s.cells[c].Visibility == Remembered
}

// LightLevel returns the viewer-relative light of c, 0 when not visible.
func (s *VisibilityState[C]) LightLevel(c C) float32 {
	cell := s.cells[c]
	if cell.Visibility != Visible {
		return 0
	}
	return cell.Light
}

// VisibleCount returns the number of Visible cells.
func (s *VisibilityState[C]) VisibleCount() int {
	n := 0
	for _, cell := range s.cells {
		if cell.Visibility == Visible {
			n++
		}
	}
	return n
}

// Visible returns every Visible coordinate in no particular order.
func (s *VisibilityState[C]) Visible() []C {
	out := make([]C, 0, len(s.cells))
	for c, cell := range s.cells {
		if cell.Visibility == Visible {
			out = append(out, c)
		}
	}
	return out
}

// InRange returns every Visible coordinate whose distance from the viewer
// lies in [min, max], in no particular order.
func (s *VisibilityState[C]) InRange(min, max int) []C {
	var out []C
	for c, cell := range s.cells {
		if cell.Visibility == Visible && cell.Distance >= min && cell.Distance <= max {
			out = append(out, c)
		}
	}
	return out
}

// Each calls fn for every Visible or Remembered cell.
func (s *VisibilityState[C]) Each(fn func(C, Cell)) {
	for c, cell := range s.cells {
		fn(c, cell)
	}
}

// WithMemory merges prev into a new state: cells seen in prev (visible or
// remembered) that are not visible now become Remembered. Neither input is
// modified. A nil prev returns a copy of s.
func (s *VisibilityState[C]) WithMemory(prev *VisibilityState[C]) *VisibilityState[C] {
	out := newState(s.viewer, s.radius)
	for c, cell := range s.cells {
		out.cells[c] = cell
	}
	if prev == nil {
		return out
	}
	for c, cell := range prev.cells {
		if cell.Visibility == Hidden {
			continue
		}
		if cur, ok := out.cells[c]; ok && cur.Visibility == Visible {
			continue
		}
		cell.Visibility = Remembered
		cell.Light = 0
		out.cells[c] = cell
	}
	return out
}

func (s *VisibilityState[C]) reveal(c C, distance int, opaque bool) {
	if cur, ok := s.cells[c]; ok && cur.Visibility == Visible {
		return
	}
	s.cells[c] = Cell{
		Visibility: Visible,
		Distance:   distance,
		Light:      1 - float32(distance)/float32(s.radius+1),
		Opaque:     opaque,
	}
}

package fov

import (
	"testing"

	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/grid/hex"
	"github.com/Faultbox/gridkit/pkg/grid/iso"
	"github.com/Faultbox/gridkit/pkg/grid/square"
	"github.com/Faultbox/gridkit/pkg/grid/tri"
)

var algorithms = []Algorithm{Shadowcasting, RayCasting, FloodFill, LineCast}

func walls[C comparable](cs ...C) func(C) bool {
	set := make(map[C]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return func(c C) bool { return set[c] }
}

func checkSelfVisible[C grid.Planar[C]](t *testing.T, viewer C) {
	t.Helper()
	blockAll := func(C) bool { return true }
	for _, alg := range algorithms {
		for _, r := range []int{-1, 0, 3} {
			s := New[C](alg).Calculate(viewer, r, blockAll)
			if !s.IsVisible(viewer) {
				t.Errorf("%v r=%d: viewer %v not visible", alg, r, viewer)
			}
		}
	}
}

func TestSelfVisibility(t *testing.T) {
	checkSelfVisible(t, hex.At[hex.Pointy](2, -1))
	checkSelfVisible(t, hex.At[hex.Flat](0, 0))
	checkSelfVisible(t, square.At[square.FourConnected](1, 1))
	checkSelfVisible(t, square.At[square.EightConnected](-3, 2))
	checkSelfVisible(t, tri.At[tri.TwelveConnected](1, 0))
	checkSelfVisible(t, iso.At[iso.Diamond](0, 0))
}

func TestZeroRadius(t *testing.T) {
	s := New[square.Eight](Shadowcasting).Calculate(square.At[square.EightConnected](0, 0), 0, nil)
	if s.VisibleCount() != 1 {
		t.Errorf("radius 0 revealed %d cells, want 1", s.VisibleCount())
	}
	s = New[square.Eight](Shadowcasting).Calculate(square.At[square.EightConnected](0, 0), -5, nil)
	if s.Radius() != 0 || s.VisibleCount() != 1 {
		t.Errorf("negative radius: Radius()=%d visible=%d", s.Radius(), s.VisibleCount())
	}
}

func TestOpenFieldMatchesRange(t *testing.T) {
	viewer := square.At[square.EightConnected](0, 0)
	want := len(grid.Range(viewer, 4))
	for _, alg := range []Algorithm{Shadowcasting, FloodFill, LineCast} {
		s := New[square.Eight](alg).Calculate(viewer, 4, nil)
		if s.VisibleCount() != want {
			t.Errorf("%v: %d visible in open field, want %d", alg, s.VisibleCount(), want)
		}
	}
	h := hex.At[hex.Pointy](0, 0)
	s := New[hex.PointyAxial](Shadowcasting).Calculate(h, 3, nil)
	if s.VisibleCount() != 37 {
		t.Errorf("hex open field: %d visible, want 37", s.VisibleCount())
	}
	for _, c := range s.Visible() {
		if c.Distance(h) > 3 {
			t.Errorf("%v beyond radius is visible", c)
		}
	}
}

func TestSquareOcclusion(t *testing.T) {
	var wall []square.Eight
	for y := -2; y <= 2; y++ {
		wall = append(wall, square.At[square.EightConnected](2, y))
	}
	opaque := walls(wall...)
	viewer := square.At[square.EightConnected](0, 0)
	behind := square.At[square.EightConnected](4, 0)
	side := square.At[square.EightConnected](0, 4)

	for _, alg := range []Algorithm{Shadowcasting, RayCasting, LineCast} {
		s := New[square.Eight](alg).Calculate(viewer, 6, opaque)
		if s.IsVisible(behind) {
			t.Errorf("%v: %v behind the wall is visible", alg, behind)
		}
		if !s.IsVisible(side) {
			t.Errorf("%v: %v off to the side is hidden", alg, side)
		}
		if !s.IsVisible(square.At[square.EightConnected](2, 0)) {
			t.Errorf("%v: the wall itself should be visible", alg)
		}
	}
}

func TestHexOcclusion(t *testing.T) {
	opaque := walls(hex.At[hex.Pointy](2, -1), hex.At[hex.Pointy](2, 0), hex.At[hex.Pointy](1, 1))
	viewer := hex.At[hex.Pointy](0, 0)
	behind := hex.At[hex.Pointy](4, 0)
	side := hex.At[hex.Pointy](0, -4)

	for _, alg := range []Algorithm{Shadowcasting, RayCasting, LineCast} {
		s := New[hex.PointyAxial](alg).Calculate(viewer, 5, opaque)
		if s.IsVisible(behind) {
			t.Errorf("%v: %v behind the wall is visible", alg, behind)
		}
		if !s.IsVisible(side) {
			t.Errorf("%v: %v off to the side is hidden", alg, side)
		}
		if !s.IsVisible(hex.At[hex.Pointy](2, 0)) {
			t.Errorf("%v: wall hex should be visible", alg)
		}
	}
}

func TestIsoOcclusion(t *testing.T) {
	opaque := walls(iso.At[iso.Diamond](1, -1), iso.At[iso.Diamond](1, 0), iso.At[iso.Diamond](1, 1))
	s := New[iso.DiamondCoord](Shadowcasting).Calculate(iso.At[iso.Diamond](0, 0), 5, opaque)
	if s.IsVisible(iso.At[iso.Diamond](3, 0)) {
		t.Error("cell behind iso wall is visible")
	}
	if !s.IsVisible(iso.At[iso.Diamond](-3, 0)) {
		t.Error("cell opposite the wall is hidden")
	}
}

func TestTriangleOcclusion(t *testing.T) {
	viewer := tri.At[tri.TwelveConnected](0, 0)
	opaque := walls(viewer.Neighbors()...)
	s := New[tri.Twelve](Shadowcasting).Calculate(viewer, 4, opaque)
	for _, c := range s.Visible() {
		if viewer.Distance(c) > 1 {
			t.Errorf("%v visible through a closed ring of walls", c)
		}
	}
	for _, e := range viewer.EdgeNeighbors() {
		if !s.IsVisible(e) {
			t.Errorf("edge neighbor %v should be visible", e)
		}
	}

	open := New[tri.Twelve](Shadowcasting).Calculate(viewer, 2, nil)
	if open.VisibleCount() != len(grid.Range(viewer, 2)) {
		t.Errorf("open triangle field: %d visible, want %d", open.VisibleCount(), len(grid.Range(viewer, 2)))
	}
}

func TestFloodFillStopsAtWalls(t *testing.T) {
	viewer := square.At[square.FourConnected](0, 0)
	var ring []square.Four
	for _, c := range grid.Ring(viewer, 2) {
		ring = append(ring, c)
	}
	s := New[square.Four](FloodFill).Calculate(viewer, 5, walls(ring...))
	if s.VisibleCount() != len(grid.Range(viewer, 2)) {
		t.Errorf("flood fill revealed %d cells, want %d", s.VisibleCount(), len(grid.Range(viewer, 2)))
	}
	if !s.At(ring[0]).Opaque {
		t.Error("wall cell should be recorded as opaque")
	}
}

func TestLightLevel(t *testing.T) {
	viewer := square.At[square.EightConnected](0, 0)
	s := New[square.Eight](Shadowcasting).Calculate(viewer, 3, nil)
	if s.LightLevel(viewer) != 1 {
		t.Errorf("viewer light = %v, want 1", s.LightLevel(viewer))
	}
	edge := square.At[square.EightConnected](3, 0)
	if got := s.LightLevel(edge); got != 0.25 {
		t.Errorf("edge light = %v, want 0.25", got)
	}
	if got := s.At(edge).Distance; got != 3 {
		t.Errorf("edge distance = %d, want 3", got)
	}
	if s.LightLevel(square.At[square.EightConnected](9, 9)) != 0 {
		t.Error("hidden cell should have no light")
	}
}

func TestWithMemory(t *testing.T) {
	f := New[square.Four](Shadowcasting)
	a := f.Calculate(square.At[square.FourConnected](0, 0), 2, nil)
	b := f.Calculate(square.At[square.FourConnected](5, 0), 2, nil)

	merged := b.WithMemory(a)
	if !merged.IsRemembered(square.At[square.FourConnected](0, 0)) {
		t.Error("old viewer cell should be remembered")
	}
	if !merged.IsVisible(square.At[square.FourConnected](5, 0)) {
		t.Error("current viewer should stay visible")
	}
	if !merged.IsVisible(square.At[square.FourConnected](3, 0)) {
		t.Error("currently visible cell should stay visible")
	}
	if merged.At(square.At[square.FourConnected](9, 9)).Visibility != Hidden {
		t.Error("never-seen cell should be hidden")
	}
	if b.IsRemembered(square.At[square.FourConnected](0, 0)) {
		t.Error("WithMemory must not modify its receiver")
	}

	again := f.Calculate(square.At[square.FourConnected](10, 0), 1, nil).WithMemory(merged)
	if !again.IsRemembered(square.At[square.FourConnected](0, 0)) {
		t.Error("remembered cells should carry forward")
	}
}

func TestLineOfSight(t *testing.T) {
	opaque := walls(square.At[square.EightConnected](2, 0))
	a := square.At[square.EightConnected](0, 0)
	if LineOfSight(a, square.At[square.EightConnected](4, 0), opaque) {
		t.Error("line through a wall should be blocked")
	}
	if !LineOfSight(a, square.At[square.EightConnected](0, 4), opaque) {
		t.Error("open line should be clear")
	}
	if !LineOfSight(a, square.At[square.EightConnected](2, 0), opaque) {
		t.Error("an opaque endpoint does not block")
	}
	if !LineOfSight(a, a, opaque) {
		t.Error("a cell always sees itself")
	}
}

func TestLineCastMatchesLineOfSight(t *testing.T) {
	viewer := hex.At[hex.Pointy](0, 0)
	opaque := walls(hex.At[hex.Pointy](1, 0), hex.At[hex.Pointy](-1, 2))
	s := New[hex.PointyAxial](LineCast).Calculate(viewer, 4, opaque)
	for _, c := range grid.Range(viewer, 4) {
		if want := LineOfSight(viewer, c, opaque); s.IsVisible(c) != want {
			t.Errorf("%v visible = %v, LineOfSight = %v", c, s.IsVisible(c), want)
		}
	}
	if s.IsVisible(hex.At[hex.Pointy](5, 0)) {
		t.Error("cell beyond the radius is visible")
	}
}

func TestInRange(t *testing.T) {
	viewer := square.At[square.FourConnected](0, 0)
	s := New[square.Four](LineCast).Calculate(viewer, 3, nil)

	if got := s.InRange(0, 0); len(got) != 1 || got[0] != viewer {
		t.Errorf("InRange(0, 0) = %v, want only the viewer", got)
	}
	if got := len(s.InRange(2, 2)); got != len(grid.Ring(viewer, 2)) {
		t.Errorf("len(InRange(2, 2)) = %d, want %d", got, len(grid.Ring(viewer, 2)))
	}
	if got := len(s.InRange(0, 3)); got != s.VisibleCount() {
		t.Errorf("len(InRange(0, 3)) = %d, want all %d visible", got, s.VisibleCount())
	}
	for _, c := range s.InRange(1, 2) {
		if d := viewer.Distance(c); d < 1 || d > 2 {
			t.Errorf("%v at distance %d outside [1, 2]", c, d)
		}
	}
	if got := s.InRange(3, 1); len(got) != 0 {
		t.Errorf("InRange(3, 1) = %v, want empty", got)
	}
	// Remembered cells are not in range.
	moved := New[square.Four](LineCast).Calculate(square.At[square.FourConnected](10, 0), 1, nil).WithMemory(s)
	if got := moved.InRange(0, 20); len(got) != moved.VisibleCount() {
		t.Errorf("InRange counted remembered cells: %d vs %d visible", len(got), moved.VisibleCount())
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range algorithms {
		got, err := ParseAlgorithm(alg.String())
		if err != nil || got != alg {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", alg.String(), got, err)
		}
	}
	if _, err := ParseAlgorithm("xray"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func BenchmarkShadowcastSquare(b *testing.B) {
	f := New[square.Eight](Shadowcasting)
	opaque := func(c square.Eight) bool { return c.X%5 == 0 && c.Y%3 == 0 }
	viewer := square.At[square.EightConnected](1, 1)
	for i := 0; i < b.N; i++ {
		f.Calculate(viewer, 12, opaque)
	}
}

func BenchmarkShadowcastHex(b *testing.B) {
	f := New[hex.PointyAxial](Shadowcasting)
	opaque := func(c hex.PointyAxial) bool { return c.Q%4 == 0 && c.R%3 == 0 }
	viewer := hex.At[hex.Pointy](1, 1)
	for i := 0; i < b.N; i++ {
		f.Calculate(viewer, 8, opaque)
	}
}

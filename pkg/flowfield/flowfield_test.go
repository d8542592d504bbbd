package flowfield

import (
	"testing"

	"github.com/Faultbox/gridkit/pkg/grid/hex"
	"github.com/Faultbox/gridkit/pkg/grid/square"
	"github.com/Faultbox/gridkit/pkg/math"
	"github.com/Faultbox/gridkit/pkg/pathfind"
)

type terrain map[[2]int]bool

func (t terrain) open(x, y int) bool { return !t[[2]int{x, y}] }

func squareCells[K square.Connectivity](w, h int) []square.Coord[K] {
	out := make([]square.Coord[K], 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out = append(out, square.At[K](x, y))
		}
	}
	return out
}

func TestCompute_Convergence(t *testing.T) {
	walls := terrain{}
	for y := 0; y < 8; y++ {
		walls[[2]int{4, y}] = true
	}
	ok := func(c square.Eight) bool { return walls.open(c.X, c.Y) }
	f := NewIntegrationField[square.Eight](10, 10, 0, 0)
	goal := square.At[square.EightConnected](8, 2)
	f.Compute(goal, ok)

	for _, c := range squareCells[square.EightConnected](10, 10) {
		if !f.Reached(c) {
			if ok(c) {
				t.Errorf("open cell %v unreached", c)
			}
			continue
		}
		steps := 0
		cur := c
		for cur != goal {
			next, moved := f.Next(cur)
			if !moved {
				t.Fatalf("flow from %v stalls at %v (dir %v)", c, cur, f.FlowAt(cur))
			}
			cur = next
			steps++
		}
		if steps != f.Cost(c) {
			t.Errorf("%v: %d steps to goal, cost %d", c, steps, f.Cost(c))
		}
	}
	if f.FlowAt(goal) != DirGoal {
		t.Errorf("FlowAt(goal) = %v, want goal", f.FlowAt(goal))
	}
}

func TestCompute_HexOffset(t *testing.T) {
	type cell = hex.Offset[hex.Odd, hex.Pointy]
	f := NewIntegrationField[cell](8, 8, 0, 0)
	goal := hex.OffsetAt[hex.Odd, hex.Pointy](0, 0)
	f.Compute(goal, nil)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c := hex.OffsetAt[hex.Odd, hex.Pointy](col, row)
			if got := f.Cost(c); got != c.Distance(goal) {
				t.Errorf("Cost(%v) = %d, want hex distance %d", c, got, c.Distance(goal))
			}
		}
	}
}

func TestCompute_MatchesAStar(t *testing.T) {
	mud := terrain{{3, 1}: true, {3, 2}: true, {3, 3}: true, {2, 3}: true}
	cost := func(c square.Four) int {
		if !mud.open(c.X, c.Y) {
			return 5
		}
		return 1
	}
	inBounds := func(c square.Four) bool { return c.X >= 0 && c.X < 6 && c.Y >= 0 && c.Y < 6 }
	goal := square.At[square.FourConnected](5, 5)
	f := NewIntegrationField[square.Four](6, 6, 0, 0)
	f.ComputeWeighted(goal, nil, cost)

	for _, c := range squareCells[square.FourConnected](6, 6) {
		_, want, ok := pathfind.AStar(goal, c, inBounds, cost)
		if !ok {
			t.Fatalf("A* found no path to %v", c)
		}
		if got := f.Cost(c); got != want {
			t.Errorf("Cost(%v) = %d, A* says %d", c, got, want)
		}
	}
}

func TestFlowAt_TieBreak(t *testing.T) {
	f := NewIntegrationField[square.Four](5, 5, 0, 0)
	f.Compute(square.At[square.FourConnected](0, 0), nil)
	c := square.At[square.FourConnected](2, 2)
	// Left (index 1) and up (index 2) both cost 3; the lower index wins.
	if got := f.FlowAt(c); got != 1 {
		t.Errorf("FlowAt(%v) = %v, want neighbor[1]", c, got)
	}
	if dx, dy := f.Delta(c); dx != -1 || dy != 0 {
		t.Errorf("Delta = (%d, %d), want (-1, 0)", dx, dy)
	}
	if v := f.Steer(c); v != (math.Vec2{X: -1, Y: 0}) {
		t.Errorf("Steer = %v, want (-1, 0)", v)
	}
}

func TestUnreachable(t *testing.T) {
	walls := terrain{{1, 0}: true, {0, 1}: true, {1, 1}: true}
	ok := func(c square.Eight) bool { return walls.open(c.X, c.Y) }
	f := NewIntegrationField[square.Eight](4, 4, 0, 0)
	f.Compute(square.At[square.EightConnected](3, 3), ok)

	corner := square.At[square.EightConnected](0, 0)
	if f.Reached(corner) || f.Cost(corner) != Unreached {
		t.Errorf("enclosed cell reached with cost %d", f.Cost(corner))
	}
	if f.FlowAt(corner) != DirNone {
		t.Errorf("FlowAt(enclosed) = %v, want none", f.FlowAt(corner))
	}
	if _, moved := f.Next(corner); moved {
		t.Error("Next from an enclosed cell should not move")
	}
	if v := f.Steer(corner); v != (math.Vec2{}) {
		t.Errorf("Steer(enclosed) = %v, want zero", v)
	}
	if f.FlowAt(square.At[square.EightConnected](-1, 0)) != DirNone {
		t.Error("FlowAt outside the field should be none")
	}
}

func TestDegenerateFields(t *testing.T) {
	f := NewIntegrationField[square.Four](0, 0, 0, 0)
	c := square.At[square.FourConnected](0, 0)
	f.Compute(c, nil)
	if f.FlowAt(c) != DirNone || f.Reached(c) {
		t.Error("zero-size field should yield no movement")
	}
	if s := f.Analyze(); s.Cells != 0 || s.Coverage() != 0 {
		t.Errorf("Analyze(empty) = %+v", s)
	}

	g := NewIntegrationField[square.Four](3, 3, 0, 0)
	g.Compute(square.At[square.FourConnected](7, 7), nil)
	if _, ok := g.Goal(); ok {
		t.Error("out-of-bounds goal should not be recorded")
	}
	if s := g.Analyze(); s.Reachable != 0 || s.Unreachable != 9 {
		t.Errorf("out-of-bounds goal reached %d cells", s.Reachable)
	}
}

func TestCost_OutOfRangePanics(t *testing.T) {
	f := NewIntegrationField[square.Four](3, 3, 0, 0)
	defer func() {
		if recover() == nil {
			t.Error("Cost outside the field should panic")
		}
	}()
	f.Cost(square.At[square.FourConnected](3, 0))
}

func TestAnalyze(t *testing.T) {
	f := NewIntegrationField[square.Eight](3, 3, -1, -1)
	f.Compute(square.At[square.EightConnected](0, 0), nil)
	s := f.Analyze()
	if s.Cells != 9 || s.Reachable != 9 || s.MaxCost != 1 {
		t.Errorf("Analyze = %+v", s)
	}
	if s.MeanCost < 0.88 || s.MeanCost > 0.89 {
		t.Errorf("MeanCost = %v, want 8/9", s.MeanCost)
	}
	if s.Coverage() != 1 {
		t.Errorf("Coverage = %v", s.Coverage())
	}
}

func TestMultiGoal(t *testing.T) {
	m := NewMultiGoalFlowField[square.Four](9, 1, 0, 0, nil, nil)
	left := square.At[square.FourConnected](0, 0)
	right := square.At[square.FourConnected](8, 0)
	if !m.AddGoal(left) || !m.AddGoal(right) || m.AddGoal(left) {
		t.Fatal("AddGoal should accept each goal once")
	}

	if g, cost, ok := m.NearestGoal(square.At[square.FourConnected](2, 0)); !ok || g != left || cost != 2 {
		t.Errorf("NearestGoal(2,0) = %v, %d, %v", g, cost, ok)
	}
	if g, _, _ := m.NearestGoal(square.At[square.FourConnected](6, 0)); g != right {
		t.Errorf("NearestGoal(6,0) = %v, want %v", g, right)
	}
	// Equidistant: the first goal wins.
	if g, cost, _ := m.NearestGoal(square.At[square.FourConnected](4, 0)); g != left || cost != 4 {
		t.Errorf("NearestGoal(4,0) = %v, %d", g, cost)
	}
	if next, ok := m.Next(square.At[square.FourConnected](6, 0)); !ok || next != square.At[square.FourConnected](7, 0) {
		t.Errorf("Next(6,0) = %v, %v", next, ok)
	}
	if m.FlowAt(right) != DirGoal {
		t.Errorf("FlowAt(goal) = %v", m.FlowAt(right))
	}

	if !m.RemoveGoal(left) || m.RemoveGoal(left) {
		t.Error("RemoveGoal should succeed once")
	}
	if m.Cost(square.At[square.FourConnected](2, 0)) != 6 {
		t.Errorf("after removal Cost(2,0) = %d, want 6", m.Cost(square.At[square.FourConnected](2, 0)))
	}
	if gs := m.Goals(); len(gs) != 1 || gs[0] != right {
		t.Errorf("Goals() = %v", gs)
	}
}

func TestMultiGoal_RecomputeAndEmpty(t *testing.T) {
	blocked := false
	ok := func(c square.Four) bool { return !(blocked && c.X == 2) }
	m := NewMultiGoalFlowField[square.Four](5, 1, 0, 0, ok, nil)
	m.AddGoal(square.At[square.FourConnected](0, 0))
	c := square.At[square.FourConnected](4, 0)
	if m.Cost(c) != 4 {
		t.Fatalf("Cost = %d, want 4", m.Cost(c))
	}
	blocked = true
	m.Recompute()
	if m.Cost(c) != Unreached || m.FlowAt(c) != DirNone {
		t.Errorf("after blocking, Cost = %d FlowAt = %v", m.Cost(c), m.FlowAt(c))
	}

	empty := NewMultiGoalFlowField[square.Four](5, 1, 0, 0, nil, nil)
	if _, _, ok := empty.NearestGoal(c); ok || empty.FlowAt(c) != DirNone {
		t.Error("a field with no goals should yield no movement")
	}
}

func sameCosts(t *testing.T, got, want *IntegrationField[square.Eight]) {
	t.Helper()
	for _, c := range squareCells[square.EightConnected](got.Width(), got.Height()) {
		if got.Cost(c) != want.Cost(c) {
			t.Errorf("Cost(%v) = %d, fresh compute gives %d", c, got.Cost(c), want.Cost(c))
		}
	}
}

func TestDynamic_PatchMatchesRecompute(t *testing.T) {
	walls := terrain{}
	for y := 0; y < 6; y++ {
		walls[[2]int{3, y}] = true
	}
	ok := func(c square.Eight) bool { return walls.open(c.X, c.Y) }
	goal := square.At[square.EightConnected](0, 0)

	d := NewDynamicFlowField[square.Eight](6, 6, 0, 0, ok, nil)
	d.SetGoal(goal)
	far := square.At[square.EightConnected](5, 0)
	if d.Field().Reached(far) {
		t.Fatal("far side should start cut off")
	}
	if d.Update() {
		t.Error("Update with nothing dirty should report no change")
	}

	delete(walls, [2]int{3, 2})
	d.MarkDirty(square.At[square.EightConnected](3, 2))
	d.MarkDirty(square.At[square.EightConnected](3, 2))
	if d.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", d.Pending())
	}
	if !d.Update() {
		t.Fatal("opening a gap should change the field")
	}
	if _, patches := d.Stats(); patches != 1 {
		t.Errorf("opening a gap should patch in place, patches = %d", patches)
	}

	fresh := NewIntegrationField[square.Eight](6, 6, 0, 0)
	fresh.Compute(goal, ok)
	sameCosts(t, d.Field(), fresh)
	if !d.Field().Reached(far) {
		t.Error("far side should be reachable through the gap")
	}
}

func TestDynamic_BlockingRecomputes(t *testing.T) {
	walls := terrain{}
	ok := func(c square.Eight) bool { return walls.open(c.X, c.Y) }
	goal := square.At[square.EightConnected](0, 0)
	d := NewDynamicFlowField[square.Eight](6, 6, 0, 0, ok, nil)
	d.SetGoal(goal)

	for y := 0; y < 5; y++ {
		walls[[2]int{2, y}] = true
		d.MarkDirty(square.At[square.EightConnected](2, y))
	}
	if !d.Update() {
		t.Fatal("blocking cells should change the field")
	}
	if recomputes, _ := d.Stats(); recomputes != 2 {
		t.Errorf("recomputes = %d, want 2 (SetGoal + Update)", recomputes)
	}
	fresh := NewIntegrationField[square.Eight](6, 6, 0, 0)
	fresh.Compute(goal, ok)
	sameCosts(t, d.Field(), fresh)
	if got := d.Field().Cost(square.At[square.EightConnected](4, 0)); got != 10 {
		t.Errorf("Cost(4,0) = %d, want 10 through the gap", got)
	}
}

func BenchmarkCompute(b *testing.B) {
	f := NewIntegrationField[square.Eight](128, 128, 0, 0)
	goal := square.At[square.EightConnected](64, 64)
	ok := func(c square.Eight) bool { return c.X%7 != 0 || c.Y%5 == 0 }
	for i := 0; i < b.N; i++ {
		f.Compute(goal, ok)
	}
}

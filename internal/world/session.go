package world

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gridkit/internal/config"
	"github.com/Faultbox/gridkit/internal/render"
	"github.com/Faultbox/gridkit/internal/scenario"
	"github.com/Faultbox/gridkit/pkg/flowfield"
	"github.com/Faultbox/gridkit/pkg/fov"
	"github.com/Faultbox/gridkit/pkg/grid"
	"github.com/Faultbox/gridkit/pkg/grid/hex"
	"github.com/Faultbox/gridkit/pkg/grid/iso"
	"github.com/Faultbox/gridkit/pkg/grid/square"
	"github.com/Faultbox/gridkit/pkg/grid/tri"
	"github.com/Faultbox/gridkit/pkg/math"
	"github.com/Faultbox/gridkit/pkg/pathfind"
)

// ErrMissingPoint is returned when a command needs a point the scenario
// does not define.
var ErrMissingPoint = errors.New("scenario is missing a required point")

// Result is one rendered computation.
type Result struct {
	Title  string
	Canvas *render.Canvas
	Stats  []render.Stat
}

// Session runs gridtool commands against one scenario. Each call works on
// the scenario's live terrain; Flow applies the scenario's changes to it.
type Session interface {
	Topology() scenario.Topology
	Layout() render.Layout
	Path(cfg *config.Config) (*Result, error)
	FOV(cfg *config.Config) (*Result, error)
	Light(cfg *config.Config) (*Result, error)
	Flow(cfg *config.Config) (*Result, error)
	Walk(cfg *config.Config) (Walk, error)
}

// Open picks the coordinate type for sc's topology.
func Open(sc *scenario.Scenario, r *render.Renderer, log *zap.Logger) (Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch sc.Topology {
	case scenario.HexPointy:
		return newSession(sc, r, log, hex.OffsetAt[hex.Odd, hex.Pointy], render.OddRows), nil
	case scenario.HexFlat:
		return newSession(sc, r, log, hex.OffsetAt[hex.Odd, hex.Flat], render.OddColumns), nil
	case scenario.Square4:
		return newSession(sc, r, log, square.At[square.FourConnected], render.Rect), nil
	case scenario.Square8:
		return newSession(sc, r, log, square.At[square.EightConnected], render.Rect), nil
	case scenario.Tri:
		return newSession(sc, r, log, tri.At[tri.TwelveConnected], render.Rect), nil
	case scenario.Iso:
		return newSession(sc, r, log, iso.At[iso.Diamond], render.Diamond), nil
	default:
		return nil, fmt.Errorf("%w: %q", scenario.ErrUnknownTopology, sc.Topology)
	}
}

type session[C grid.Cell[C]] struct {
	world  *World[C]
	r      *render.Renderer
	log    *zap.Logger
	layout render.Layout
}

func newSession[C grid.Cell[C]](sc *scenario.Scenario, r *render.Renderer, log *zap.Logger, at func(col, row int) C, layout render.Layout) *session[C] {
	return &session[C]{
		world:  New(sc, at),
		r:      r,
		log:    log.With(zap.String("topology", string(sc.Topology))),
		layout: layout,
	}
}

func (s *session[C]) Topology() scenario.Topology { return s.world.Scenario.Topology }

func (s *session[C]) Layout() render.Layout { return s.layout }

func (s *session[C]) title(cmd string) string {
	if name := s.world.Scenario.Name; name != "" {
		return fmt.Sprintf("%s: %s (%s)", cmd, name, s.Topology())
	}
	return fmt.Sprintf("%s (%s)", cmd, s.Topology())
}

func (s *session[C]) Path(cfg *config.Config) (*Result, error) {
	sc := s.world.Scenario
	if sc.Start == nil || sc.Goal == nil {
		return nil, fmt.Errorf("path: %w: need start and goal", ErrMissingPoint)
	}
	start, goal := s.world.At(*sc.Start), s.world.At(*sc.Goal)

	pf := NewPathFinder(s.world, cfg.Pathfind.MaxIterations, cfg.Pathfind.Weighted)
	mc := NewMovementController(pf, start)

	began := time.Now()
	path := mc.MoveTo(goal)
	elapsed := time.Since(began)

	steps := 0
	for mc.Update() {
		steps++
	}

	cv := s.world.Canvas()
	for i, c := range path {
		if i > 0 && i < len(path)-1 {
			s.world.overlay(cv, c, s.r.Glyph(render.KindPath), render.KindPath)
		}
	}
	s.world.overlay(cv, start, s.r.Glyph(render.KindStart), render.KindStart)
	s.world.overlay(cv, goal, s.r.Glyph(render.KindGoal), render.KindGoal)

	stats := []render.Stat{
		{Label: "found", Value: path != nil},
		{Label: "distance", Value: start.Distance(goal)},
	}
	if path != nil {
		stats = append(stats,
			render.Stat{Label: "length", Value: len(path)},
			render.Stat{Label: "cost", Value: pathfind.PathCost(path, pf.Cost())},
			render.Stat{Label: "steps walked", Value: steps},
		)
	}

	s.log.Debug("path computed",
		zap.String("start", fmt.Sprint(start)),
		zap.String("goal", fmt.Sprint(goal)),
		zap.Bool("found", path != nil),
		zap.Int("length", len(path)),
		zap.Duration("elapsed", elapsed))

	return &Result{Title: s.title("path"), Canvas: cv, Stats: stats}, nil
}

func (s *session[C]) FOV(cfg *config.Config) (*Result, error) {
	sc := s.world.Scenario
	alg := cfg.Algorithm()
	f := fov.New[C](alg)
	radius := cfg.FOV.Radius

	began := time.Now()
	viewer := s.world.At(sc.ViewerPoint())
	var state *fov.VisibilityState[C]
	if cfg.FOV.Memory && sc.Start != nil && sc.Goal != nil {
		// Look around at every step of the walk and remember what was seen.
		pf := NewPathFinder(s.world, cfg.Pathfind.MaxIterations, cfg.Pathfind.Weighted)
		path, _, ok := pf.FindPath(s.world.At(*sc.Start), s.world.At(*sc.Goal))
		if !ok {
			path = []C{viewer}
		}
		for _, c := range path {
			state = f.Calculate(c, radius, s.world.IsOpaque).WithMemory(state)
		}
		viewer = state.Viewer()
	} else {
		state = f.Calculate(viewer, radius, s.world.IsOpaque)
	}
	elapsed := time.Since(began)

	cv, remembered := s.visibilityCanvas(state)
	s.world.overlay(cv, viewer, s.r.Glyph(render.KindViewer), render.KindViewer)

	var light float32
	for _, c := range state.Visible() {
		light += state.LightLevel(c)
	}
	stats := []render.Stat{
		{Label: "algorithm", Value: alg},
		{Label: "radius", Value: radius},
		{Label: "viewer", Value: viewer},
		{Label: "visible", Value: state.VisibleCount()},
		{Label: "mean light", Value: fmt.Sprintf("%.2f", light/float32(state.VisibleCount()))},
	}
	if cfg.FOV.Memory {
		stats = append(stats, render.Stat{Label: "remembered", Value: remembered})
	}
	if sc.Goal != nil {
		goal := s.world.At(*sc.Goal)
		stats = append(stats, render.Stat{Label: "line of sight to goal", Value: fov.LineOfSight(viewer, goal, s.world.IsOpaque)})
	}

	s.log.Debug("fov computed",
		zap.Stringer("algorithm", alg),
		zap.String("viewer", fmt.Sprint(viewer)),
		zap.Int("visible", state.VisibleCount()),
		zap.Duration("elapsed", elapsed))

	return &Result{Title: s.title("fov"), Canvas: cv, Stats: stats}, nil
}

// visibilityCanvas draws terrain as seen through state and counts the
// remembered cells.
func (s *session[C]) visibilityCanvas(state *fov.VisibilityState[C]) (*render.Canvas, int) {
	cv := s.world.Canvas()
	remembered := 0
	for _, c := range s.world.Cells() {
		col, row := c.Tuple()
		cell, _ := cv.Get(col, row)
		switch {
		case state.IsVisible(c):
			cv.Overlay(col, row, cell.Glyph, render.KindVisible)
		case state.IsRemembered(c):
			remembered++
			cv.Overlay(col, row, cell.Glyph, render.KindRemembered)
		default:
			cv.Overlay(col, row, s.r.Glyph(render.KindHidden), render.KindHidden)
		}
	}
	return cv, remembered
}

func (s *session[C]) Light(cfg *config.Config) (*Result, error) {
	sc := s.world.Scenario
	if len(sc.Lights) == 0 {
		return nil, fmt.Errorf("light: %w: need at least one light", ErrMissingPoint)
	}

	calc := fov.NewLightingCalculator[C]()
	calc.SetAmbient(cfg.Light.Ambient)
	for i, ls := range sc.Lights {
		falloff, err := fov.ParseFalloff(ls.Falloff)
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		tint, err := ls.ParseColor()
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		calc.AddLightSource(fov.LightSource[C]{
			Position:        s.world.At(ls.At),
			Radius:          ls.Radius,
			Intensity:       ls.Level(),
			Falloff:         falloff,
			Color:           tint,
			PenetratesWalls: ls.PenetratesWalls,
		})
	}

	began := time.Now()
	levels := calc.CalculateLighting(s.world.IsOpaque)
	colors := calc.CalculateColorLighting(s.world.IsOpaque)
	elapsed := time.Since(began)

	cv := s.world.Canvas()
	var total, peak float32
	lit := 0
	for _, c := range s.world.Cells() {
		if s.world.IsOpaque(c) {
			continue
		}
		col, row := c.Tuple()
		level, ok := levels[c]
		if !ok {
			cv.Overlay(col, row, s.r.Shade(0), render.KindHidden)
			continue
		}
		lit++
		total += level
		peak = max(peak, level)
		cv.Overlay(col, row, s.r.Shade(level), render.KindVisible)
		if tint, ok := colors[c]; ok {
			cv.Tint(col, row, tint)
		}
	}
	for _, ls := range sc.Lights {
		s.world.overlay(cv, s.world.At(ls.At), s.r.Glyph(render.KindLight), render.KindLight)
	}

	stats := []render.Stat{
		{Label: "lights", Value: calc.Len()},
		{Label: "ambient", Value: calc.Ambient()},
		{Label: "lit cells", Value: lit},
		{Label: "peak", Value: fmt.Sprintf("%.2f", peak)},
	}
	if lit > 0 {
		stats = append(stats, render.Stat{Label: "mean", Value: fmt.Sprintf("%.2f", total/float32(lit))})
	}

	s.log.Debug("lighting computed",
		zap.Int("lights", calc.Len()),
		zap.Int("lit", lit),
		zap.Duration("elapsed", elapsed))

	return &Result{Title: s.title("light"), Canvas: cv, Stats: stats}, nil
}

// flowView is what Flow needs from either flow field flavor.
type flowView[C grid.Cell[C]] interface {
	Cost(c C) int
	FlowAt(c C) flowfield.FlowDirection
	Next(c C) (C, bool)
	Steer(c C) math.Vec2
}

func (s *session[C]) Flow(cfg *config.Config) (*Result, error) {
	sc := s.world.Scenario
	goals := sc.AllGoals()
	if len(goals) == 0 {
		return nil, fmt.Errorf("flow: %w: need goal or goals", ErrMissingPoint)
	}
	var cost func(C) int
	if cfg.Flow.Weighted {
		cost = s.world.Cost
	}
	width, height, oc, or := s.world.Bounds()

	began := time.Now()
	var (
		view  flowView[C]
		stats []render.Stat
	)
	if len(goals) == 1 {
		d := flowfield.NewDynamicFlowField[C](width, height, oc, or, s.world.IsWalkable, cost)
		d.SetGoal(s.world.At(goals[0]))
		changed, err := s.applyChanges(func(c C) { d.MarkDirty(c) })
		if err != nil {
			return nil, err
		}
		if changed > 0 {
			s.log.Debug("updating flow field", zap.Int("dirty", d.Pending()))
			d.Update()
		}
		recomputes, patches := d.Stats()
		a := d.Field().Analyze()
		view = d.Field()
		stats = append(stats,
			render.Stat{Label: "reachable", Value: fmt.Sprintf("%d/%d (%.0f%%)", a.Reachable, a.Cells, 100*a.Coverage())},
			render.Stat{Label: "max cost", Value: a.MaxCost},
			render.Stat{Label: "mean cost", Value: fmt.Sprintf("%.2f", a.MeanCost)},
			render.Stat{Label: "changes", Value: changed},
			render.Stat{Label: "recomputes", Value: recomputes},
			render.Stat{Label: "patches", Value: patches},
		)
	} else {
		m := flowfield.NewMultiGoalFlowField[C](width, height, oc, or, s.world.IsWalkable, cost)
		for _, g := range goals {
			m.AddGoal(s.world.At(g))
		}
		changed, err := s.applyChanges(func(C) {})
		if err != nil {
			return nil, err
		}
		if changed > 0 {
			m.Recompute()
		}
		view = m
		reachable := 0
		for _, c := range s.world.Cells() {
			if m.Cost(c) < flowfield.Unreached {
				reachable++
			}
		}
		stats = append(stats,
			render.Stat{Label: "goals", Value: m.Len()},
			render.Stat{Label: "reachable", Value: fmt.Sprintf("%d/%d", reachable, width*height)},
			render.Stat{Label: "changes", Value: changed},
		)
	}
	elapsed := time.Since(began)

	cv := s.world.Canvas()
	for _, c := range s.world.Cells() {
		if !s.world.IsWalkable(c) {
			continue
		}
		col, row := c.Tuple()
		switch d := view.FlowAt(c); {
		case d == flowfield.DirGoal:
			cv.Overlay(col, row, s.r.Glyph(render.KindGoal), render.KindGoal)
		case view.Cost(c) >= flowfield.Unreached:
			cv.Overlay(col, row, '!', render.KindUnreached)
		case cfg.Flow.ShowCosts:
			cv.Overlay(col, row, costGlyph(view.Cost(c)), render.KindFlow)
		default:
			cv.Overlay(col, row, render.Arrow(view.Steer(c)), render.KindFlow)
		}
	}
	for _, ch := range sc.Changes {
		cell, _ := cv.Get(ch.At[0], ch.At[1])
		cv.Overlay(ch.At[0], ch.At[1], cell.Glyph, render.KindChanged)
	}

	if sc.Start != nil {
		start := s.world.At(*sc.Start)
		mc := NewMovementController(NewPathFinder(s.world, 0, cfg.Flow.Weighted), start)
		trail := mc.FollowFlow(view.Next, width*height)
		reached := view.FlowAt(mc.Position()) == flowfield.DirGoal
		stats = append(stats,
			render.Stat{Label: "start reaches goal", Value: reached},
			render.Stat{Label: "steps from start", Value: len(trail) - 1},
		)
		s.world.overlay(cv, start, s.r.Glyph(render.KindStart), render.KindStart)
	}

	s.log.Debug("flow computed",
		zap.Int("goals", len(goals)),
		zap.Int("changes", len(sc.Changes)),
		zap.Duration("elapsed", elapsed))

	return &Result{Title: s.title("flow"), Canvas: cv, Stats: stats}, nil
}

// applyChanges writes the scenario's terrain changes and reports each
// changed cell to mark.
func (s *session[C]) applyChanges(mark func(C)) (int, error) {
	n := 0
	for i, ch := range s.world.Scenario.Changes {
		ct, err := ch.CellType()
		if err != nil {
			return n, fmt.Errorf("changes[%d]: %w", i, err)
		}
		if s.world.Terrain().GetCell(ch.At[0], ch.At[1]) == ct {
			continue
		}
		s.world.Terrain().SetCell(ch.At[0], ch.At[1], ct)
		mark(s.world.At(ch.At))
		n++
	}
	return n, nil
}

// costGlyph draws 0-9 as digits, then a-z, then '+'.
func costGlyph(cost int) rune {
	switch {
	case cost < 10:
		return rune('0' + cost)
	case cost < 36:
		return rune('a' + cost - 10)
	default:
		return '+'
	}
}

package world

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/gridkit/internal/config"
	"github.com/Faultbox/gridkit/internal/render"
	"github.com/Faultbox/gridkit/pkg/fov"
	"github.com/Faultbox/gridkit/pkg/grid"
)

// Walk is a step-by-step walker from start to goal. It follows an A*
// path, can be pushed aside by hand, and remembers everything it has seen.
type Walk interface {
	// Step advances one cell along the planned path.
	Step() bool
	// Nudge moves to the neighbor at the given (col, row) offset and
	// replans from there.
	Nudge(dcol, drow int) bool
	// Reset puts the walker back on the start and forgets what it saw.
	Reset()
	// Done reports whether the walker stands on the goal.
	Done() bool
	Frame() *Result
}

type walk[C grid.Cell[C]] struct {
	s           *session[C]
	fov         *fov.FieldOfView[C]
	radius      int
	mc          *MovementController[C]
	start, goal C
	seen        *fov.VisibilityState[C]
	steps       int
}

func (s *session[C]) Walk(cfg *config.Config) (Walk, error) {
	sc := s.world.Scenario
	if sc.Start == nil || sc.Goal == nil {
		return nil, fmt.Errorf("walk: %w: need start and goal", ErrMissingPoint)
	}
	w := &walk[C]{
		s:      s,
		fov:    fov.New[C](cfg.Algorithm()),
		radius: cfg.FOV.Radius,
		mc:     NewMovementController(NewPathFinder(s.world, cfg.Pathfind.MaxIterations, cfg.Pathfind.Weighted), s.world.At(*sc.Start)),
		start:  s.world.At(*sc.Start),
		goal:   s.world.At(*sc.Goal),
	}
	w.Reset()
	return w, nil
}

func (w *walk[C]) Reset() {
	w.mc.Teleport(w.start)
	w.seen = nil
	w.steps = 0
	w.look()
	w.mc.MoveTo(w.goal)
}

func (w *walk[C]) look() {
	w.seen = w.fov.Calculate(w.mc.Position(), w.radius, w.s.world.IsOpaque).WithMemory(w.seen)
}

func (w *walk[C]) Step() bool {
	if !w.mc.Update() {
		return false
	}
	w.steps++
	w.look()
	return true
}

func (w *walk[C]) Nudge(dcol, drow int) bool {
	pos := w.mc.Position()
	col, row := pos.Tuple()
	next := w.s.world.at(col+dcol, row+drow)
	if !slices.Contains(pos.Neighbors(), next) || !w.mc.CanWalkTo(next) {
		return false
	}
	w.mc.Teleport(next)
	w.steps++
	w.look()
	if w.mc.MoveTo(w.goal) == nil {
		w.s.log.Debug("no path from nudged position", zap.String("at", fmt.Sprint(next)))
	}
	return true
}

func (w *walk[C]) Done() bool { return w.mc.Position() == w.goal }

func (w *walk[C]) Frame() *Result {
	cv, remembered := w.s.visibilityCanvas(w.seen)
	remaining := w.mc.GetPath()
	for i, c := range remaining {
		if i < len(remaining)-1 {
			w.s.world.overlay(cv, c, w.s.r.Glyph(render.KindPath), render.KindPath)
		}
	}
	w.s.world.overlay(cv, w.goal, w.s.r.Glyph(render.KindGoal), render.KindGoal)
	w.s.world.overlay(cv, w.mc.Position(), w.s.r.Glyph(render.KindViewer), render.KindViewer)

	return &Result{
		Title:  w.s.title("walk"),
		Canvas: cv,
		Stats: []render.Stat{
			{Label: "at", Value: w.mc.Position()},
			{Label: "steps", Value: w.steps},
			{Label: "remaining", Value: len(remaining)},
			{Label: "visible", Value: w.seen.VisibleCount()},
			{Label: "remembered", Value: remembered},
			{Label: "at goal", Value: w.Done()},
		},
	}
}

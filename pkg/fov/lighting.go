package fov

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/Faultbox/gridkit/pkg/grid"
)

// Falloff shapes how a light fades with distance.
type Falloff int

const (
	FalloffLinear    Falloff = iota // 1 - d/r
	FalloffQuadratic                // (1 - d/r)^2
	FalloffNone                     // constant out to the radius
)

func (f Falloff) String() string {
	switch f {
	case FalloffQuadratic:
		return "quadratic"
	case FalloffNone:
		return "none"
	default:
		return "linear"
	}
}

// ParseFalloff accepts the names returned by Falloff.String. The empty
// string means linear.
func ParseFalloff(s string) (Falloff, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return FalloffLinear, nil
	case "quadratic":
		return FalloffQuadratic, nil
	case "none":
		return FalloffNone, nil
	default:
		return 0, fmt.Errorf("unknown falloff %q", s)
	}
}

// attenuation returns the fraction of intensity reaching distance d.
func (f Falloff) attenuation(d, radius int) float32 {
	if d > radius {
		return 0
	}
	if radius <= 0 || f == FalloffNone {
		return 1
	}
	t := 1 - float32(d)/float32(radius)
	if f == FalloffQuadratic {
		return t * t
	}
	return t
}

// LightSource is a point light placed on a cell.
type LightSource[C any] struct {
	Position  C
	Radius    int
	Intensity float32
	Falloff   Falloff
	Color     color.NRGBA
	// PenetratesWalls lights every cell in range regardless of opacity.
	PenetratesWalls bool
}

// LightID identifies a source added to a LightingCalculator.
type LightID int

// LightingCalculator composites any number of light sources. It is not
// safe for concurrent mutation.
type LightingCalculator[C grid.Planar[C]] struct {
	fov     *FieldOfView[C]
	sources map[LightID]LightSource[C]
	order   []LightID
	nextID  LightID
	ambient float32
}

// NewLightingCalculator returns an empty calculator whose sources see
// with shadowcasting.
func NewLightingCalculator[C grid.Planar[C]]() *LightingCalculator[C] {
	return &LightingCalculator[C]{
		fov:     New[C](Shadowcasting),
		sources: make(map[LightID]LightSource[C]),
	}
}

// AddLightSource registers src and returns its id.
func (l *LightingCalculator[C]) AddLightSource(src LightSource[C]) LightID {
	l.nextID++
	id := l.nextID
	l.sources[id] = src
	l.order = append(l.order, id)
	return id
}

// RemoveLightSource drops a source. It reports whether id was present.
func (l *LightingCalculator[C]) RemoveLightSource(id LightID) bool {
	if _, ok := l.sources[id]; !ok {
		return false
	}
	delete(l.sources, id)
	for i, o := range l.order {
		if o == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Source returns the source registered under id.
func (l *LightingCalculator[C]) Source(id LightID) (LightSource[C], bool) {
	src, ok := l.sources[id]
	return src, ok
}

// Clear removes every source.
func (l *LightingCalculator[C]) Clear() {
	clear(l.sources)
	l.order = l.order[:0]
}

// Len returns the number of sources.
func (l *LightingCalculator[C]) Len() int { return len(l.order) }

// SetAmbient sets the base level added to every lit cell.
func (l *LightingCalculator[C]) SetAmbient(level float32) {
	l.ambient = clamp01(level)
}

// Ambient returns the ambient level.
func (l *LightingCalculator[C]) Ambient() float32 { return l.ambient }

// contributions calls fn for every cell each source reaches, in source
// insertion order.
func (l *LightingCalculator[C]) contributions(isOpaque func(C) bool, fn func(src LightSource[C], c C, amount float32)) {
	for _, id := range l.order {
		src := l.sources[id]
		radius := max(src.Radius, 0)
		if src.PenetratesWalls {
			for _, c := range grid.Range(src.Position, radius) {
				d := src.Position.Distance(c)
				fn(src, c, src.Intensity*src.Falloff.attenuation(d, radius))
			}
			continue
		}
		vis := l.fov.Calculate(src.Position, radius, isOpaque)
		vis.Each(func(c C, cell Cell) {
			fn(src, c, src.Intensity*src.Falloff.attenuation(cell.Distance, radius))
		})
	}
}

// CalculateLighting returns the light level of every cell reached by at
// least one source: ambient plus the sum of source contributions, clipped
// to [0, 1]. It recomputes everything on each call.
func (l *LightingCalculator[C]) CalculateLighting(isOpaque func(C) bool) map[C]float32 {
	sum := make(map[C]float32)
	l.contributions(isOpaque, func(_ LightSource[C], c C, amount float32) {
		sum[c] += amount
	})
	for c, v := range sum {
		sum[c] = clamp01(v + l.ambient)
	}
	return sum
}

// CalculateColorLighting is CalculateLighting with each source tinted by
// its Color. Channels add and saturate at 255; ambient adds gray.
func (l *LightingCalculator[C]) CalculateColorLighting(isOpaque func(C) bool) map[C]color.NRGBA {
	type rgb struct{ r, g, b float32 }
	sum := make(map[C]rgb)
	l.contributions(isOpaque, func(src LightSource[C], c C, amount float32) {
		acc := sum[c]
		acc.r += float32(src.Color.R) * amount
		acc.g += float32(src.Color.G) * amount
		acc.b += float32(src.Color.B) * amount
		sum[c] = acc
	})
	ambient := 255 * l.ambient
	out := make(map[C]color.NRGBA, len(sum))
	for c, acc := range sum {
		out[c] = color.NRGBA{
			R: channel(acc.r + ambient),
			G: channel(acc.g + ambient),
			B: channel(acc.b + ambient),
			A: 255,
		}
	}
	return out
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

func channel(v float32) uint8 {
	return uint8(min(max(v, 0), 255) + 0.5)
}

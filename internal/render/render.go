package render

import (
	"fmt"
	"image/color"
	stdmath "math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/gridkit/internal/config"
	"github.com/Faultbox/gridkit/pkg/math"
)

var kindStyles = map[Kind]lipgloss.Style{
	KindTerrain:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	KindPath:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	KindStart:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	KindGoal:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	KindViewer:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	KindVisible:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	KindRemembered: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	KindHidden:     lipgloss.NewStyle(),
	KindLight:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	KindFlow:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	KindUnreached:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	KindChanged:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Underline(true),
}

var headerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Renderer turns canvases into terminal text.
type Renderer struct {
	color  bool
	glyphs config.Glyphs
	shades []rune
}

// New returns a renderer for cfg.
func New(cfg config.RenderConfig) *Renderer {
	shades := []rune(cfg.Shades)
	if len(shades) < 2 {
		shades = []rune(config.Default().Render.Shades)
	}
	return &Renderer{color: cfg.Color, glyphs: cfg.Glyphs, shades: shades}
}

// Glyph returns the configured overlay glyph for kind.
func (r *Renderer) Glyph(kind Kind) rune {
	var s string
	switch kind {
	case KindPath:
		s = r.glyphs.Path
	case KindStart:
		s = r.glyphs.Start
	case KindGoal:
		s = r.glyphs.Goal
	case KindViewer:
		s = r.glyphs.Viewer
	case KindHidden:
		s = r.glyphs.Hidden
	case KindRemembered:
		s = r.glyphs.Remembered
	case KindLight:
		s = r.glyphs.Light
	}
	for _, g := range s {
		return g
	}
	return '?'
}

// Shade maps a light level in [0, 1] onto the shade ramp.
func (r *Renderer) Shade(level float32) rune {
	level = min(max(level, 0), 1)
	i := int(level*float32(len(r.shades)-1) + 0.5)
	return r.shades[i]
}

// Arrow returns the arrow closest to the direction of v in screen space
// (y down), or '·' for the zero vector.
func Arrow(v math.Vec2) rune {
	if v.LengthSq() == 0 {
		return '·'
	}
	const arrows = "→↗↑↖←↙↓↘"
	up := math.Vec2{X: v.X, Y: -v.Y}.Angle()
	sector := int(stdmath.Round(up/(stdmath.Pi/4))) & 7
	return []rune(arrows)[sector]
}

type styleKey struct {
	kind Kind
	tint color.NRGBA
}

type span struct {
	text string
	key  styleKey
	pad  bool
}

// Render lays the canvas out and styles it.
func (r *Renderer) Render(c *Canvas, layout Layout) string {
	lines := layoutLines(c, layout)
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		r.writeLine(&sb, line)
	}
	return sb.String()
}

// writeLine groups adjacent spans with the same style to keep escape
// sequences short.
func (r *Renderer) writeLine(sb *strings.Builder, line []span) {
	for i := 0; i < len(line); {
		start := line[i]
		var run strings.Builder
		for i < len(line) && line[i].pad == start.pad && line[i].key == start.key {
			run.WriteString(line[i].text)
			i++
		}
		if start.pad || !r.color {
			sb.WriteString(run.String())
			continue
		}
		sb.WriteString(r.style(start.key).Render(run.String()))
	}
}

func (r *Renderer) style(k styleKey) lipgloss.Style {
	if k.tint.A != 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(k.tint)))
	}
	if s, ok := kindStyles[k.kind]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func layoutLines(c *Canvas, layout Layout) [][]span {
	switch layout {
	case Diamond:
		return diamondLines(c)
	case OddColumns:
		return oddColumnLines(c)
	default:
		return rectLines(c, layout == OddRows)
	}
}

func rectLines(c *Canvas, stagger bool) [][]span {
	oc, or := c.Origin()
	lines := make([][]span, 0, c.Height())
	for row := or; row < or+c.Height(); row++ {
		line := make([]span, 0, c.Width()+1)
		if stagger && row&1 == 1 {
			line = append(line, span{text: " ", pad: true})
		}
		for col := oc; col < oc+c.Width(); col++ {
			cell, _ := c.Get(col, row)
			text := string(cell.Glyph)
			if col < oc+c.Width()-1 {
				text += " "
			}
			line = append(line, span{text: text, key: styleKey{cell.Kind, cell.Tint}})
		}
		lines = append(lines, line)
	}
	return lines
}

// oddColumnLines gives every row two screen lines: even columns on the
// first, odd columns on the second. Parity is the absolute column's.
func oddColumnLines(c *Canvas) [][]span {
	oc, or := c.Origin()
	last := oc + c.Width() - 1
	lines := make([][]span, 0, 2*c.Height())
	for row := or; row < or+c.Height(); row++ {
		for parity := 0; parity < 2; parity++ {
			var line []span
			for col := oc; col <= last; col++ {
				gap := ""
				if col < last {
					gap = " "
				}
				if col&1 != parity {
					line = append(line, span{text: " " + gap, pad: true})
					continue
				}
				cell, _ := c.Get(col, row)
				line = append(line, span{text: string(cell.Glyph) + gap, key: styleKey{cell.Kind, cell.Tint}})
			}
			for len(line) > 0 && line[len(line)-1].pad {
				line = line[:len(line)-1]
			}
			if n := len(line); n > 0 {
				line[n-1].text = strings.TrimRight(line[n-1].text, " ")
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// diamondLines places logical cell (x, y) on screen line x+y at column
// x-y, so the grid reads as an isometric diamond.
func diamondLines(c *Canvas) [][]span {
	w, h := c.Width(), c.Height()
	if w == 0 || h == 0 {
		return nil
	}
	oc, or := c.Origin()
	n := w + h - 1
	grid := make([][]*Cell, n)
	for i := range grid {
		grid[i] = make([]*Cell, n)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell, _ := c.Get(oc+x, or+y)
			grid[x+y][x-y+h-1] = &cell
		}
	}

	lines := make([][]span, n)
	for i, row := range grid {
		last := len(row) - 1
		for last >= 0 && row[last] == nil {
			last--
		}
		for _, cell := range row[:last+1] {
			if cell == nil {
				lines[i] = append(lines[i], span{text: " ", pad: true})
				continue
			}
			lines[i] = append(lines[i], span{text: string(cell.Glyph), key: styleKey{cell.Kind, cell.Tint}})
		}
	}
	return lines
}

// Stat is one labeled value shown in a header.
type Stat struct {
	Label string
	Value any
}

// Header draws a bordered title box with stats, one per line.
func (r *Renderer) Header(title string, stats ...Stat) string {
	lines := []string{title}
	if r.color {
		lines[0] = titleStyle.Render(title)
	}
	for _, s := range stats {
		lines = append(lines, fmt.Sprintf("%s: %v", s.Label, s.Value))
	}
	body := strings.Join(lines, "\n")
	if !r.color {
		return body
	}
	return headerStyle.Render(body)
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
